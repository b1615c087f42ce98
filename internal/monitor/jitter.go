package monitor

import (
	"math/rand/v2"
	"sync"
)

// Default refresh interval bounds, in seconds.
const (
	DefaultMinInterval = 55
	DefaultMaxInterval = 65
)

// Jitter picks refresh intervals uniformly from [Min, Max] whole seconds so
// that monitors created together don't all poll at the same instant.
type Jitter struct {
	Min int
	Max int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter creates a generator over [minSec, maxSec]. A nil rng uses the
// global source.
func NewJitter(minSec, maxSec int, rng *rand.Rand) *Jitter {
	return &Jitter{Min: minSec, Max: maxSec, rng: rng}
}

// Next returns the next interval in seconds. Bounds are clamped so the
// result is always at least one second.
func (j *Jitter) Next() int {
	lo, hi := j.Min, j.Max
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	span := hi - lo + 1

	if j.rng == nil {
		return lo + rand.IntN(span)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return lo + j.rng.IntN(span)
}
