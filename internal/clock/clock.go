// Package clock abstracts wall time and one-shot timers so schedulers can be
// driven by a fake clock in tests.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a cancellable one-shot timer.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was already stopped.
	Stop() bool
}

// Clock provides the current time and schedules callbacks.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine after d elapses.
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns a Clock backed by the system clock.
func Real() Clock {
	return FromClockwork(clockwork.NewRealClock())
}

// FromClockwork adapts a clockwork clock.
func FromClockwork(c clockwork.Clock) Clock {
	return clockworkClock{c: c}
}

type clockworkClock struct {
	c clockwork.Clock
}

func (c clockworkClock) Now() time.Time {
	return c.c.Now()
}

func (c clockworkClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.c.AfterFunc(d, f)
}
