package monitor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJitter_StaysInRange(t *testing.T) {
	j := NewJitter(DefaultMinInterval, DefaultMaxInterval, rand.New(rand.NewPCG(1, 2)))

	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := j.Next()
		assert.GreaterOrEqual(t, n, DefaultMinInterval)
		assert.LessOrEqual(t, n, DefaultMaxInterval)
		seen[n] = true
	}
	// Both bounds are inclusive.
	assert.True(t, seen[DefaultMinInterval])
	assert.True(t, seen[DefaultMaxInterval])
}

func TestJitter_Deterministic(t *testing.T) {
	a := NewJitter(55, 65, rand.New(rand.NewPCG(7, 7)))
	b := NewJitter(55, 65, rand.New(rand.NewPCG(7, 7)))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestJitter_Clamps(t *testing.T) {
	assert.Equal(t, 1, NewJitter(0, 0, nil).Next())
	assert.Equal(t, 10, NewJitter(10, 3, nil).Next())
	assert.Equal(t, 30, NewJitter(30, 30, nil).Next())
}

func TestJitter_GlobalSource(t *testing.T) {
	j := NewJitter(1, 3, nil)
	for i := 0; i < 100; i++ {
		n := j.Next()
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 3)
	}
}
