package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestReal_AfterFuncFires(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestReal_StopPreventsFire(t *testing.T) {
	var fired atomic.Bool
	timer := Real().AfterFunc(time.Hour, func() { fired.Store(true) })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second Stop reports already stopped")
	assert.False(t, fired.Load())
}

func TestReal_Now(t *testing.T) {
	before := time.Now()
	now := Real().Now()
	assert.False(t, now.Before(before))
}

func TestFromClockwork_FakeClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fc := clockwork.NewFakeClockAt(start)
	c := FromClockwork(fc)

	assert.Equal(t, start, c.Now())

	done := make(chan struct{})
	c.AfterFunc(5*time.Second, func() { close(done) })
	stopped := c.AfterFunc(5*time.Second, func() { t.Error("stopped timer fired") })
	assert.True(t, stopped.Stop())

	fc.Advance(5 * time.Second)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire after Advance")
	}
	assert.Equal(t, start.Add(5*time.Second), c.Now())
}
