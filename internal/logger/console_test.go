package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	ts := time.Date(2023, 5, 1, 12, 30, 45, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestConsole_TimestampedLines(t *testing.T) {
	c := NewConsole(10)
	c.SetClock(fixedClock())

	c.Info("Server %s player count: %d", "Alpha", 10)
	c.Warn("slow response")
	c.Error("request failed")

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "2023-05-01 12:30:45 - Server Alpha player count: 10", lines[0])
	assert.Equal(t, "2023-05-01 12:30:45 - WARN: slow response", lines[1])
	assert.Equal(t, "2023-05-01 12:30:45 - ERROR: request failed", lines[2])
}

func TestConsole_UsesUTC(t *testing.T) {
	c := NewConsole(10)
	loc := time.FixedZone("UTC+3", 3*60*60)
	c.SetClock(func() time.Time { return time.Date(2023, 5, 1, 15, 0, 0, 0, loc) })

	c.Info("hello")

	assert.Equal(t, "2023-05-01 12:00:00 - hello", c.Lines()[0])
}

func TestConsole_DropsOldestLines(t *testing.T) {
	c := NewConsole(3)
	c.SetClock(fixedClock())

	for i := 0; i < 5; i++ {
		c.Info("line %d", i)
	}

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "line 2")
	assert.Contains(t, lines[2], "line 4")
	assert.Equal(t, uint64(5), c.Seq())
}

func TestConsole_DebugGating(t *testing.T) {
	c := NewConsole(10)
	c.SetDebug(false)

	c.Debug("hidden")
	assert.Equal(t, 0, c.Len())

	c.SetDebug(true)
	c.Debug("shown")
	assert.Equal(t, 1, c.Len())
}

func TestConsole_DefaultSize(t *testing.T) {
	c := NewConsole(0)
	for i := 0; i < DefaultConsoleLines+10; i++ {
		c.Info("%d", i)
	}
	assert.Equal(t, DefaultConsoleLines, c.Len())
}

func TestConsole_LinesIsCopy(t *testing.T) {
	c := NewConsole(10)
	c.Info("original")

	lines := c.Lines()
	lines[0] = "mutated"

	assert.Contains(t, c.Lines()[0], "original")
}
