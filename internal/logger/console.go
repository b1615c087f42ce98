package logger

import (
	"fmt"
	"sync"
	"time"
)

// DefaultConsoleLines is how many lines a Console keeps before dropping the oldest.
const DefaultConsoleLines = 500

// ConsoleTimeFormat is the timestamp layout used for console lines.
const ConsoleTimeFormat = "2006-01-02 15:04:05"

// Console is a bounded, timestamped line sink that backs the dashboard's
// console view. It implements Logger so it can be handed to any component.
type Console struct {
	mu    sync.Mutex
	lines []string
	max   int
	debug bool
	now   func() time.Time
	seq   uint64
}

// NewConsole creates a console that retains at most maxLines lines.
// Debug lines are kept only when BATTLETRACKER_DEBUG is set.
func NewConsole(maxLines int) *Console {
	if maxLines <= 0 {
		maxLines = DefaultConsoleLines
	}
	return &Console{
		max:   maxLines,
		debug: DebugEnabled(),
		now:   time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (c *Console) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// SetDebug toggles whether debug lines are retained.
func (c *Console) SetDebug(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug = enabled
}

func (c *Console) Debug(format string, args ...interface{}) {
	c.mu.Lock()
	enabled := c.debug
	c.mu.Unlock()
	if enabled {
		c.append("", format, args...)
	}
}

func (c *Console) Info(format string, args ...interface{}) {
	c.append("", format, args...)
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.append("WARN: ", format, args...)
}

func (c *Console) Error(format string, args ...interface{}) {
	c.append("ERROR: ", format, args...)
}

func (c *Console) append(level, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := c.now().UTC().Format(ConsoleTimeFormat)
	line := fmt.Sprintf("%s - %s%s", ts, level, fmt.Sprintf(format, args...))

	c.lines = append(c.lines, line)
	if len(c.lines) > c.max {
		// Shift rather than reslice so the backing array doesn't grow forever.
		n := copy(c.lines, c.lines[len(c.lines)-c.max:])
		c.lines = c.lines[:n]
	}
	c.seq++
}

// Lines returns a copy of the retained lines, oldest first.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of retained lines.
func (c *Console) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Seq returns a counter that increases with every appended line, including
// lines that have since been dropped. Views use it to detect new output.
func (c *Console) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}
