package monitor

import "time"

// Status is the reachability of a monitored server.
type Status int

const (
	// StatusUnknown means no fetch has completed yet.
	StatusUnknown Status = iota
	// StatusUp means the last fetch succeeded.
	StatusUp
	// StatusDown means the last fetch failed.
	StatusDown
)

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of a monitor's display state.
type Snapshot struct {
	ID string
	// Instance identifies the monitor that emitted the snapshot. Monitors
	// created later have larger instance numbers.
	Instance uint64
	Status   Status

	// Last successful fetch; zero values until the first success.
	Name       string
	Players    int
	MaxPlayers int
	Time       string
	Trend      Trend

	Countdown      int // seconds until the next refresh
	Interval       int // refresh interval in seconds
	RefreshEnabled bool
	Fetching       bool

	// Err and ErrCode describe the most recent failure while StatusDown.
	Err     string
	ErrCode string

	History []int // oldest first

	// Cycle counts refresh cycles started. Seq increases with every snapshot
	// a monitor emits, so receivers can drop ones that arrive out of order.
	Cycle     uint64
	Seq       uint64
	UpdatedAt time.Time
}

// CountdownAvailable reports whether the countdown is meaningful to display.
func (s Snapshot) CountdownAvailable() bool {
	return s.Status != StatusDown
}
