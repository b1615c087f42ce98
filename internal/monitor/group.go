package monitor

import "sync"

// Group owns the monitors for an ordered list of server ids.
type Group struct {
	mu       sync.Mutex
	env      Env
	jitter   *Jitter
	ids      []string
	monitors map[string]*ServerMonitor
	applied  uint64
	closed   bool
}

// NewGroup creates an empty group. Each monitor it creates gets its own
// interval from jitter.
func NewGroup(env Env, jitter *Jitter) *Group {
	if jitter == nil {
		jitter = NewJitter(DefaultMinInterval, DefaultMaxInterval, nil)
	}
	return &Group{
		env:      env,
		jitter:   jitter,
		monitors: make(map[string]*ServerMonitor),
	}
}

// Replace closes every existing monitor and starts fresh ones for ids.
// Duplicate ids are ignored.
func (g *Group) Replace(ids []string) {
	g.mu.Lock()
	g.swapLocked(ids)
}

// Apply is Replace for callers that may race each other. gen must increase
// with each list; a list older than the last applied one is ignored, as is
// any list once the group is closed. It reports whether ids were applied.
func (g *Group) Apply(gen uint64, ids []string) bool {
	g.mu.Lock()
	if g.closed || gen <= g.applied {
		g.mu.Unlock()
		return false
	}
	g.applied = gen
	g.swapLocked(ids)
	return true
}

// swapLocked installs monitors for ids and unlocks g before closing the old
// monitors and starting the new ones.
func (g *Group) swapLocked(ids []string) {
	old := g.monitors
	g.monitors = make(map[string]*ServerMonitor, len(ids))
	g.ids = g.ids[:0:0]

	var started []*ServerMonitor
	for _, id := range ids {
		if _, dup := g.monitors[id]; dup {
			continue
		}
		m := New(id, g.jitter.Next(), g.env)
		g.monitors[id] = m
		g.ids = append(g.ids, id)
		started = append(started, m)
	}
	g.mu.Unlock()

	for _, m := range old {
		m.Close()
	}
	for _, m := range started {
		m.Start()
	}
}

// IDs returns the monitored ids in order.
func (g *Group) IDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.ids...)
}

// Get returns the monitor for id.
func (g *Group) Get(id string) (*ServerMonitor, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.monitors[id]
	return m, ok
}

// Snapshots returns the current state of every monitor, in id order.
func (g *Group) Snapshots() []Snapshot {
	g.mu.Lock()
	monitors := g.orderedLocked()
	g.mu.Unlock()

	out := make([]Snapshot, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, m.Snapshot())
	}
	return out
}

// RefreshAll manually refreshes every monitor that allows it and returns
// how many refreshed.
func (g *Group) RefreshAll() int {
	g.mu.Lock()
	monitors := g.orderedLocked()
	g.mu.Unlock()

	n := 0
	for _, m := range monitors {
		if m.ManualRefresh() == nil {
			n++
		}
	}
	return n
}

// Len returns the number of monitors.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.ids)
}

// Close closes every monitor. Later calls to Apply are ignored.
func (g *Group) Close() {
	g.mu.Lock()
	g.closed = true
	g.swapLocked(nil)
}

func (g *Group) orderedLocked() []*ServerMonitor {
	out := make([]*ServerMonitor, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.monitors[id])
	}
	return out
}
