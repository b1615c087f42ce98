package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/battletracker/battletracker/internal/battlemetrics"
	"github.com/battletracker/battletracker/internal/clock"
	"github.com/battletracker/battletracker/internal/errors"
)

// cycleTrigger says what started a refresh cycle.
type cycleTrigger int

const (
	triggerStart cycleTrigger = iota
	triggerScheduled
	triggerManual
)

// instances numbers monitors in creation order.
var instances atomic.Uint64

// ServerMonitor polls one server and tracks its player history.
type ServerMonitor struct {
	mu  sync.Mutex
	env Env

	id       string
	interval int
	instance uint64

	history        *History
	status         Status
	trend          Trend
	server         *battlemetrics.Server
	lastErr        error
	countdown      int
	refreshEnabled bool
	fetching       bool

	refreshTimer   clock.Timer
	countdownTimer clock.Timer
	cycleStart     time.Time

	// cycle invalidates stale refresh timers and fetch completions;
	// tickGen does the same for countdown ticks.
	cycle   uint64
	tickGen uint64
	seq     uint64

	ctx         context.Context
	cancel      context.CancelFunc
	cancelFetch context.CancelFunc
	closed      bool
}

// New creates a monitor for id that refreshes every interval seconds.
// Nothing is scheduled until Start.
func New(id string, interval int, env Env) *ServerMonitor {
	if interval < 1 {
		interval = 1
	}
	env = env.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &ServerMonitor{
		env:            env,
		id:             id,
		interval:       interval,
		instance:       instances.Add(1),
		history:        NewHistory(env.HistorySize),
		countdown:      interval,
		refreshEnabled: true,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// ID returns the server identifier.
func (m *ServerMonitor) ID() string {
	return m.id
}

// Interval returns the refresh interval in seconds.
func (m *ServerMonitor) Interval() int {
	return m.interval
}

// Start runs the first refresh cycle.
func (m *ServerMonitor) Start() {
	m.RefreshCycle()
}

// RefreshCycle starts a new cycle now: the pending refresh is replaced, the
// countdown restarts and a fetch begins.
func (m *ServerMonitor) RefreshCycle() {
	_ = m.refresh(triggerStart, 0)
}

// ManualRefresh pre-empts the scheduled refresh. It fails with
// ErrRefreshDisabled while the server is down unless Env.RefreshWhenDown.
func (m *ServerMonitor) ManualRefresh() error {
	return m.refresh(triggerManual, 0)
}

// Snapshot returns the current display state.
func (m *ServerMonitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(false)
}

// PendingTimers returns how many refresh and countdown timers are outstanding.
func (m *ServerMonitor) PendingTimers() (refresh, countdown int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refreshTimer != nil {
		refresh = 1
	}
	if m.countdownTimer != nil {
		countdown = 1
	}
	return refresh, countdown
}

// Close stops both timers and abandons any in-flight fetch. Completions that
// arrive afterwards are discarded. Close is idempotent.
func (m *ServerMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.stopTimersLocked()
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
	m.fetching = false
	m.cancel()
}

// refresh starts a cycle. expect, when non-zero, is the cycle generation the
// caller observed; the call is dropped if another cycle started since.
func (m *ServerMonitor) refresh(trigger cycleTrigger, expect uint64) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if expect != 0 && expect != m.cycle {
		m.mu.Unlock()
		return nil
	}
	if trigger == triggerManual && m.status == StatusDown && !m.env.RefreshWhenDown {
		m.mu.Unlock()
		return ErrRefreshDisabled
	}

	var snaps []Snapshot
	// The previous cycle's interval has fully elapsed; make sure its final
	// countdown frame reads zero even if the last tick hasn't fired yet.
	if trigger == triggerScheduled && m.countdown > 0 {
		m.countdown = 0
		snaps = append(snaps, m.snapshotLocked(true))
	}

	m.stopTimersLocked()
	m.cycle++
	gen := m.cycle
	m.countdown = m.interval
	m.cycleStart = m.env.Clock.Now()

	m.refreshTimer = m.env.Clock.AfterFunc(m.intervalDuration(), func() {
		_ = m.refresh(triggerScheduled, gen)
	})
	m.armCountdownLocked(1)

	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelFetch = cancel
	m.fetching = true
	snaps = append(snaps, m.snapshotLocked(true))
	m.mu.Unlock()

	m.env.Log.Debug("Refreshing server %s (cycle %d)", m.id, gen)
	m.notify(snaps...)

	id := m.id
	fetcher := m.env.Fetcher
	m.env.Go(func() {
		server, err := fetcher.Fetch(ctx, id)
		m.complete(gen, server, err)
	})
	return nil
}

// armCountdownLocked schedules the tick that lands k seconds after the cycle
// started. Deadlines are anchored to the cycle start so ticks don't drift.
func (m *ServerMonitor) armCountdownLocked(k int) {
	if m.countdownTimer != nil {
		m.countdownTimer.Stop()
	}
	m.tickGen++
	gen := m.tickGen
	due := m.cycleStart.Add(time.Duration(k) * time.Second)
	d := due.Sub(m.env.Clock.Now())
	if d < 0 {
		d = 0
	}
	m.countdownTimer = m.env.Clock.AfterFunc(d, func() {
		m.countdownTick(gen)
	})
}

func (m *ServerMonitor) countdownTick(gen uint64) {
	m.mu.Lock()
	if m.closed || gen != m.tickGen {
		m.mu.Unlock()
		return
	}
	m.countdownTimer = nil
	// Ticks continue while Down; the card reads "unavailable" until a fetch
	// succeeds, and the countdown is already right if one does mid-cycle.
	if m.countdown <= 0 {
		m.mu.Unlock()
		return
	}
	m.countdown--
	if m.countdown > 0 {
		m.armCountdownLocked(m.interval - m.countdown + 1)
	}
	snap := m.snapshotLocked(true)
	m.mu.Unlock()

	m.notify(snap)
}

func (m *ServerMonitor) complete(gen uint64, server *battlemetrics.Server, err error) {
	if err == nil && server == nil {
		err = errors.New(errors.ErrMalformed, "Empty response for server "+m.id, "")
	}

	m.mu.Lock()
	if m.closed || gen != m.cycle {
		m.mu.Unlock()
		m.env.Log.Debug("Discarding stale result for server %s (cycle %d)", m.id, gen)
		return
	}
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
	m.fetching = false

	if err != nil {
		m.status = StatusDown
		m.lastErr = err
		m.refreshEnabled = m.env.RefreshWhenDown
	} else {
		m.status = StatusUp
		m.lastErr = nil
		m.server = server
		m.history.Push(server.Players)
		m.trend = CompareTrend(m.history.Last(2))
		m.refreshEnabled = true
	}
	snap := m.snapshotLocked(true)
	m.mu.Unlock()

	if err != nil {
		m.logFailure(err)
	}
	m.notify(snap)
}

func (m *ServerMonitor) logFailure(err error) {
	if errors.IsCode(err, errors.ErrNotFound) {
		m.env.Log.Warn("Invalid server ID: %s", m.id)
		return
	}
	m.env.Log.Error("Error occurred for server ID %s: %s", m.id, errors.Summary(err))
}

func (m *ServerMonitor) stopTimersLocked() {
	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}
	if m.countdownTimer != nil {
		m.countdownTimer.Stop()
		m.countdownTimer = nil
	}
	// Invalidate a countdown callback that may already be running.
	m.tickGen++
}

func (m *ServerMonitor) intervalDuration() time.Duration {
	return time.Duration(m.interval) * time.Second
}

// snapshotLocked copies the display state. next advances Seq, which only
// emitted snapshots do.
func (m *ServerMonitor) snapshotLocked(next bool) Snapshot {
	if next {
		m.seq++
	}
	s := Snapshot{
		ID:             m.id,
		Instance:       m.instance,
		Status:         m.status,
		Trend:          m.trend,
		Countdown:      m.countdown,
		Interval:       m.interval,
		RefreshEnabled: m.refreshEnabled,
		Fetching:       m.fetching,
		History:        m.history.All(),
		Cycle:          m.cycle,
		Seq:            m.seq,
		UpdatedAt:      m.env.Clock.Now(),
	}
	if m.server != nil {
		s.Name = m.server.Name
		s.Players = m.server.Players
		s.MaxPlayers = m.server.MaxPlayers
		s.Time = m.server.Time
	}
	if m.lastErr != nil {
		s.Err = errors.Summary(m.lastErr)
		s.ErrCode = errors.Code(m.lastErr)
	}
	return s
}

func (m *ServerMonitor) notify(snaps ...Snapshot) {
	if m.env.OnChange == nil {
		return
	}
	for _, s := range snaps {
		m.env.OnChange(s)
	}
}
