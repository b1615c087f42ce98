package dashboard

import (
	"fmt"
	"io"
	"sync"

	"github.com/battletracker/battletracker/internal/monitor"
)

// PlainPrinter writes one line per completed fetch. Countdown ticks and
// fetch starts are ignored. Safe for concurrent use.
type PlainPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[string]printedCycle
}

type printedCycle struct {
	instance uint64
	cycle    uint64
}

// NewPlainPrinter creates a printer writing to out.
func NewPlainPrinter(out io.Writer) *PlainPrinter {
	return &PlainPrinter{
		out:     out,
		printed: make(map[string]printedCycle),
	}
}

// Snapshot prints s if it is the first completed result of its cycle.
// Its signature matches monitor.Env.OnChange.
func (p *PlainPrinter) Snapshot(s monitor.Snapshot) {
	if s.Fetching || s.Status == monitor.StatusUnknown {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := printedCycle{instance: s.Instance, cycle: s.Cycle}
	if p.printed[s.ID] == key {
		return
	}
	p.printed[s.ID] = key
	fmt.Fprintln(p.out, FormatPlain(s))
}

// FormatPlain renders a snapshot as a single line.
func FormatPlain(s monitor.Snapshot) string {
	if s.Status == monitor.StatusDown {
		return fmt.Sprintf("%s DOWN: %s", s.ID, s.Err)
	}
	players := fmt.Sprintf("%d", s.Players)
	if s.MaxPlayers > 0 {
		players = fmt.Sprintf("%d/%d", s.Players, s.MaxPlayers)
	}
	return fmt.Sprintf("%s %s players=%s %s time=%s next=%ds",
		s.ID, s.Name, players, s.Trend.Arrow(), s.Time, s.Interval)
}
