package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	clocktesting "github.com/battletracker/battletracker/internal/clock/testing"
	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/logger"
	"github.com/battletracker/battletracker/internal/monitor"
	montesting "github.com/battletracker/battletracker/internal/monitor/testing"
)

func init() {
	// Plain output so rendered text can be compared directly.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fixture wires a model to real monitors driven by a fake clock.
type fixture struct {
	clock   *clocktesting.FakeClock
	fetcher *montesting.FakeFetcher
	snaps   *montesting.Recorder[monitor.Snapshot]
	group   *monitor.Group
	console *logger.Console
	saved   [][]string
	opened  []string
	openErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:   clocktesting.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		fetcher: montesting.NewFakeFetcher(),
		snaps:   &montesting.Recorder[monitor.Snapshot]{},
		console: logger.NewConsole(100),
	}
	f.group = monitor.NewGroup(monitor.Env{
		Fetcher:  f.fetcher,
		Clock:    f.clock,
		Log:      f.console,
		OnChange: f.snaps.Record,
		Go:       montesting.Inline,
	}, monitor.NewJitter(60, 60, nil))
	t.Cleanup(f.group.Close)
	return f
}

func (f *fixture) options(ids ...string) Options {
	return Options{
		Group:    f.group,
		IDs:      ids,
		Grid:     Grid{Columns: 6, Rows: 7},
		Console:  f.console,
		Log:      f.console,
		AboutURL: "https://example.com/about",
		SaveIDs: func(ids []string) error {
			f.saved = append(f.saved, ids)
			return nil
		},
		OpenURL: func(url string) error {
			f.opened = append(f.opened, url)
			return f.openErr
		},
	}
}

// deliver feeds every recorded snapshot into m, as the bridge would.
func (f *fixture) deliver(m Model) Model {
	for _, s := range f.snaps.All() {
		m = update(m, SnapshotMsg{Snapshot: s})
	}
	f.snaps.Reset()
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and returns the new model and command.
func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd, expanding batches, and returns the non-nil messages.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// runInto executes cmd and feeds the resulting messages back into m.
func runInto(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range run(t, cmd) {
		m = update(m, msg)
	}
	return m
}

func plain(s string) string {
	return ansi.Strip(s)
}

func notFound(id string) error {
	return errors.New(errors.ErrNotFound, "Invalid server ID: "+id, "")
}

func requireSnapshot(t *testing.T, m Model, id string) monitor.Snapshot {
	t.Helper()
	s, ok := m.Snapshot(id)
	require.True(t, ok, "no snapshot for %s", id)
	return s
}
