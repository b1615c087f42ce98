package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/battletracker/battletracker/internal/config"
	bterrors "github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/logger"
	"github.com/battletracker/battletracker/internal/monitor"
	"github.com/battletracker/battletracker/internal/util"
)

// Options configures a dashboard Model.
type Options struct {
	// Group owns the monitors. The model replaces its contents whenever the
	// id list changes.
	Group *monitor.Group

	// IDs is the configured id list; only the first Grid.Capacity() are shown.
	IDs  []string
	Grid Grid

	// Console backs the console view. Optional.
	Console *logger.Console
	Log     logger.Logger

	AboutURL string

	// SaveIDs persists an edited id list. Optional.
	SaveIDs func(ids []string) error
	// OpenURL opens a URL in the user's browser. Defaults to OpenURL.
	OpenURL func(url string) error
}

// Model is the Bubble Tea model for the server dashboard.
type Model struct {
	opts Options
	grid Grid
	log  logger.Logger

	allIDs    []string // configured order, including ids that don't fit
	ids       []string // ids with a grid cell
	snapshots map[string]monitor.Snapshot
	notified  map[string]uint64 // monitor instance already reported as not found
	// generation is bumped with each id list so the group can drop a start
	// command that runs after a newer one.
	generation uint64
	saves      *saveGate

	selected int
	width    int
	height   int
	mode     ViewMode
	showHelp bool
	notices  []string
	status   string
	quitting bool

	input   textinput.Model
	console viewport.Model
	// consoleSeq is the console sequence last copied into the viewport.
	consoleSeq uint64
}

// Console viewport chrome: title line and footer line.
const (
	consoleHeaderHeight = 3
	consoleFooterHeight = 2
)

// NewModel creates a dashboard model. Monitors start when the program runs Init.
func NewModel(opts Options) Model {
	if opts.Grid.Capacity() == 0 {
		opts.Grid = Grid{Columns: config.DefaultGridColumns, Rows: config.DefaultGridRows}
	}
	if opts.OpenURL == nil {
		opts.OpenURL = OpenURL
	}

	input := textinput.New()
	input.Prompt = "IDs: "
	input.Placeholder = "5526400, 5526399"
	input.CharLimit = 2048
	input.Width = 60

	m := Model{
		opts:      opts,
		grid:      opts.Grid,
		log:       logger.OrNoop(opts.Log),
		snapshots: make(map[string]monitor.Snapshot),
		notified:  make(map[string]uint64),
		input:     input,
		console:   viewport.New(80, 20),
	}
	m.setIDs(opts.IDs)
	m.generation = 1
	m.saves = &saveGate{}
	return m
}

// Init starts monitoring the visible servers.
func (m Model) Init() tea.Cmd {
	return m.startCmd(m.generation, m.ids)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		switch m.mode {
		case ViewEdit:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case ViewConsole:
			var cmd tea.Cmd
			m.console, cmd = m.console.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.console.Width = m.width
		m.console.Height = max(m.height-consoleHeaderHeight-consoleFooterHeight, 1)
		m.input.Width = max(min(m.width-16, 80), 10)
		m.consoleSeq = 0
		m.syncConsole()

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		m.syncConsole()

	case monitorsStartedMsg:
		m.log.Info("Monitoring %d %s", len(msg.ids), util.Pluralize(len(msg.ids), "server", "servers"))
		m.syncConsole()

	case idsSavedMsg:
		if msg.err != nil {
			m.log.Error("Could not save server IDs: %s", bterrors.Summary(msg.err))
			m.status = "Could not save server IDs"
		} else {
			m.status = fmt.Sprintf("Saved %d server %s", len(msg.ids), util.Pluralize(len(msg.ids), "ID", "IDs"))
		}
		m.syncConsole()

	case openedMsg:
		if msg.err != nil {
			m.log.Error("Could not open %s: %v", msg.url, msg.err)
			m.status = "Could not open " + msg.url
		} else {
			m.status = "Opened " + msg.url
		}
		m.syncConsole()

	case statusMsg:
		m.status = string(msg)
		m.syncConsole()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// ApplyIDs replaces the monitored servers: every monitor is destroyed, new
// ones start with fresh intervals, and the list is persisted.
func (m *Model) ApplyIDs(ids []string) tea.Cmd {
	m.setIDs(ids)
	m.log.Info("Server IDs updated: %s", strings.Join(m.allIDs, ", "))
	m.generation++
	return tea.Batch(m.startCmd(m.generation, m.ids), m.saveCmd(m.generation, m.allIDs))
}

func (m *Model) setIDs(ids []string) {
	m.allIDs = config.NormalizeIDs(ids)
	visible, dropped := m.grid.Fit(m.allIDs)
	if len(dropped) > 0 {
		m.log.Debug("Grid holds %d servers, not showing: %s", m.grid.Capacity(), strings.Join(dropped, ", "))
	}
	m.ids = visible
	m.snapshots = make(map[string]monitor.Snapshot, len(visible))
	m.notified = make(map[string]uint64)
	m.notices = nil
	m.selected = 0
}

// applySnapshot stores s unless it is older than what is already shown.
func (m *Model) applySnapshot(s monitor.Snapshot) {
	if !m.visible(s.ID) {
		return
	}
	if cur, ok := m.snapshots[s.ID]; ok {
		if s.Instance < cur.Instance || (s.Instance == cur.Instance && s.Seq <= cur.Seq) {
			return
		}
	}
	m.snapshots[s.ID] = s

	if s.Status == monitor.StatusDown && s.ErrCode == bterrors.ErrNotFound && m.notified[s.ID] != s.Instance {
		m.notified[s.ID] = s.Instance
		m.notices = append(m.notices, "Invalid server ID: "+s.ID)
	}
}

func (m Model) visible(id string) bool {
	for _, v := range m.ids {
		if v == id {
			return true
		}
	}
	return false
}

// syncConsole copies new console lines into the viewport while it is open.
func (m *Model) syncConsole() {
	if m.mode != ViewConsole || m.opts.Console == nil {
		return
	}
	seq := m.opts.Console.Seq()
	if seq == m.consoleSeq {
		return
	}
	m.consoleSeq = seq
	atBottom := m.console.AtBottom()
	m.console.SetContent(strings.Join(m.opts.Console.Lines(), "\n"))
	if atBottom {
		m.console.GotoBottom()
	}
}

func (m Model) startCmd(gen uint64, ids []string) tea.Cmd {
	group := m.opts.Group
	if group == nil {
		return nil
	}
	ids = append([]string(nil), ids...)
	return func() tea.Msg {
		if !group.Apply(gen, ids) {
			return nil
		}
		return monitorsStartedMsg{ids: ids}
	}
}

// saveGate serializes saves and skips a list older than the last one saved.
type saveGate struct {
	mu  sync.Mutex
	gen uint64
}

func (m Model) saveCmd(gen uint64, ids []string) tea.Cmd {
	save := m.opts.SaveIDs
	if save == nil {
		return nil
	}
	gate := m.saves
	ids = append([]string(nil), ids...)
	return func() tea.Msg {
		gate.mu.Lock()
		defer gate.mu.Unlock()
		if gen < gate.gen {
			return nil
		}
		gate.gen = gen
		return idsSavedMsg{ids: ids, err: save(ids)}
	}
}

func (m Model) refreshCmd(id string) tea.Cmd {
	group := m.opts.Group
	if group == nil {
		return nil
	}
	return func() tea.Msg {
		mon, ok := group.Get(id)
		if !ok {
			return nil
		}
		err := mon.ManualRefresh()
		switch {
		case errors.Is(err, monitor.ErrRefreshDisabled):
			return statusMsg(fmt.Sprintf("Refresh is disabled for %s while it is down", id))
		case err != nil:
			return statusMsg(fmt.Sprintf("Could not refresh %s: %v", id, err))
		}
		return statusMsg("Refreshing " + id)
	}
}

func (m Model) refreshAllCmd() tea.Cmd {
	group := m.opts.Group
	if group == nil {
		return nil
	}
	return func() tea.Msg {
		n := group.RefreshAll()
		return statusMsg(fmt.Sprintf("Refreshing %d %s", n, util.Pluralize(n, "server", "servers")))
	}
}

func (m Model) openCmd() tea.Cmd {
	url := m.opts.AboutURL
	if url == "" {
		return nil
	}
	open := m.opts.OpenURL
	return func() tea.Msg {
		return openedMsg{url: url, err: open(url)}
	}
}

// SelectedID returns the id of the selected card.
func (m Model) SelectedID() string {
	if m.selected >= 0 && m.selected < len(m.ids) {
		return m.ids[m.selected]
	}
	return ""
}

// IDs returns the ids shown in the grid.
func (m Model) IDs() []string {
	return append([]string(nil), m.ids...)
}

// Snapshot returns the latest snapshot received for id.
func (m Model) Snapshot(id string) (monitor.Snapshot, bool) {
	s, ok := m.snapshots[id]
	return s, ok
}

// Notice returns the notice currently shown, if any.
func (m Model) Notice() string {
	if len(m.notices) == 0 {
		return ""
	}
	return m.notices[0]
}

// Mode returns the current view mode.
func (m Model) Mode() ViewMode {
	return m.mode
}

// UpCount returns how many visible servers are up.
func (m Model) UpCount() int {
	return m.countStatus(monitor.StatusUp)
}

// DownCount returns how many visible servers are down.
func (m Model) DownCount() int {
	return m.countStatus(monitor.StatusDown)
}

func (m Model) countStatus(status monitor.Status) int {
	n := 0
	for _, id := range m.ids {
		if s, ok := m.snapshots[id]; ok && s.Status == status {
			n++
		}
	}
	return n
}

// parseIDList splits the edit dialog's comma separated value.
func parseIDList(s string) []string {
	return config.ParseIDs(s)
}
