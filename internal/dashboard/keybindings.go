package dashboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewEdit
	ViewConsole
)

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyRefreshAll = "R"
	KeyUp         = "up"
	KeyUpK        = "k"
	KeyDown       = "down"
	KeyDownJ      = "j"
	KeyLeft       = "left"
	KeyLeftH      = "h"
	KeyRight      = "right"
	KeyRightL     = "l"
	KeyEdit       = "e"
	KeyConsole    = "c"
	KeyOpenAbout  = "o"
	KeyToggleHelp = "?"
	KeyClose      = "esc"
	KeyConfirm    = "enter"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyQuitAlt {
		m.quitting = true
		return true, tea.Quit
	}

	// The edit dialog owns the keyboard; everything else goes to the input.
	if m.mode == ViewEdit {
		switch key {
		case KeyConfirm:
			m.mode = ViewGrid
			m.input.Blur()
			return true, m.ApplyIDs(parseIDList(m.input.Value()))
		case KeyClose:
			m.mode = ViewGrid
			m.input.Blur()
			return true, nil
		}
		return false, nil
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	if len(m.notices) > 0 && (key == KeyClose || key == KeyConfirm) {
		m.notices = m.notices[1:]
		return true, nil
	}

	if m.mode == ViewConsole {
		switch key {
		case KeyClose, KeyConsole:
			m.mode = ViewGrid
			return true, nil
		case KeyQuit:
			m.quitting = true
			return true, tea.Quit
		}
		// Scrolling keys go to the viewport.
		return false, nil
	}

	switch key {
	case KeyQuit:
		m.quitting = true
		return true, tea.Quit

	case KeyUp, KeyUpK:
		m.selected = m.grid.Move(m.selected, -1, 0, len(m.ids))
		return true, nil

	case KeyDown, KeyDownJ:
		m.selected = m.grid.Move(m.selected, 1, 0, len(m.ids))
		return true, nil

	case KeyLeft, KeyLeftH:
		m.selected = m.grid.Move(m.selected, 0, -1, len(m.ids))
		return true, nil

	case KeyRight, KeyRightL:
		m.selected = m.grid.Move(m.selected, 0, 1, len(m.ids))
		return true, nil

	case KeyRefresh:
		id := m.SelectedID()
		if id == "" {
			return true, nil
		}
		return true, m.refreshCmd(id)

	case KeyRefreshAll:
		return true, m.refreshAllCmd()

	case KeyEdit:
		m.mode = ViewEdit
		m.input.SetValue(strings.Join(m.allIDs, ", "))
		m.input.CursorEnd()
		return true, m.input.Focus()

	case KeyConsole:
		m.mode = ViewConsole
		m.syncConsole()
		return true, nil

	case KeyOpenAbout:
		return true, m.openCmd()

	case KeyClose:
		m.status = ""
		return true, nil
	}

	return false, nil
}
