package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/battletracker/battletracker/internal/util"
)

// Card width bounds
const (
	defaultCardWidth = 26
	minCardWidth     = 22
	maxCardWidth     = 34
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if notice := m.Notice(); notice != "" {
		return m.renderNotice(notice)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case ViewEdit:
		b.WriteString(m.renderEditDialog())
	case ViewConsole:
		b.WriteString(m.renderConsole())
	default:
		b.WriteString(m.renderGrid())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StatusLineStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title with summary counts.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("BattleTracker")

	summary := fmt.Sprintf(" | %d %s | %d up | %d down",
		len(m.ids), util.Pluralize(len(m.ids), "server", "servers"), m.UpCount(), m.DownCount())
	if hidden := len(m.allIDs) - len(m.ids); hidden > 0 {
		summary += fmt.Sprintf(" | %d hidden", hidden)
	}
	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(summary)

	return HeaderStyle.Render(title + stats)
}

// renderGrid lays the cards out column-major.
func (m Model) renderGrid() string {
	if len(m.ids) == 0 {
		return LabelStyle.Render("No servers configured. Press e to add server IDs.")
	}

	cardWidth := m.calculateCardWidth()
	rows := m.grid.UsedRows(len(m.ids))
	cols := m.grid.UsedColumns(len(m.ids))

	var rendered []string
	for r := 0; r < rows; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := m.grid.Index(r, c, len(m.ids))
			if i < 0 {
				continue
			}
			cards = append(cards, m.renderCard(m.ids[i], cardWidth, i == m.selected))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// calculateCardWidth splits the terminal width across the used columns.
func (m Model) calculateCardWidth() int {
	if m.width == 0 {
		return defaultCardWidth
	}
	cols := max(m.grid.UsedColumns(len(m.ids)), 1)
	// Each card adds a border on both sides and a right margin.
	w := m.width/cols - 3
	return min(max(w, minCardWidth), maxCardWidth)
}

// renderNotice renders a dismissable message box.
func (m Model) renderNotice(notice string) string {
	body := strings.Join([]string{
		DownStyle.Render("Server not found"),
		"",
		ValueStyle.Render(notice),
		"",
		LabelStyle.Render("Press esc to dismiss"),
	}, "\n")
	return m.centered(NoticeStyle.Render(body))
}

// renderEditDialog renders the id list editor.
func (m Model) renderEditDialog() string {
	body := strings.Join([]string{
		ServerNameStyle.Render("Edit server IDs"),
		LabelStyle.Render("Comma separated BattleMetrics server IDs"),
		"",
		m.input.View(),
		"",
		MutedStyle.Render("enter apply | esc cancel"),
	}, "\n")
	return helpBoxStyle.Render(body)
}

// renderConsole renders the scrollable log view.
func (m Model) renderConsole() string {
	title := ServerNameStyle.Render("Console")
	if m.opts.Console == nil || m.opts.Console.Len() == 0 {
		return title + "\n" + MutedStyle.Render("No log lines yet")
	}
	return title + "\n" + m.console.View()
}

// renderFooter renders the keyboard hints.
func (m Model) renderFooter() string {
	var hints []string
	switch m.mode {
	case ViewEdit:
		hints = []string{"enter apply", "esc cancel"}
	case ViewConsole:
		hints = []string{"↑↓ scroll", "c/esc close", "q quit"}
	default:
		hints = []string{
			"q quit",
			"r refresh",
			"R refresh all",
			"e edit",
			"c console",
			"o about",
			"? help",
		}
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
