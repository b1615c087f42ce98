package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/battletracker/battletracker/internal/monitor"
	"github.com/battletracker/battletracker/internal/util"
)

// cardLines is the fixed number of content lines per card so rows line up.
const cardLines = 5

// countdownUnavailable replaces the countdown while a server is down.
const countdownUnavailable = "unavailable"

// renderCard renders a single server card.
func (m Model) renderCard(id string, width int, selected bool) string {
	style := CardStyle.Width(width)
	if selected {
		style = CardSelectedStyle.Width(width)
	}
	// Inner width excludes the card's horizontal padding.
	innerWidth := width - 2

	s, ok := m.snapshots[id]
	var lines []string
	switch {
	case !ok || s.Status == monitor.StatusUnknown:
		lines = renderLoadingLines(id, s, ok, innerWidth)
	case s.Status == monitor.StatusDown:
		lines = renderDownLines(s, innerWidth)
	default:
		lines = renderUpLines(s, innerWidth)
	}

	for len(lines) < cardLines {
		lines = append(lines, "")
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderUpLines(s monitor.Snapshot, width int) []string {
	players := fmt.Sprintf("%d", s.Players)
	if s.MaxPlayers > 0 {
		players = fmt.Sprintf("%d/%d", s.Players, s.MaxPlayers)
	}

	return []string{
		ServerNameStyle.Render(util.Truncate(s.Name, width)),
		LabelStyle.Render("Players: ") + TrendStyle(s.Trend).Render(players+" "+s.Trend.Arrow()),
		LabelStyle.Render("Time: ") + ValueStyle.Render(util.Truncate(s.Time, max(width-6, 1))),
		renderCountdownLine(s),
		RenderColoredSparkline(s.History, width, ColorGraph),
	}
}

func renderDownLines(s monitor.Snapshot, width int) []string {
	lines := []string{
		ServerNameStyle.Render(util.Truncate(s.ID, width)),
		DownStyle.Render("DOWN"),
		MutedStyle.Render(util.Truncate(s.Err, width)),
		renderCountdownLine(s),
	}
	if len(s.History) > 0 {
		lines = append(lines, RenderColoredSparkline(s.History, width, ColorTextMuted))
	}
	return lines
}

func renderLoadingLines(id string, s monitor.Snapshot, ok bool, width int) []string {
	lines := []string{
		ServerNameStyle.Render(util.Truncate(id, width)),
		MutedStyle.Render("Loading..."),
	}
	if ok {
		lines = append(lines, "", renderCountdownLine(s))
	}
	return lines
}

// renderCountdownLine renders the seconds until the next refresh and whether
// a manual refresh is currently allowed.
func renderCountdownLine(s monitor.Snapshot) string {
	value := countdownUnavailable
	if s.CountdownAvailable() {
		value = fmt.Sprintf("%ds", s.Countdown)
	}

	glyph := lipgloss.NewStyle().Foreground(ColorHealthy).Render(RefreshEnabledGlyph)
	if !s.RefreshEnabled {
		glyph = MutedStyle.Render(RefreshDisabledGlyph)
	}
	return LabelStyle.Render("Next: ") + ValueStyle.Render(value) + " " + glyph
}
