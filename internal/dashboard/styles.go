package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/battletracker/battletracker/internal/monitor"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	ColorGraph = lipgloss.Color("#00FFFF") // Neon cyan
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorAccent)

	ServerNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	DownStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCritical).
			Foreground(ColorTextPrimary).
			Padding(1, 2)

	StatusLineStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Padding(0, 1)
)

// Refresh indicator glyphs
const (
	RefreshEnabledGlyph  = "↻"
	RefreshDisabledGlyph = "⊘"
)

// TrendColor returns the color used for a player count with the given trend.
func TrendColor(t monitor.Trend) lipgloss.Color {
	switch t {
	case monitor.TrendUp:
		return ColorHealthy
	case monitor.TrendDown:
		return ColorCritical
	default:
		return ColorTextPrimary
	}
}

// TrendStyle returns a style with the trend's foreground color.
func TrendStyle(t monitor.Trend) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TrendColor(t))
}
