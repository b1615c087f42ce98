package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a non-focused Bubbles table sized to its rows.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Nothing is selectable in CLI output.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a table as a plain string. Returns "" for no rows.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	return NewTable(columns, tableRows).View()
}

// FetchRow is one server in the fetch command's output.
type FetchRow struct {
	ID         string
	Name       string
	Players    int
	MaxPlayers int
	Time       string
	// Err is set when the fetch failed; the other fields are then ignored.
	Err string
}

// FetchColumns are the columns of RenderFetchTable.
var FetchColumns = []TableColumn{
	{Title: " ", Width: 1},
	{Title: "ID", Width: 10},
	{Title: "Server", Width: 36},
	{Title: "Players", Width: 9},
	{Title: "Time", Width: 8},
}

// RenderFetchTable renders fetch results, one row per server.
func RenderFetchTable(rows []FetchRow) string {
	if len(rows) == 0 {
		return "No servers to show"
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		if r.Err != "" {
			cells[i] = []string{SymbolDown, r.ID, r.Err, "", ""}
			continue
		}
		players := fmt.Sprintf("%d", r.Players)
		if r.MaxPlayers > 0 {
			players = fmt.Sprintf("%d/%d", r.Players, r.MaxPlayers)
		}
		cells[i] = []string{SymbolUp, r.ID, r.Name, players, r.Time}
	}
	return RenderSimpleTable(FetchColumns, cells)
}

// Summary renders a one-line count of up and down servers.
func Summary(up, down int) string {
	line := SuccessStyle.Render(fmt.Sprintf("%s %d up", SymbolUp, up))
	if down > 0 {
		line += "  " + ErrorStyle.Render(fmt.Sprintf("%s %d down", SymbolDown, down))
	}
	return line
}
