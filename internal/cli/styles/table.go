package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sysprefs/internal/infrastructure/platform"
)

// NewStyledTable creates a themed, read-only table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// SourceTableColumns returns columns for the source status table.
func SourceTableColumns() []table.Column {
	return []table.Column{
		{Title: "Source", Width: 12},
		{Title: "Priority", Width: 9},
		{Title: "Available", Width: 10},
	}
}

// SourceTableRows converts source statuses to table rows.
func SourceTableRows(statuses []platform.SourceStatus) []table.Row {
	rows := make([]table.Row, 0, len(statuses))
	for _, s := range statuses {
		available := "no"
		if s.Available {
			available = "yes"
		}
		rows = append(rows, table.Row{s.Name, strconv.Itoa(s.Priority), available})
	}
	return rows
}

// NewSourceTable builds the source status table.
func NewSourceTable(theme *Theme, statuses []platform.SourceStatus) table.Model {
	return NewStyledTable(theme, SourceTableColumns(), SourceTableRows(statuses))
}
