package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// Minimum widths; the value column absorbs the rest of the terminal width.
const (
	keyColumnWidth        = 20
	expirationColumnWidth = 20
	ttlColumnWidth        = 10
	minValueColumnWidth   = 16
	tableChrome           = 8
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// EntryTableColumns returns the key/value/expiration columns sized to width.
func EntryTableColumns(width int) []table.Column {
	valueWidth := width - keyColumnWidth - expirationColumnWidth - ttlColumnWidth - tableChrome
	if valueWidth < minValueColumnWidth {
		valueWidth = minValueColumnWidth
	}
	return []table.Column{
		{Title: "Key", Width: keyColumnWidth},
		{Title: "Value", Width: valueWidth},
		{Title: "Expiration", Width: expirationColumnWidth},
		{Title: "TTL", Width: ttlColumnWidth},
	}
}

// EntryFormat controls how entry timestamps are rendered.
type EntryFormat struct {
	DateLayout string
	LocalTime  bool
	Now        func() time.Time
}

// FormatExpiration renders an expiration with the configured layout.
func (f EntryFormat) FormatExpiration(exp time.Time) string {
	if exp.IsZero() {
		return "-"
	}
	if f.LocalTime {
		exp = exp.Local()
	}
	return exp.Format(f.DateLayout)
}

// EntryRows converts entries to table rows in snapshot order.
func EntryRows(entries []entity.CacheEntry, f EntryFormat) []table.Row {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.Key,
			e.Value,
			f.FormatExpiration(e.Expiration),
			TimeUntil(e.Expiration, now()),
		})
	}
	return rows
}
