package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/view"
)

const cellSep = "  "

// renderTable draws the current page: a header row of labels with the sort
// arrow, then one line per row padded to a full page so the footer does
// not jump.
func (m Model) renderTable(res view.Result) string {
	styles := m.theme.Styles()
	cols := res.Columns
	lines := make([]string, 0, view.PageSize+1)

	if len(cols) == 0 {
		lines = append(lines, styles.MutedText.Render("  No visible columns. Press c to manage columns."))
		return strings.Join(fillLines(lines, view.PageSize+1), "\n")
	}

	rows := m.displayRows(res)
	params := m.bench.Params()
	widths := columnWidths(cols, rows, params, m.width-gutterWidth)
	selRow := clamp(m.selectedRow, 0, max(len(rows)-1, 0))
	selCol := clamp(m.selectedCol, 0, len(cols)-1)

	// Header
	var hb strings.Builder
	hb.WriteString(strings.Repeat(" ", gutterWidth))
	for i, c := range cols {
		label := c.Label
		if params.SortKey == c.Key {
			label += " " + params.SortDir.Arrow()
		}
		cell := padRight(truncateCell(label, widths[i]), widths[i])
		style := styles.ColumnHeader
		if i == selCol {
			style = style.Underline(true)
		}
		hb.WriteString(style.Render(cell))
		if i < len(cols)-1 {
			hb.WriteString(cellSep)
		}
	}
	lines = append(lines, hb.String())

	if len(rows) == 0 {
		msg := "  No rows. Press i to import a CSV file."
		if q := strings.TrimSpace(params.Search); q != "" {
			msg = fmt.Sprintf("  No rows match %q.", q)
		}
		lines = append(lines, styles.MutedText.Render(msg))
		return strings.Join(fillLines(lines, view.PageSize+1), "\n")
	}

	for r, row := range rows {
		selected := r == selRow
		editing := m.bench.IsEditing(row.ID)

		rowStyle := styles.Text
		switch {
		case selected:
			rowStyle = styles.Selected
		case editing:
			rowStyle = styles.Editing
		case r%2 == 1:
			rowStyle = styles.Zebra
		}

		var b strings.Builder
		b.WriteString(rowStyle.Render(m.gutter(row.ID, selected, editing)))
		for i, c := range cols {
			var cell string
			if m.mode == modeEdit && row.ID == m.editingID && i == selCol {
				input := m.cellInput
				input.Width = max(widths[i]-1, 1)
				cell = padRight(input.View(), widths[i])
			} else {
				cell = rowStyle.Render(padRight(truncateCell(row.Get(c.Key).String(), widths[i]), widths[i]))
				if selected && i == selCol && m.mode == modeBrowse {
					cell = rowStyle.Bold(true).Underline(true).Render(padRight(truncateCell(row.Get(c.Key).String(), widths[i]), widths[i]))
				}
			}
			b.WriteString(cell)
			if i < len(cols)-1 {
				b.WriteString(rowStyle.Render(cellSep))
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(fillLines(lines, view.PageSize+1), "\n")
}

// gutter returns the marker drawn left of a row.
func (m Model) gutter(id string, selected, editing bool) string {
	switch {
	case id == m.carrying:
		return "↕ "
	case editing:
		return "✎ "
	case selected:
		return "› "
	}
	return "  "
}

// displayRows overlays open drafts on the page so edited values show
// before they are saved.
func (m Model) displayRows(res view.Result) []table.Row {
	out := make([]table.Row, len(res.Rows))
	for i, r := range res.Rows {
		if draft, ok := m.bench.Draft(r.ID); ok {
			r = table.Row{ID: r.ID, Fields: draft}
		}
		out[i] = r
	}
	return out
}

// columnWidths sizes each column to its widest label or value, within
// MinCellWidth and MaxCellWidth, then shrinks proportionally to fit avail.
func columnWidths(cols []table.Column, rows []table.Row, params view.Params, avail int) []int {
	widths := make([]int, len(cols))
	total := 0
	for i, c := range cols {
		w := lipgloss.Width(c.Label)
		if params.SortKey == c.Key {
			w += 2
		}
		for _, r := range rows {
			w = max(w, lipgloss.Width(r.Get(c.Key).String()))
		}
		widths[i] = clamp(w, MinCellWidth, MaxCellWidth)
		total += widths[i]
	}
	total += len(cellSep) * (len(cols) - 1)

	if avail <= 0 || total <= avail {
		return widths
	}
	budget := avail - len(cellSep)*(len(cols)-1)
	content := total - len(cellSep)*(len(cols)-1)
	for i, w := range widths {
		widths[i] = max(w*budget/content, MinCellWidth)
	}
	return widths
}

func fillLines(lines []string, n int) []string {
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
