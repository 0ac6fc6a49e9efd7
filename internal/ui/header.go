package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/view"
)

// renderHeader renders the title bar: app name, data source, row count and
// edit state.
func (m Model) renderHeader(res view.Result) string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style, text string) string { return s.Background(bg).Render(text) }
	sep := on(styles.FaintText, "  ")

	source := "sample data"
	if m.sourcePath != "" {
		source = filepath.Base(m.sourcePath)
	}

	total := m.bench.Store().Len()
	parts := []string{
		on(styles.Logo, "tabula"),
		on(styles.Text, source),
		on(styles.MutedText, fmt.Sprintf("%d %s", total, plural(total, "row", "rows"))),
	}
	if n := m.bench.EditCount(); n > 0 {
		parts = append(parts, on(styles.WarningText, fmt.Sprintf("%d editing", n)))
	}
	if m.pendingReload != nil {
		parts = append(parts, on(styles.InfoText, "reload pending"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderSearchLine shows the search input, or the active query.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles()
	if m.mode == modeSearch {
		return " " + m.searchInput.View()
	}
	if q := m.bench.Params().Search; strings.TrimSpace(q) != "" {
		return " " + styles.AccentText.Render("/ "+q) + styles.FaintText.Render("  esc clears")
	}
	return " " + styles.FaintText.Render("/ to search")
}

// renderFooter shows paging, sort and move state.
func (m Model) renderFooter(res view.Result) string {
	styles := m.theme.Styles()

	pager := m.pager
	pager.TotalPages = res.Pages()
	pager.Page = res.Page

	parts := []string{
		pager.View(),
		fmt.Sprintf("%d %s", res.Total, plural(res.Total, "match", "matches")),
	}
	if p := m.bench.Params(); p.Sorted() {
		label := p.SortKey
		if i := table.FindColumn(m.bench.Store().Columns(), p.SortKey); i >= 0 {
			label = m.bench.Store().Columns()[i].Label
		}
		parts = append(parts, fmt.Sprintf("sorted by %s %s", label, p.SortDir.Arrow()))
	}
	if m.carrying != "" {
		parts = append(parts, "moving row")
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, " · "))
}

// renderHelpBar shows the short key help for the current mode.
func (m Model) renderHelpBar() string {
	if m.mode == modeEdit {
		return m.help.ShortHelpView(m.keys.editingHelp())
	}
	return m.help.View(m.keys)
}
