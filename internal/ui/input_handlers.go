package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tabula/internal/config"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/export"
	"github.com/five82/tabula/internal/prefs"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/view"
)

// handleKey routes keyboard input to the overlay, modal or input that
// currently owns it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes the help and activity overlays.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showActivity {
		m.showActivity = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		m.modal = modal
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.bench.View()
	m.clampCursor(res)
	cols := res.Columns
	row, hasRow := m.selectedRowOf(res)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.showActivity = true
		m.activity, m.activityErr = nil, nil
		cmd := loadActivityCmd(m.config.LogFile)
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		cmd := m.escape()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		} else if res.Page > 0 {
			m.bench.SetPage(res.Page - 1)
			m.selectedRow = view.PageSize - 1
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(res.Rows)-1 {
			m.selectedRow++
		} else if res.Page < res.Pages()-1 {
			m.bench.SetPage(res.Page + 1)
			m.selectedRow = 0
		}
	case key.Matches(msg, m.keys.Left):
		if m.selectedCol > 0 {
			m.selectedCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selectedCol < len(cols)-1 {
			m.selectedCol++
		}
	case key.Matches(msg, m.keys.Top):
		m.bench.SetPage(0)
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.bench.SetPage(res.Pages() - 1)
		m.selectedRow = view.PageSize - 1
	case key.Matches(msg, m.keys.PageUp):
		m.bench.SetPage(res.Page - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.bench.SetPage(res.Page + 1)

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Sort):
		if m.selectedCol < len(cols) {
			m.bench.ToggleSort(cols[m.selectedCol].Key)
		}
	case key.Matches(msg, m.keys.ClearSort):
		m.bench.ClearSort()

	case key.Matches(msg, m.keys.SaveAll):
		cmd := m.saveAll()
		return m, cmd

	case key.Matches(msg, m.keys.Columns):
		m.modal = newColumnsModal(m.bench)

	case key.Matches(msg, m.keys.Import):
		value := m.prefs.LastImport
		if value == "" {
			value = m.sourcePath
		}
		m.modal = newPromptModal(promptImport, "Import",
			"Path to a .csv or .parquet file. Replaces every row.", value)

	case key.Matches(msg, m.keys.Export):
		format := m.prefs.ExportFormat
		if format == "" {
			format = m.config.ExportFormat
		}
		m.modal = newPromptModal(promptExport, "Export",
			fmt.Sprintf("csv, json or parquet. Saved as %s.", filepath.Join(m.config.ExportDir, m.config.ExportName)), format)
	}

	if !hasRow {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		if !m.bench.IsEditing(row.ID) && !m.bench.StartEdit(row.ID) {
			return m, nil
		}
		cmd := m.focusCell(row.ID, m.selectedCol, cols)
		return m, cmd

	case key.Matches(msg, m.keys.CancelRow):
		if m.bench.CancelRow(row.ID) {
			cmd := tea.Batch(m.notify(noticeInfo, "Edit cancelled"), m.applyPendingReload())
			return m, cmd
		}

	case key.Matches(msg, m.keys.Delete):
		m.modal = &confirmModal{
			question: fmt.Sprintf("Delete row %q?", rowLabel(row, cols)),
			rowID:    row.ID,
		}

	case key.Matches(msg, m.keys.Pick):
		cmd := m.pickOrDrop(row)
		return m, cmd

	case key.Matches(msg, m.keys.MoveUp):
		if m.bench.Move(row.ID, -1) {
			m.followRow(row.ID)
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.bench.Move(row.ID, 1) {
			m.followRow(row.ID)
		}

	case key.Matches(msg, m.keys.Copy):
		return m, copyRowCmd(row, cols)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.bench.Search("")
		m.mode = modeBrowse
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.bench.Params().Search {
		m.bench.Search(q)
		m.selectedRow = 0
	}
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.bench.View().Columns

	switch {
	case key.Matches(msg, m.keys.SaveAll):
		cmd := m.saveAll()
		return m, cmd
	case key.Matches(msg, m.keys.Escape):
		cmd := m.cancelAll()
		return m, cmd
	case key.Matches(msg, m.keys.NextCell):
		cmd := m.focusCell(m.editingID, m.selectedCol+1, cols)
		return m, cmd
	case key.Matches(msg, m.keys.PrevCell):
		cmd := m.focusCell(m.editingID, m.selectedCol-1, cols)
		return m, cmd
	case key.Matches(msg, m.keys.Confirm):
		// Leave the cell; the row stays open until saved or cancelled.
		m.cellInput.Blur()
		m.mode = modeBrowse
		m.editingID = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.cellInput, cmd = m.cellInput.Update(msg)
	if m.selectedCol < len(cols) {
		m.bench.SetDraft(m.editingID, cols[m.selectedCol].Key, m.cellInput.Value())
	}
	return m, cmd
}

// focusCell puts the cell input on column col of row id, wrapping at
// either end of the visible columns.
func (m *Model) focusCell(id string, col int, cols []table.Column) tea.Cmd {
	if len(cols) == 0 {
		return m.notify(noticeError, "No visible columns to edit")
	}
	col = (col%len(cols) + len(cols)) % len(cols)
	draft, _ := m.bench.Draft(id)

	m.editingID = id
	m.selectedCol = col
	m.cellInput = newInput(draft.Value(cols[col].Key).String(), cols[col].Label)
	m.cellInput.Prompt = ""
	m.mode = modeEdit
	return nil
}

func (m *Model) saveAll() tea.Cmd {
	m.mode = modeBrowse
	m.editingID = ""
	m.cellInput.Blur()
	if !m.bench.Editing() {
		return m.notify(noticeInfo, "No edits to save")
	}
	res := m.bench.SaveAll()
	text := fmt.Sprintf("Saved %d %s", len(res.Applied), plural(len(res.Applied), "row", "rows"))
	if len(res.Missing) > 0 {
		text += fmt.Sprintf(", %d no longer present", len(res.Missing))
	}
	return tea.Batch(m.notify(noticeSuccess, text), m.applyPendingReload())
}

func (m *Model) cancelAll() tea.Cmd {
	m.mode = modeBrowse
	m.editingID = ""
	m.cellInput.Blur()
	n := m.bench.CancelAll()
	return tea.Batch(
		m.notify(noticeInfo, fmt.Sprintf("Discarded %d %s", n, plural(n, "edit", "edits"))),
		m.applyPendingReload(),
	)
}

// escape backs out of the innermost pending state.
func (m *Model) escape() tea.Cmd {
	switch {
	case m.carrying != "":
		m.carrying = ""
		return m.notify(noticeInfo, "Move cancelled")
	case m.bench.Editing():
		return m.cancelAll()
	case m.notice.text != "":
		m.notice = notice{}
	case m.bench.Params().Search != "":
		m.searchInput.SetValue("")
		m.bench.Search("")
		m.selectedRow = 0
	}
	return nil
}

// pickOrDrop implements keyboard drag and drop: the first press picks the
// row up, the second drops it onto the row under the cursor.
func (m *Model) pickOrDrop(row table.Row) tea.Cmd {
	switch m.carrying {
	case "":
		m.carrying = row.ID
		return m.notify(noticeInfo, "Moving row: select a target and press m, esc to cancel")
	case row.ID:
		m.carrying = ""
		return nil
	}
	source := m.carrying
	m.carrying = ""
	if !m.bench.Reorder(source, row.ID) {
		return m.notify(noticeError, "Row could not be moved")
	}
	m.followRow(source)
	return nil
}

func (m *Model) deleteRow(id string) (tea.Model, tea.Cmd) {
	if !m.bench.Delete(id) {
		return *m, nil
	}
	if m.carrying == id {
		m.carrying = ""
	}
	if m.editingID == id {
		m.editingID = ""
		m.mode = modeBrowse
	}
	m.clampCursor(m.bench.View())
	cmd := tea.Batch(m.notify(noticeSuccess, "Row deleted"), m.applyPendingReload())
	return *m, cmd
}

func (m Model) handlePrompt(msg promptResultMsg) (tea.Model, tea.Cmd) {
	switch msg.purpose {
	case promptImport:
		if msg.value == "" {
			cmd := m.notify(noticeError, "Import cancelled: no file given")
			return m, cmd
		}
		m.prefs.LastImport = msg.value
		m.savePrefs()
		path := config.ExpandPath(msg.value)
		cmd := tea.Batch(
			m.notify(noticeInfo, "Importing "+path),
			importCmd(m.ctx, path, m.config.ImportOptions()),
		)
		return m, cmd

	case promptExport:
		f, err := export.ParseFormat(msg.value)
		if err != nil {
			cmd := m.notify(noticeError, err.Error())
			return m, cmd
		}
		m.prefs.ExportFormat = f.String()
		m.savePrefs()
		snap := m.bench.Store().Snapshot()
		cmd := exportCmd(m.config.ExportDir, m.config.ExportName, f, snap.Rows, snap.VisibleColumns())
		return m, cmd
	}
	return m, nil
}

func (m Model) handleImported(msg importedMsg) (tea.Model, tea.Cmd) {
	if !m.bench.Import(msg.result) {
		cmd := m.notify(noticeError, strings.Join(msg.result.Errors, " "))
		return m, cmd
	}
	m.sourcePath = msg.path
	m.afterReplace()
	summary := msg.result.Summary()
	cmd := m.notify(noticeLevelFor(summary), summary)
	return m, cmd
}

func (m Model) handleExported(msg exportedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.notify(noticeError, "Export failed: "+msg.err.Error())
		return m, cmd
	}
	cmd := m.notify(noticeSuccess, "Exported to "+msg.path)
	return m, cmd
}

// handleReload applies a watcher reload, or holds it while rows are open
// for editing so drafts are not pruned under the user.
func (m Model) handleReload(res csvio.Result) (tea.Model, tea.Cmd) {
	next := waitForReloadCmd(m.reloads)
	if m.bench.Editing() {
		m.pendingReload = &res
		cmd := tea.Batch(next, m.notify(noticeInfo, "File changed on disk; reload waits until edits are saved or cancelled"))
		return m, cmd
	}
	cmd := tea.Batch(next, m.applyReload(res))
	return m, cmd
}

func (m *Model) applyReload(res csvio.Result) tea.Cmd {
	if !m.bench.Import(res) {
		return m.notify(noticeError, "Reload failed: "+strings.Join(res.Errors, " "))
	}
	m.afterReplace()
	return m.notify(noticeLevelFor(res.Summary()), "Reloaded: "+res.Summary())
}

func (m *Model) applyPendingReload() tea.Cmd {
	if m.pendingReload == nil || m.bench.Editing() {
		return nil
	}
	res := *m.pendingReload
	m.pendingReload = nil
	return m.applyReload(res)
}

// afterReplace resets row state after every row was replaced.
func (m *Model) afterReplace() {
	m.selectedRow = 0
	if m.carrying != "" && !m.bench.Store().Has(m.carrying) {
		m.carrying = ""
	}
}

// followRow moves the cursor to wherever id now appears.
func (m *Model) followRow(id string) {
	if page, idx, ok := m.bench.Locate(id); ok {
		m.bench.SetPage(page)
		m.selectedRow = idx
	}
}

func (m *Model) clampCursor(res view.Result) {
	m.selectedRow = clamp(m.selectedRow, 0, max(len(res.Rows)-1, 0))
	m.selectedCol = clamp(m.selectedCol, 0, max(len(res.Columns)-1, 0))
}

func (m Model) selectedRowOf(res view.Result) (table.Row, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(res.Rows) {
		return table.Row{}, false
	}
	return res.Rows[m.selectedRow], true
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("ui: save prefs: %v", err)
	}
}

// rowLabel names a row by its first non-empty visible value.
func rowLabel(row table.Row, cols []table.Column) string {
	for _, c := range cols {
		if v := row.Get(c.Key); !v.IsEmpty() {
			return v.String()
		}
	}
	return row.ID
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
