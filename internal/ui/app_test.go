package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tabula/internal/config"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/prefs"
	"github.com/five82/tabula/internal/state"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/view"
	"github.com/five82/tabula/internal/workbench"
)

func person(id, name string, age float64) table.Row {
	return table.NewRow(id, table.FieldsOf(table.F("name", table.Str(name)), table.F("age", table.Num(age))))
}

func testColumns() []table.Column {
	return []table.Column{
		{Key: "name", Label: "Name", Visible: true},
		{Key: "age", Label: "Age", Visible: true},
	}
}

func newTestModel(t *testing.T, rows ...table.Row) Model {
	t.Helper()
	store := state.NewStore(testColumns(), rows)
	m := New(Options{
		Workbench: workbench.New(store),
		Config:    config.Default(),
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

// pressAndRun presses k and feeds the message its command produces back in.
// Only used for keys whose command is a plain message, never a timer.
func pressAndRun(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("key %q produced no command", k)
	}
	return update(t, m, cmd())
}

func names(m Model) []string {
	var out []string
	for _, r := range m.bench.View().Rows {
		out = append(out, r.Get("name").String())
	}
	return out
}

func canonicalNames(m Model) string {
	var out []string
	for _, r := range m.bench.Store().Rows() {
		out = append(out, r.Get("name").String())
	}
	return strings.Join(out, "")
}

func TestModel_SortBySelectedColumn(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "s")
	if got := names(m); got[0] != "Ann" {
		t.Fatalf("ascending = %v", got)
	}
	m = press(t, m, "s")
	if got := names(m); got[0] != "Bob" || m.bench.Params().SortDir != view.Desc {
		t.Fatalf("descending = %v", got)
	}

	m = press(t, m, "l", "s")
	if p := m.bench.Params(); p.SortKey != "age" || p.SortDir != view.Asc {
		t.Fatalf("params after sorting age = %+v", p)
	}

	m = press(t, m, "S")
	if got := names(m); got[0] != "Bob" || m.bench.Params().Sorted() {
		t.Fatalf("cleared sort = %v", got)
	}
}

func TestModel_EditAndSave(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "enter")
	if m.mode != modeEdit || !m.bench.IsEditing("r1") {
		t.Fatalf("mode = %v, editing = %v", m.mode, m.bench.IsEditing("r1"))
	}
	m = press(t, m, "backspace", "backspace", "backspace", "R", "o", "b")

	draft, _ := m.bench.Draft("r1")
	if got := draft.Value("name").String(); got != "Rob" {
		t.Fatalf("draft name = %q", got)
	}
	if row, _ := m.bench.Store().Row("r1"); row.Get("name").String() != "Bob" {
		t.Fatal("draft leaked into the store before save")
	}

	m = press(t, m, "tab")
	if m.selectedCol != 1 || m.cellInput.Value() != "34" {
		t.Fatalf("tab moved to col %d value %q", m.selectedCol, m.cellInput.Value())
	}

	m = press(t, m, "ctrl+s")
	if m.mode != modeBrowse || m.bench.Editing() {
		t.Fatal("save left rows open")
	}
	row, _ := m.bench.Store().Row("r1")
	if row.Get("name").String() != "Rob" {
		t.Fatalf("saved name = %q", row.Get("name").String())
	}
	if n, ok := row.Get("age").Number(); !ok || n != 34 {
		t.Fatalf("age changed: %v", row.Get("age"))
	}
	if !strings.HasPrefix(m.notice.text, "Saved 1 row") {
		t.Fatalf("notice = %q", m.notice.text)
	}
}

func TestModel_EscDiscardsAllEdits(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "enter", "x", "enter")
	m = press(t, m, "j", "enter", "y", "esc")
	if m.bench.Editing() || m.mode != modeBrowse {
		t.Fatal("esc left rows open")
	}
	if canonicalNames(m) != "BobAnn" {
		t.Fatalf("store changed: %s", canonicalNames(m))
	}
}

func TestModel_CancelRow(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "enter", "enter", "j", "enter", "enter")
	if m.bench.EditCount() != 2 {
		t.Fatalf("EditCount = %d, want 2", m.bench.EditCount())
	}
	m = press(t, m, "x")
	if m.bench.IsEditing("r2") || !m.bench.IsEditing("r1") {
		t.Fatal("x should only close the selected row")
	}
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "/", "a", "n", "n")
	if m.mode != modeSearch || m.bench.Params().Search != "ann" {
		t.Fatalf("search = %q mode %v", m.bench.Params().Search, m.mode)
	}
	if got := names(m); len(got) != 1 || got[0] != "Ann" {
		t.Fatalf("filtered = %v", got)
	}

	m = press(t, m, "enter")
	if m.mode != modeBrowse || m.bench.Params().Search != "ann" {
		t.Fatal("enter should keep the query")
	}

	m = press(t, m, "esc")
	if m.bench.Params().Search != "" || len(names(m)) != 2 {
		t.Fatal("esc in browse mode should clear the query")
	}
}

func TestModel_DeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))

	m = press(t, m, "d")
	if m.modal == nil {
		t.Fatal("d should open a confirmation")
	}
	m = press(t, m, "n")
	if m.modal != nil || m.bench.Store().Len() != 2 {
		t.Fatal("n should close without deleting")
	}

	m = press(t, m, "d")
	m = pressAndRun(t, m, "y")
	if m.bench.Store().Has("r1") || m.bench.Store().Len() != 1 {
		t.Fatal("y should delete the selected row")
	}
}

func TestModel_PickAndDrop(t *testing.T) {
	m := newTestModel(t,
		person("a", "A", 1), person("b", "B", 2), person("c", "C", 3), person("d", "D", 4))

	m = press(t, m, "m", "j", "j", "m")
	if got := canonicalNames(m); got != "BCAD" {
		t.Fatalf("order = %s, want BCAD", got)
	}
	if m.carrying != "" || m.selectedRow != 2 {
		t.Fatalf("carrying = %q selectedRow = %d", m.carrying, m.selectedRow)
	}

	m = press(t, m, "m", "esc")
	if m.carrying != "" || canonicalNames(m) != "BCAD" {
		t.Fatal("esc should drop nothing")
	}
}

func TestModel_MoveKeys(t *testing.T) {
	m := newTestModel(t, person("a", "A", 1), person("b", "B", 2), person("c", "C", 3))

	m = press(t, m, "J")
	if got := canonicalNames(m); got != "BAC" || m.selectedRow != 1 {
		t.Fatalf("order = %s selected = %d", got, m.selectedRow)
	}
	m = press(t, m, "J", "J")
	if got := canonicalNames(m); got != "BCA" || m.selectedRow != 2 {
		t.Fatalf("order = %s selected = %d", got, m.selectedRow)
	}
	m = press(t, m, "K")
	if got := canonicalNames(m); got != "BAC" {
		t.Fatalf("order = %s", got)
	}
}

func TestModel_PagingFollowsCursor(t *testing.T) {
	var rows []table.Row
	for i := 0; i < 12; i++ {
		rows = append(rows, person(string(rune('a'+i)), string(rune('A'+i)), float64(i)))
	}
	m := newTestModel(t, rows...)

	for i := 0; i < 10; i++ {
		m = press(t, m, "j")
	}
	if res := m.bench.View(); res.Page != 1 || m.selectedRow != 0 {
		t.Fatalf("page = %d row = %d", res.Page, m.selectedRow)
	}
	m = press(t, m, "k")
	if res := m.bench.View(); res.Page != 0 || m.selectedRow != view.PageSize-1 {
		t.Fatalf("page = %d row = %d", res.Page, m.selectedRow)
	}
	m = press(t, m, "]", "]")
	if m.bench.View().Page != 1 {
		t.Fatal("page down should clamp at the last page")
	}
}

func TestModel_ColumnsModal(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34))

	m = press(t, m, "c", " ")
	if cols := m.bench.Store().Columns(); cols[0].Visible {
		t.Fatal("space should hide the first column")
	}

	m = press(t, m, "a", "D", "e", "p", "t", "enter")
	cols := m.bench.Store().Columns()
	if len(cols) != 3 || cols[2].Key != "dept" || cols[2].Label != "Dept" {
		t.Fatalf("columns = %+v", cols)
	}

	m = press(t, m, "a", "d", "e", "p", "t", "enter")
	cm := m.modal.(*columnsModal)
	if cm.err == "" || len(m.bench.Store().Columns()) != 3 {
		t.Fatal("duplicate key should be rejected in the modal")
	}

	m = press(t, m, "esc", "esc")
	if m.modal != nil {
		t.Fatal("esc should close the column manager")
	}
}

func TestModel_ThemeCyclePersists(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "T")
	if m.theme.Name != "Light" {
		t.Fatalf("theme = %q", m.theme.Name)
	}
	p, _ := prefs.Load(m.prefsPath)
	if p.Theme != "Light" {
		t.Fatalf("saved theme = %q", p.Theme)
	}
}

func TestModel_Import(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34))
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("Name,Age\nCat,41\nDan,22\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, promptResultMsg{purpose: promptImport, value: path})
	if m.prefs.LastImport != path {
		t.Fatalf("LastImport = %q", m.prefs.LastImport)
	}

	msg := importCmd(context.Background(), path, m.config.ImportOptions())()
	m = update(t, m, msg)
	if got := canonicalNames(m); got != "CatDan" {
		t.Fatalf("rows after import = %s", got)
	}
	if m.notice.text != "Imported 2 rows" || m.sourcePath != path {
		t.Fatalf("notice = %q source = %q", m.notice.text, m.sourcePath)
	}

	bad := importCmd(context.Background(), filepath.Join(t.TempDir(), "none.csv"), csvio.Options{})()
	m = update(t, m, bad)
	if canonicalNames(m) != "CatDan" || m.notice.level != noticeError {
		t.Fatal("failed import should keep rows and show an error")
	}
}

func TestModel_ExportPrompt(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34))
	m.config.ExportDir = t.TempDir()

	next, cmd := m.Update(promptResultMsg{purpose: promptExport, value: "json"})
	m = next.(Model)
	if m.prefs.ExportFormat != "json" || cmd == nil {
		t.Fatalf("ExportFormat = %q", m.prefs.ExportFormat)
	}
	m = update(t, m, cmd())
	want := filepath.Join(m.config.ExportDir, m.config.ExportName+".json")
	if m.notice.text != "Exported to "+want {
		t.Fatalf("notice = %q", m.notice.text)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("export file: %v", err)
	}

	m = update(t, m, promptResultMsg{purpose: promptExport, value: "xlsx"})
	if m.notice.level != noticeError {
		t.Fatal("unknown format should be an error notice")
	}
}

func TestModel_ReloadWaitsForEdits(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34))
	reload := csvio.ParseString("name,age\nZed,50\n", csvio.Options{InferTypes: true})

	m = press(t, m, "enter")
	m = update(t, m, reloadMsg(reload))
	if m.pendingReload == nil || canonicalNames(m) != "Bob" {
		t.Fatal("reload should wait while a row is open")
	}

	m = press(t, m, "esc")
	if m.pendingReload != nil || canonicalNames(m) != "Zed" {
		t.Fatalf("reload not applied after cancel: %s", canonicalNames(m))
	}
}

func TestModel_NoticeExpiry(t *testing.T) {
	m := newTestModel(t)
	m.notify(noticeInfo, "first")
	old := m.notice.seq
	m.notify(noticeInfo, "second")

	m = update(t, m, noticeExpiredMsg{seq: old})
	if m.notice.text != "second" {
		t.Fatal("an old timer cleared a newer notice")
	}
	m = update(t, m, noticeExpiredMsg{seq: m.notice.seq})
	if m.notice.text != "" {
		t.Fatal("notice did not expire")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, person("r1", "Bob", 34), person("r2", "Ann", 29))
	m = press(t, m, "s")

	out := m.View()
	for _, want := range []string{"tabula", "Name ▲", "Age", "Ann", "Bob", "Page 1 of 1", "2 matches"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = press(t, m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not shown")
	}
	m = press(t, m, "x")
	if m.showHelp {
		t.Error("any key should close help")
	}
}

func TestColumnWidths(t *testing.T) {
	cols := testColumns()
	rows := []table.Row{person("r1", "Bartholomew", 34)}

	got := columnWidths(cols, rows, view.Params{}, 100)
	if got[0] != len("Bartholomew") || got[1] != MinCellWidth {
		t.Fatalf("widths = %v", got)
	}

	sorted := columnWidths(cols, rows, view.Params{SortKey: "age"}, 100)
	if sorted[1] != MinCellWidth+1 {
		t.Fatalf("sorted widths = %v", sorted)
	}

	narrow := columnWidths(cols, rows, view.Params{}, 10)
	if narrow[0] >= got[0] || narrow[1] < MinCellWidth {
		t.Fatalf("narrow widths = %v", narrow)
	}
}

func TestNoticeLevelFor(t *testing.T) {
	tests := []struct {
		summary string
		want    noticeLevel
	}{
		{"Imported 3 rows", noticeSuccess},
		{"Imported 2 rows, 1 skipped: Row 2 missing columns: age", noticeInfo},
		{"Imported 2 rows, 1 with warnings: Row 1 has 3 fields, expected 2", noticeInfo},
		{"Error reading CSV file.", noticeError},
	}
	for _, tt := range tests {
		if got := noticeLevelFor(tt.summary); got != tt.want {
			t.Errorf("noticeLevelFor(%q) = %v, want %v", tt.summary, got, tt.want)
		}
	}
}
