package workbench

import (
	"log"
	"strings"

	"github.com/five82/tabula/internal/columns"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/edit"
	"github.com/five82/tabula/internal/reorder"
	"github.com/five82/tabula/internal/state"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/view"
)

// Workbench is one table session: the store plus the transient view
// parameters and edit drafts that belong to whoever is looking at it.
type Workbench struct {
	store   *state.Store
	session *edit.Session
	params  view.Params
}

// New returns a workbench over store.
func New(store *state.Store) *Workbench {
	return &Workbench{store: store, session: edit.NewSession()}
}

// Store returns the underlying record store.
func (w *Workbench) Store() *state.Store { return w.store }

// Params returns the current view parameters.
func (w *Workbench) Params() view.Params { return w.params }

// View computes the current page. A page left out of range by a mutation
// is clamped first.
func (w *Workbench) View() view.Result {
	snap := w.store.Snapshot()
	total := len(view.Filter(snap.Rows, w.params.Search))
	w.params.Page = view.ClampPage(w.params.Page, total)
	return view.Compute(snap.Columns, snap.Rows, w.params)
}

// Search sets the query and returns to the first page.
func (w *Workbench) Search(query string) {
	w.params.Search = query
	w.params.Page = 0
}

// ToggleSort sorts by key, flipping direction on repeat.
func (w *Workbench) ToggleSort(key string) {
	w.params = w.params.ToggleSort(key)
}

// ClearSort returns to canonical order.
func (w *Workbench) ClearSort() {
	w.params.SortKey = ""
	w.params.SortDir = view.Asc
}

// SetPage moves to page n, clamped to the filtered page range.
func (w *Workbench) SetPage(n int) int {
	total := len(view.Filter(w.store.Rows(), w.params.Search))
	w.params.Page = view.ClampPage(n, total)
	return w.params.Page
}

// Locate finds id in the filtered, sorted view and returns its page and
// position on that page.
func (w *Workbench) Locate(id string) (page, index int, ok bool) {
	rows := view.Filter(w.store.Rows(), w.params.Search)
	if w.params.Sorted() {
		rows = view.Sort(rows, w.params.SortKey, w.params.SortDir)
	}
	i := table.IndexOf(rows, id)
	if i < 0 {
		return 0, 0, false
	}
	return i / view.PageSize, i % view.PageSize, true
}

// IsEditing reports whether id is in edit mode.
func (w *Workbench) IsEditing(id string) bool { return w.session.IsOpen(id) }

// Editing reports whether any row is in edit mode.
func (w *Workbench) Editing() bool { return w.session.Active() }

// EditCount returns the number of rows in edit mode.
func (w *Workbench) EditCount() int { return w.session.Len() }

// Draft returns the pending values for id.
func (w *Workbench) Draft(id string) (table.Fields, bool) { return w.session.Draft(id) }

// StartEdit opens the stored row id for editing.
func (w *Workbench) StartEdit(id string) bool {
	row, ok := w.store.Row(id)
	if !ok {
		return false
	}
	return w.session.Open(row)
}

// SetDraft stores user text for one cell, keeping the kind of the stored
// value it replaces when the text parses as that kind. The hint comes from
// the store rather than the draft so intermediate keystrokes cannot change
// the kind for good.
func (w *Workbench) SetDraft(id, key, text string) bool {
	draft, ok := w.session.Draft(id)
	if !ok {
		return false
	}
	hint := draft.Value(key).Kind()
	if row, ok := w.store.Row(id); ok {
		hint = row.Get(key).Kind()
	}
	return w.session.Set(id, key, table.ParseValue(text, hint))
}

// SaveAll commits every draft.
func (w *Workbench) SaveAll() edit.CommitResult {
	res := w.session.Commit(w.store)
	log.Printf("workbench: saved %d rows (%d missing)", len(res.Applied), len(res.Missing))
	return res
}

// CancelAll discards every draft.
func (w *Workbench) CancelAll() int { return w.session.Discard() }

// CancelRow discards the draft for one row.
func (w *Workbench) CancelRow(id string) bool { return w.session.Close(id) }

// Delete removes the row and any draft it had.
func (w *Workbench) Delete(id string) bool {
	if !w.store.DeleteRow(id) {
		return false
	}
	w.session.Close(id)
	log.Printf("workbench: deleted row %s", id)
	return true
}

// Reorder moves source to target's canonical position.
func (w *Workbench) Reorder(sourceID, targetID string) bool {
	return reorder.Apply(w.store, sourceID, targetID)
}

// Move shifts a row by delta canonical positions.
func (w *Workbench) Move(id string, delta int) bool {
	_, ok := reorder.Step(w.store, id, delta)
	return ok
}

// Import replaces all rows with the parse result unless parsing failed
// outright. Field keys are matched to existing columns by key or label so
// that an exported file imports back under the same keys. Drafts for rows
// that no longer exist are dropped. It reports whether the store changed.
func (w *Workbench) Import(res csvio.Result) bool {
	if res.Failed() {
		log.Printf("workbench: import rejected: %s", strings.Join(res.Errors, "; "))
		return false
	}
	rows := Rekey(res.Rows, res.Headers, w.store.Columns())
	w.store.ReplaceRows(rows)
	dropped := w.session.Retain(w.store.Has)
	w.params.Page = 0
	log.Printf("workbench: imported %d rows (%d errors, %d drafts dropped)", len(rows), len(res.Errors), len(dropped))
	return true
}

// ToggleColumn flips a column's visibility.
func (w *Workbench) ToggleColumn(key string) (bool, error) {
	return columns.Toggle(w.store, key)
}

// AddColumn appends a column derived from label.
func (w *Workbench) AddColumn(label string) (table.Column, error) {
	return columns.Add(w.store, label)
}

// RelabelColumn changes a column's label.
func (w *Workbench) RelabelColumn(key, label string) error {
	return columns.Relabel(w.store, key, label)
}

// ExportCSV serialises all rows, in canonical order, for the visible columns.
func (w *Workbench) ExportCSV() (string, error) {
	snap := w.store.Snapshot()
	return csvio.Export(snap.Rows, snap.VisibleColumns())
}

// Rekey maps imported header names onto column keys. A header equal to a
// column key keeps it, a header equal to a column label (ignoring case)
// takes that column's key, and any other header becomes a derived key.
func Rekey(rows []table.Row, headers []string, cols []table.Column) []table.Row {
	mapping := headerKeys(headers, cols)
	if len(mapping) == 0 {
		return rows
	}
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		var fields table.Fields
		r.Fields.Each(func(k string, v table.Value) {
			if nk, ok := mapping[k]; ok {
				k = nk
			}
			if !fields.Has(k) || !v.IsEmpty() {
				fields.Set(k, v)
			}
		})
		out[i] = table.Row{ID: r.ID, Fields: fields}
	}
	return out
}

func headerKeys(headers []string, cols []table.Column) map[string]string {
	mapping := make(map[string]string)
	for _, h := range headers {
		if table.FindColumn(cols, h) >= 0 {
			continue
		}
		key := ""
		for _, c := range cols {
			if strings.EqualFold(strings.TrimSpace(c.Label), strings.TrimSpace(h)) {
				key = c.Key
				break
			}
		}
		if key == "" {
			key = table.DeriveKey(h)
		}
		if key != "" && key != h {
			mapping[h] = key
		}
	}
	return mapping
}
