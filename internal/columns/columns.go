// Package columns changes column visibility, labels and membership.
// Row data is never touched.
package columns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/tabula/internal/table"
)

var (
	// ErrEmptyLabel is returned when a label is blank after trimming.
	ErrEmptyLabel = errors.New("column label is empty")
	// ErrDuplicateKey is returned when a new column's key is already used.
	ErrDuplicateKey = errors.New("column key already exists")
	// ErrUnknownColumn is returned for keys with no column.
	ErrUnknownColumn = errors.New("unknown column")
)

// Store is the subset of the record store the column manager needs.
type Store interface {
	Columns() []table.Column
	ReplaceColumns(cols []table.Column)
}

// Toggle flips the visibility of the column with key and reports the new
// visibility. Unknown keys leave the columns unchanged.
func Toggle(store Store, key string) (bool, error) {
	cols := store.Columns()
	idx := table.FindColumn(cols, key)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	cols[idx].Visible = !cols[idx].Visible
	store.ReplaceColumns(cols)
	return cols[idx].Visible, nil
}

// Add appends a visible column derived from label. Existing row values
// stored under the derived key become visible immediately.
func Add(store Store, label string) (table.Column, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return table.Column{}, ErrEmptyLabel
	}
	col := table.NewColumn(label)
	cols := store.Columns()
	if table.FindColumn(cols, col.Key) >= 0 {
		return table.Column{}, fmt.Errorf("%w: %s", ErrDuplicateKey, col.Key)
	}
	store.ReplaceColumns(append(cols, col))
	return col, nil
}

// Relabel changes the display label of key. The key itself is kept.
func Relabel(store Store, key, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyLabel
	}
	cols := store.Columns()
	idx := table.FindColumn(cols, key)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	cols[idx].Label = label
	store.ReplaceColumns(cols)
	return nil
}

// SetAllVisible shows or hides every column.
func SetAllVisible(store Store, visible bool) {
	cols := store.Columns()
	for i := range cols {
		cols[i].Visible = visible
	}
	store.ReplaceColumns(cols)
}
