// Package reorder moves one row to another row's position.
package reorder

import (
	"log"

	"github.com/five82/tabula/internal/table"
)

// Store is the subset of the record store a reorder needs.
type Store interface {
	Rows() []table.Row
	ReplaceRows(rows []table.Row)
}

// Propose returns a new sequence with the source row removed and reinserted
// at the target's original index. Moving down lands the row after the
// target, moving up lands it before. It reports false, returning rows
// unchanged, when either id is unknown or both are the same.
func Propose(rows []table.Row, sourceID, targetID string) ([]table.Row, bool) {
	if sourceID == targetID {
		return rows, false
	}
	from := table.IndexOf(rows, sourceID)
	to := table.IndexOf(rows, targetID)
	if from < 0 || to < 0 {
		return rows, false
	}

	out := make([]table.Row, 0, len(rows))
	out = append(out, rows[:from]...)
	out = append(out, rows[from+1:]...)

	moved := rows[from]
	out = append(out, table.Row{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, true
}

// Apply reorders the stored rows. Unknown ids leave the store unchanged.
func Apply(store Store, sourceID, targetID string) bool {
	next, ok := Propose(store.Rows(), sourceID, targetID)
	if !ok {
		return false
	}
	store.ReplaceRows(next)
	log.Printf("reorder: moved %s to position of %s", sourceID, targetID)
	return true
}

// Step moves the row with id by delta positions, clamped to the ends.
// It returns the target id used, or false when nothing moves.
func Step(store Store, id string, delta int) (string, bool) {
	rows := store.Rows()
	from := table.IndexOf(rows, id)
	if from < 0 || delta == 0 {
		return "", false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= len(rows) {
		to = len(rows) - 1
	}
	if to == from {
		return "", false
	}
	target := rows[to].ID
	if !Apply(store, id, target) {
		return "", false
	}
	return target, true
}
