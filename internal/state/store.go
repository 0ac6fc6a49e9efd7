package state

import (
	"log"
	"sync"
	"time"

	"github.com/five82/tabula/internal/table"
)

// Snapshot is a point-in-time copy of the table contents.
type Snapshot struct {
	Columns   []table.Column
	Rows      []table.Row
	Version   uint64
	UpdatedAt time.Time
}

// VisibleColumns returns the visible columns in declared order.
func (s Snapshot) VisibleColumns() []table.Column {
	return table.VisibleColumns(s.Columns)
}

// Store is the single authoritative holder of rows and columns.
// The zero value is an empty store ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a store seeded with cols and rows.
func NewStore(cols []table.Column, rows []table.Row) *Store {
	s := &Store{}
	s.ReplaceColumns(cols)
	s.ReplaceRows(rows)
	return s
}

// ReplaceRows installs rows as the new contents in the given order.
// Rows without an identifier, or repeating an earlier one, are issued a
// fresh identifier so that identifiers stay unique.
func (s *Store) ReplaceRows(rows []table.Row) {
	next := make([]table.Row, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		r = r.Clone()
		if _, dup := seen[r.ID]; r.ID == "" || dup {
			if r.ID != "" {
				log.Printf("state: duplicate row id %q reissued", r.ID)
			}
			r.ID = table.NewID()
		}
		seen[r.ID] = struct{}{}
		next = append(next, r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Rows = next
	s.touch()
}

// UpdateRow merges updates into the row with id. Keys absent from updates
// are preserved and the row keeps its position. It reports whether a row
// matched; an unknown id leaves the store unchanged.
func (s *Store) UpdateRow(id string, updates table.Fields) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := table.IndexOf(s.snapshot.Rows, id)
	if idx < 0 {
		return false
	}
	merged := s.snapshot.Rows[idx].Fields.Clone()
	merged.Merge(updates.Clone())
	s.snapshot.Rows[idx].Fields = merged
	s.touch()
	return true
}

// DeleteRow removes the row with id, preserving the order of the rest.
// It reports whether a row was removed.
func (s *Store) DeleteRow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := table.IndexOf(s.snapshot.Rows, id)
	if idx < 0 {
		return false
	}
	rows := make([]table.Row, 0, len(s.snapshot.Rows)-1)
	rows = append(rows, s.snapshot.Rows[:idx]...)
	rows = append(rows, s.snapshot.Rows[idx+1:]...)
	s.snapshot.Rows = rows
	s.touch()
	return true
}

// ReplaceColumns installs cols as the column list.
func (s *Store) ReplaceColumns(cols []table.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Columns = table.CloneColumns(cols)
	if s.snapshot.Columns == nil {
		s.snapshot.Columns = []table.Column{}
	}
	s.touch()
}

// Snapshot returns a deep copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Columns = table.CloneColumns(s.snapshot.Columns)
	snap.Rows = table.CloneRows(s.snapshot.Rows)
	return snap
}

// Rows returns a copy of the rows in canonical order.
func (s *Store) Rows() []table.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return table.CloneRows(s.snapshot.Rows)
}

// Columns returns a copy of the column list.
func (s *Store) Columns() []table.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return table.CloneColumns(s.snapshot.Columns)
}

// Row returns a copy of the row with id.
func (s *Store) Row(id string) (table.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := table.IndexOf(s.snapshot.Rows, id)
	if idx < 0 {
		return table.Row{}, false
	}
	return s.snapshot.Rows[idx].Clone(), true
}

// Has reports whether a row with id exists.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return table.IndexOf(s.snapshot.Rows, id) >= 0
}

// Len returns the number of rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Rows)
}

// Version increases by one on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version
}

// touch must be called with the write lock held.
func (s *Store) touch() {
	s.snapshot.Version++
	s.snapshot.UpdatedAt = time.Now()
}
