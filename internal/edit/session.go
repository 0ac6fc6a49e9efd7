// Package edit tracks which rows are in edit mode and their pending values.
package edit

import (
	"github.com/five82/tabula/internal/table"
)

// Updater applies a merge to a stored row. *state.Store satisfies it.
type Updater interface {
	UpdateRow(id string, updates table.Fields) bool
}

// Session holds a draft per row in edit mode. Drafts are independent of the
// store until committed. The zero value is not usable; call NewSession.
type Session struct {
	order  []string
	drafts map[string]table.Fields
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{drafts: make(map[string]table.Fields)}
}

// Open puts row into edit mode with a draft seeded from its current values.
// Opening a row that is already open keeps the existing draft and reports
// false.
func (s *Session) Open(row table.Row) bool {
	if _, ok := s.drafts[row.ID]; ok {
		return false
	}
	s.drafts[row.ID] = row.Fields.Clone()
	s.order = append(s.order, row.ID)
	return true
}

// IsOpen reports whether id is in edit mode.
func (s *Session) IsOpen(id string) bool {
	_, ok := s.drafts[id]
	return ok
}

// Active reports whether any row is in edit mode.
func (s *Session) Active() bool { return len(s.drafts) > 0 }

// Len returns the number of rows in edit mode.
func (s *Session) Len() int { return len(s.drafts) }

// OpenIDs returns the rows in edit mode in the order they were opened.
func (s *Session) OpenIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Draft returns a copy of the pending values for id.
func (s *Session) Draft(id string) (table.Fields, bool) {
	d, ok := s.drafts[id]
	if !ok {
		return table.Fields{}, false
	}
	return d.Clone(), true
}

// Set changes one pending value. Rows not in edit mode are ignored.
func (s *Session) Set(id, key string, v table.Value) bool {
	d, ok := s.drafts[id]
	if !ok {
		return false
	}
	d.Set(key, v)
	s.drafts[id] = d
	return true
}

// CommitResult reports what a commit did.
type CommitResult struct {
	// Applied lists rows whose drafts were merged into the store.
	Applied []string
	// Missing lists rows that no longer existed; their drafts were dropped.
	Missing []string
}

// Commit merges every draft into store, then leaves edit mode for all rows.
func (s *Session) Commit(store Updater) CommitResult {
	var res CommitResult
	for _, id := range s.order {
		if store.UpdateRow(id, s.drafts[id]) {
			res.Applied = append(res.Applied, id)
		} else {
			res.Missing = append(res.Missing, id)
		}
	}
	s.reset()
	return res
}

// Discard drops every draft and returns how many there were.
func (s *Session) Discard() int {
	n := len(s.drafts)
	s.reset()
	return n
}

// Close drops the draft for one row, leaving the others in edit mode.
func (s *Session) Close(id string) bool {
	if _, ok := s.drafts[id]; !ok {
		return false
	}
	delete(s.drafts, id)
	for i, open := range s.order {
		if open == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Retain drops drafts whose row no longer exists and returns their ids.
func (s *Session) Retain(exists func(id string) bool) []string {
	var dropped []string
	for _, id := range s.OpenIDs() {
		if !exists(id) {
			s.Close(id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

func (s *Session) reset() {
	s.order = nil
	s.drafts = make(map[string]table.Fields)
}
