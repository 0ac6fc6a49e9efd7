package table

import "github.com/google/uuid"

// Row is one record: a stable identifier plus an open set of fields.
// Fields may hold keys that no column describes.
type Row struct {
	ID     string `json:"id" yaml:"id"`
	Fields Fields `json:"fields" yaml:"fields"`
}

// NewRow builds a row, issuing a fresh identifier when id is empty.
func NewRow(id string, fields Fields) Row {
	if id == "" {
		id = NewID()
	}
	return Row{ID: id, Fields: fields}
}

// NewID returns a new random row identifier.
func NewID() string {
	return uuid.NewString()
}

// Get returns the value stored under key, or Null when the row lacks it.
func (r Row) Get(key string) Value {
	return r.Fields.Value(key)
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	return Row{ID: r.ID, Fields: r.Fields.Clone()}
}

// CloneRows deep-copies a row sequence.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// IndexOf returns the position of the row with id, or -1.
func IndexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
