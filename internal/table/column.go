package table

import "strings"

// Column describes how one field key is shown.
type Column struct {
	Key     string `json:"key" yaml:"key" toml:"key"`
	Label   string `json:"label" yaml:"label" toml:"label"`
	Visible bool   `json:"visible" yaml:"visible" toml:"visible"`
}

// DeriveKey turns a human label into a field key: trimmed, lower-cased,
// with each whitespace run replaced by a single underscore.
func DeriveKey(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// NewColumn builds a visible column whose key is derived from label.
func NewColumn(label string) Column {
	label = strings.TrimSpace(label)
	return Column{Key: DeriveKey(label), Label: label, Visible: true}
}

// FindColumn returns the index of the column with key, or -1.
func FindColumn(cols []Column, key string) int {
	for i, c := range cols {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// VisibleColumns returns the visible subset in declared order.
func VisibleColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// CloneColumns copies a column list.
func CloneColumns(cols []Column) []Column {
	if cols == nil {
		return nil
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}

// ColumnsFromHeaders builds one visible column per header, keyed by the
// header text itself so imported field keys line up.
func ColumnsFromHeaders(headers []string) []Column {
	out := make([]Column, 0, len(headers))
	for _, h := range headers {
		out = append(out, Column{Key: h, Label: h, Visible: true})
	}
	return out
}
