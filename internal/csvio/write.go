package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/five82/tabula/internal/table"
)

// ErrNoColumns is returned when there is nothing to export.
var ErrNoColumns = errors.New("no visible columns to export")

// Record returns the cells of row for cols, using "" for absent values.
func Record(row table.Row, cols []table.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = row.Get(c.Key).String()
	}
	return out
}

// Header returns the labels of cols.
func Header(cols []table.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

// Write serialises rows as CSV with the labels of cols as the header.
// Callers pass the columns they want exported, normally the visible ones.
func Write(w io.Writer, rows []table.Row, cols []table.Column) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(cols)); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(Record(r, cols)); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export returns rows as CSV text.
func Export(rows []table.Row, cols []table.Column) (string, error) {
	var b strings.Builder
	if err := Write(&b, rows, cols); err != nil {
		return "", err
	}
	return b.String(), nil
}
