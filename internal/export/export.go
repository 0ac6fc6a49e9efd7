// Package export writes table rows to files in CSV, JSON or Parquet.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/table"
)

// Format represents the export format.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatParquet
)

var (
	// ErrUnknownFormat is returned for unrecognised format names.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrNoColumns is returned when no columns are selected.
	ErrNoColumns = csvio.ErrNoColumns
)

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "csv", "":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "parquet", "pq":
		return FormatParquet, nil
	default:
		return FormatCSV, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatForPath picks a format from the extension of path.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "csv"
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + f.String() }

// Write serialises rows to w. Only cols are written, keyed by label.
func Write(w io.Writer, f Format, rows []table.Row, cols []table.Column) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	switch f {
	case FormatCSV:
		return csvio.Write(w, rows, cols)
	case FormatJSON:
		return writeJSON(w, rows, cols)
	case FormatParquet:
		return writeParquet(w, rows, cols)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
}

// SaveFile writes rows to dir/name, adding the format's extension when name
// has none. It returns the written path.
func SaveFile(dir, name string, f Format, rows []table.Row, cols []table.Column) (string, error) {
	if filepath.Ext(name) == "" {
		name += f.Extension()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(file, f, rows, cols); err != nil {
		_ = file.Close()
		return "", err
	}
	// The parquet writer closes its sink.
	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return "", fmt.Errorf("close export file: %w", err)
	}
	log.Printf("export: wrote %d rows to %s", len(rows), path)
	return path, nil
}

// writeJSON encodes rows as an array of objects keyed by column label in
// column order. Absent values are null.
func writeJSON(w io.Writer, rows []table.Row, cols []table.Column) error {
	out := make([]table.Fields, 0, len(rows))
	for _, r := range rows {
		var obj table.Fields
		for _, c := range cols {
			obj.Set(c.Label, r.Get(c.Key))
		}
		out = append(out, obj)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
