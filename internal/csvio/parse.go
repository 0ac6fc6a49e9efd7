package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/five82/tabula/internal/table"
)

// Messages shown for failures that are not tied to one row.
const (
	MsgInvalidFormat = "Invalid CSV format."
	MsgParseError    = "Error parsing CSV data."
	MsgReadError     = "Error reading CSV file."
)

// Options controls parsing.
type Options struct {
	// Required lists header names every row must provide. Rows missing any
	// of them are dropped and reported. Empty disables validation.
	Required []string
	// InferTypes turns numeric and boolean text into typed values.
	InferTypes bool
}

// Result is the outcome of a parse. Rows may be non-empty alongside
// Errors when only some rows were rejected. Warnings describe rows that
// were imported with cells dropped.
type Result struct {
	Rows     []table.Row
	Headers  []string
	Errors   []string
	Warnings []string
}

// OK reports whether parsing produced no errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Failed reports whether nothing usable came out of the parse.
func (r Result) Failed() bool { return len(r.Errors) > 0 && len(r.Rows) == 0 }

// Summary returns a one-line description for notices.
func (r Result) Summary() string {
	switch {
	case r.Failed():
		return r.Errors[0]
	case len(r.Errors) > 0:
		return fmt.Sprintf("Imported %d rows, %d skipped: %s", len(r.Rows), len(r.Errors), r.Errors[0])
	case len(r.Warnings) > 0:
		return fmt.Sprintf("Imported %d rows, %d with warnings: %s", len(r.Rows), len(r.Warnings), r.Warnings[0])
	default:
		return fmt.Sprintf("Imported %d rows", len(r.Rows))
	}
}

// Parse reads CSV text whose first record is the header. Blank lines are
// skipped and every data row gets a fresh identifier. A malformed file
// yields no rows and at least one error.
func Parse(r io.Reader, opts Options) Result {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Printf("csvio: parse failed: %v", err)
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return Result{Errors: []string{MsgParseError, perr.Error()}}
		}
		return Result{Errors: []string{MsgParseError}}
	}
	if len(records) == 0 {
		return Result{Errors: []string{MsgInvalidFormat}}
	}

	headers := normalizeHeaders(records[0])
	res := Result{Headers: headers, Rows: make([]table.Row, 0, len(records)-1)}

	for i, rec := range records[1:] {
		n := i + 1
		if len(rec) > len(headers) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Row %d has %d fields, expected %d", n, len(rec), len(headers)))
			rec = rec[:len(headers)]
		}

		var fields table.Fields
		for j, cell := range rec {
			if opts.InferTypes {
				fields.Set(headers[j], table.Infer(cell))
			} else {
				fields.Set(headers[j], table.Str(cell))
			}
		}

		if missing := missingRequired(fields, opts.Required); len(missing) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d missing columns: %s", n, strings.Join(missing, ", ")))
			continue
		}
		res.Rows = append(res.Rows, table.NewRow("", fields))
	}
	return res
}

// ParseString parses CSV held in memory.
func ParseString(text string, opts Options) Result {
	return Parse(strings.NewReader(text), opts)
}

// ParseFile opens and parses path. File errors are reported the same way
// as malformed content.
func ParseFile(path string, opts Options) Result {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("csvio: open %s: %v", path, err)
		return Result{Errors: []string{MsgReadError, err.Error()}}
	}
	defer f.Close()
	return Parse(f, opts)
}

// missingRequired lists required headers the row has no field for. A
// present but blank value counts as provided.
func missingRequired(fields table.Fields, required []string) []string {
	var missing []string
	for _, key := range required {
		if !fields.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// normalizeHeaders strips a byte order mark and renames repeated names
// with a numeric suffix so every key is distinct.
func normalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := h
		for seen[name] > 0 {
			name = fmt.Sprintf("%s_%d", h, seen[h])
			seen[h]++
		}
		seen[name]++
		out[i] = name
	}
	return out
}

// FromRows wraps rows loaded from another source in a Result, applying the
// same required-column check as Parse.
func FromRows(headers []string, rows []table.Row, opts Options) Result {
	res := Result{Headers: headers, Rows: make([]table.Row, 0, len(rows))}
	for i, r := range rows {
		if missing := missingRequired(r.Fields, opts.Required); len(missing) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d missing columns: %s", i+1, strings.Join(missing, ", ")))
			continue
		}
		res.Rows = append(res.Rows, r)
	}
	return res
}
