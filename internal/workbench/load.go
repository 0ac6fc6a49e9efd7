package workbench

import (
	"context"
	"log"
	"os"

	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/export"
)

// Load reads a CSV or Parquet file into a parse result without touching
// any store. The format is chosen by extension; anything that is not
// Parquet is read as CSV.
func Load(ctx context.Context, path string, opts csvio.Options) csvio.Result {
	if f, err := export.FormatForPath(path); err != nil || f != export.FormatParquet {
		return csvio.ParseFile(path, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("workbench: open %s: %v", path, err)
		return csvio.Result{Errors: []string{csvio.MsgReadError, err.Error()}}
	}
	defer file.Close()

	rows, headers, err := export.ReadParquet(ctx, file)
	if err != nil {
		log.Printf("workbench: read parquet %s: %v", path, err)
		return csvio.Result{Errors: []string{csvio.MsgReadError, err.Error()}}
	}
	return csvio.FromRows(headers, rows, opts)
}
