package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tabula/internal/cli"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/workbench"
)

// loaded is a file read for a headless command.
type loaded struct {
	path    string
	result  csvio.Result
	columns []table.Column
}

// addLoadFlags registers the flags shared by every command that reads a file.
func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().String("require", "", "Comma separated columns every row must have")
	cmd.Flags().Bool("infer", true, "Read numbers and booleans as typed values")
}

// loadTable reads the file named by args[0]. A file that yields no rows
// and only errors is returned as an error.
func loadTable(cmd *cobra.Command, path string) (*loaded, error) {
	if err := cli.ValidateFilePath(path); err != nil {
		return nil, err
	}
	require, _ := cmd.Flags().GetString("require")
	infer, _ := cmd.Flags().GetBool("infer")

	res := workbench.Load(cmd.Context(), path, csvio.Options{
		Required:   cli.SplitList(require),
		InferTypes: infer,
	})
	if res.Failed() {
		return nil, fmt.Errorf("%s: %s", path, strings.Join(res.Errors, " "))
	}
	return &loaded{path: path, result: res, columns: table.ColumnsFromHeaders(res.Headers)}, nil
}

// selectColumns picks columns by header name, case-insensitively, in the
// order given. An empty selection keeps every column.
func selectColumns(cols []table.Column, names []string) ([]table.Column, error) {
	if len(names) == 0 {
		return cols, nil
	}
	out := make([]table.Column, 0, len(names))
	for _, name := range names {
		i := findColumn(cols, name)
		if i < 0 {
			return nil, fmt.Errorf("unknown column: %s", name)
		}
		out = append(out, cols[i])
	}
	return out, nil
}

func findColumn(cols []table.Column, name string) int {
	for i, c := range cols {
		if strings.EqualFold(c.Label, name) {
			return i
		}
	}
	return -1
}

// labelled turns rows into label keyed objects in column order.
func labelled(rows []table.Row, cols []table.Column) []table.Fields {
	out := make([]table.Fields, 0, len(rows))
	for _, r := range rows {
		var obj table.Fields
		for _, c := range cols {
			obj.Set(c.Label, r.Get(c.Key))
		}
		out = append(out, obj)
	}
	return out
}
