package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/five82/tabula/internal/cli"
	"github.com/five82/tabula/internal/export"
	"github.com/five82/tabula/internal/view"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a file to CSV, JSON or Parquet",
		Long: `Read a CSV or Parquet file and write its rows in another format.

Without --out the result is written to standard output. With --out the
format defaults to the output file's extension.

Examples:
  # CSV to JSON on stdout
  tabula export people.csv --format json

  # CSV to Parquet
  tabula export people.csv --out people.parquet

  # Only some columns, rows containing "berlin"
  tabula export people.csv --columns name,city --search berlin --out berlin.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			columns, _ := cmd.Flags().GetString("columns")
			search, _ := cmd.Flags().GetString("search")

			if format == "" && out != "" {
				format = filepath.Ext(out)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			data, err := loadTable(cmd, args[0])
			if err != nil {
				return err
			}
			cols, err := selectColumns(data.columns, cli.SplitList(columns))
			if err != nil {
				return err
			}
			rows := data.result.Rows
			if search != "" {
				rows = view.Filter(rows, search)
			}

			if out == "" {
				if f == export.FormatParquet {
					return fmt.Errorf("parquet output needs --out")
				}
				return export.Write(cmd.OutOrStdout(), f, rows, cols)
			}
			path, err := export.SaveFile(filepath.Dir(out), filepath.Base(out), f, rows, cols)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d rows to %s\n", len(rows), path)
			return nil
		},
	}

	addLoadFlags(cmd)
	cmd.Flags().String("format", "", "Output format: csv, json, parquet")
	cmd.Flags().String("out", "", "Write to this file instead of stdout")
	cmd.Flags().String("columns", "", "Comma separated columns to export")
	cmd.Flags().String("search", "", "Only rows containing this text")

	return cmd
}
