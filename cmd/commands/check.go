package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/tabula/internal/cli"
)

// CheckResult represents the output structure for the check command
type CheckResult struct {
	File     string   `json:"file" yaml:"file"`
	Columns  []string `json:"columns" yaml:"columns"`
	Rows     int      `json:"rows" yaml:"rows"`
	Skipped  int      `json:"skipped" yaml:"skipped"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	OK       bool     `json:"ok" yaml:"ok"`
}

// errCheckFailed is returned after the report is printed so the exit code
// reflects the outcome.
var errCheckFailed = errors.New("validation failed")

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a file without importing it",
		Long: `Parse a CSV or Parquet file and report what an import would keep.

Rows missing any --require column are counted as skipped. The command
exits non-zero when any row is rejected or the file cannot be read.

Examples:
  # Check that a file parses
  tabula check people.csv

  # Require name and email on every row
  tabula check people.csv --require name,email

  # Machine readable report
  tabula check people.csv --require name -o json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			// A failed parse is still reported rather than returned early.
			data, err := loadTable(cmd, args[0])
			result := CheckResult{File: args[0]}
			if err != nil {
				result.Errors = []string{err.Error()}
			} else {
				result.Rows = len(data.result.Rows)
				result.Skipped = len(data.result.Errors)
				result.Errors = data.result.Errors
				result.Warnings = data.result.Warnings
				for _, c := range data.columns {
					result.Columns = append(result.Columns, c.Label)
				}
			}
			result.OK = len(result.Errors) == 0

			w := cmd.OutOrStdout()
			if output != string(cli.FormatText) {
				if err := cli.OutputResults(w, output, result); err != nil {
					return err
				}
			} else {
				if result.OK {
					fmt.Fprintf(w, "✓ %s: %d rows, %d columns\n", result.File, result.Rows, len(result.Columns))
				} else {
					fmt.Fprintf(w, "✗ %s: %d rows, %d skipped\n", result.File, result.Rows, result.Skipped)
					for _, e := range result.Errors {
						fmt.Fprintf(w, "  %s\n", e)
					}
				}
				for _, warn := range result.Warnings {
					fmt.Fprintf(w, "  warning: %s\n", warn)
				}
			}

			if !result.OK {
				return errCheckFailed
			}
			return nil
		},
	}

	addLoadFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")

	return cmd
}
