package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tabula/cmd/commands"
	"github.com/five82/tabula/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tabula: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "tabula [file]",
		Short: "Browse and edit tabular data in the terminal",
		Long: `Tabula is a terminal table editor for CSV and Parquet files.

Without a subcommand it opens the interactive table, seeded with sample
data or with the given file.

Examples:
  # Open the sample table
  tabula

  # Open a file and reload it whenever it changes
  tabula people.csv --watch`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ImportPath = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	root.Flags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (optional)")
	root.Flags().StringVar(&opts.ImportPath, "import", "", "CSV or Parquet file to open")
	root.Flags().BoolVar(&opts.Watch, "watch", false, "reload the file when it changes on disk")
	root.Flags().DurationVar(&opts.WatchEvery, "watch-every", 2*time.Second, "how often to check the file for changes")

	root.AddCommand(
		commands.NewViewCommand(),
		commands.NewCheckCommand(),
		commands.NewExportCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tabula %s\n", version)
		},
	}
}
