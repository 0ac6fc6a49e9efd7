package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/tabula/internal/config"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/prefs"
	"github.com/five82/tabula/internal/state"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/ui"
	"github.com/five82/tabula/internal/workbench"
)

// Options configure the Tabula application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tabula/prefs.toml
	ImportPath string // CSV or Parquet file loaded before the UI starts
	Watch      bool   // reload ImportPath when it changes on disk
	WatchEvery time.Duration
}

// Run boots the Tabula TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load tabula config: %w", err)
	}

	closeLog, err := SetupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	bench, notice := Prepare(ctx, cfg, opts.ImportPath)

	var reloads <-chan csvio.Result
	importPath := config.ExpandPath(opts.ImportPath)
	if opts.Watch && importPath != "" {
		reloads = StartWatcher(ctx, importPath, opts.WatchEvery, cfg.ImportOptions())
	}

	uiOpts := ui.Options{
		Context:    ctx,
		Workbench:  bench,
		Config:     cfg,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		SourcePath: importPath,
		Reloads:    reloads,
		Notice:     notice,
	}
	return ui.Run(uiOpts)
}

// Prepare builds the initial workbench: the default columns, the sample
// rows when configured, then the import file if one was given. The
// returned notice summarises the import.
func Prepare(ctx context.Context, cfg config.Config, importPath string) (*workbench.Workbench, string) {
	var rows []table.Row
	if cfg.SeedSample {
		rows = table.SampleRows()
	}
	bench := workbench.New(state.NewStore(table.DefaultColumns(), rows))

	path := config.ExpandPath(importPath)
	if path == "" {
		return bench, ""
	}
	res := workbench.Load(ctx, path, cfg.ImportOptions())
	bench.Import(res)
	return bench, res.Summary()
}

// SetupLogging points the standard logger at path, creating parent
// directories. An empty path discards log output so nothing writes over
// the alt screen. The returned func closes the file.
func SetupLogging(path string) (func(), error) {
	log.SetFlags(log.LstdFlags)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}
