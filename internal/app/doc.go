// Package app provides the orchestration layer for the Tabula application.
//
// # Overview
//
// This package wires together configuration, logging, preferences, the
// record store and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Startup
//
//  1. Load ~/.config/tabula/config.toml (missing file means defaults)
//  2. Point the standard logger at the configured log file
//  3. Load UI preferences (theme, last import path, last export format)
//  4. Create the state.Store with the default columns and, unless
//     disabled, the sample rows
//  5. Import the --import file, if any, through the workbench
//  6. Optionally start the file watcher
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read Tabula config
//	       ├─────> SetupLogging()       log file or io.Discard
//	       ├─────> Prepare()            store + workbench + initial import
//	       ├─────> StartWatcher()       (--watch) reload on change
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Watcher Loop:
//	┌─────────────────────────────────────────┐
//	│ StartWatcher() goroutine                │
//	│  ├─> os.Stat(path)                      │
//	│  ├─> workbench.Load() on new mtime      │
//	│  └─> chan csvio.Result ──> UI Update    │
//	└─────────────────────────────────────────┘
//
// The watcher never touches the store. The UI applies each reload on the
// event loop, and holds it back while rows are being edited.
//
// # Error Handling
//
// Fatal (returned from Run): an invalid config file or an unusable log
// path. Everything else surfaces as a notice in the UI: a missing or
// malformed import file leaves the seeded rows in place, and stat failures
// in the watcher back off exponentially up to 30 seconds.
package app
