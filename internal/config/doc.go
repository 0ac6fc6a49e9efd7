// Package config loads Tabula's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tabula/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	[import]
//	required_columns = ["name", "email"]  # validating import when set
//	infer_types = true                    # numbers and booleans become typed
//
//	[export]
//	dir = "~/Downloads"
//	filename = "table_data"
//	format = "csv"                        # csv, json or parquet
//
//	[log]
//	file = "~/.local/state/tabula/tabula.log"  # "-" disables logging
//
//	[table]
//	seed_sample = true                    # start with the demo rows
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// A malformed file or an unknown export format is an error; a missing file
// is not.
package config
