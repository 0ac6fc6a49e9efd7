package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/tabula/internal/csvio"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Tabula reads at startup.
type Config struct {
	// RequiredColumns turns on validating import when non-empty.
	RequiredColumns []string
	InferTypes      bool

	ExportDir    string
	ExportName   string
	ExportFormat string

	LogFile    string
	SeedSample bool
}

const (
	defaultConfigPath   = "~/.config/tabula/config.toml"
	defaultExportDir    = "~/Downloads"
	defaultExportName   = "table_data"
	defaultExportFormat = "csv"
	defaultLogFile      = "~/.local/state/tabula/tabula.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		InferTypes:   true,
		ExportDir:    mustExpand(defaultExportDir),
		ExportName:   defaultExportName,
		ExportFormat: defaultExportFormat,
		LogFile:      mustExpand(defaultLogFile),
		SeedSample:   true,
	}
}

// Load locates and parses the Tabula config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Import struct {
			RequiredColumns []string `toml:"required_columns"`
			InferTypes      *bool    `toml:"infer_types"`
		} `toml:"import"`
		Export struct {
			Dir      string `toml:"dir"`
			Filename string `toml:"filename"`
			Format   string `toml:"format"`
		} `toml:"export"`
		Log struct {
			File string `toml:"file"`
		} `toml:"log"`
		Table struct {
			SeedSample *bool `toml:"seed_sample"`
		} `toml:"table"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	for _, c := range raw.Import.RequiredColumns {
		if c = strings.TrimSpace(c); c != "" {
			cfg.RequiredColumns = append(cfg.RequiredColumns, c)
		}
	}
	if raw.Import.InferTypes != nil {
		cfg.InferTypes = *raw.Import.InferTypes
	}

	if dir := strings.TrimSpace(raw.Export.Dir); dir != "" {
		cfg.ExportDir = mustExpand(dir)
	}
	if name := strings.TrimSpace(raw.Export.Filename); name != "" {
		cfg.ExportName = name
	}
	if format := strings.ToLower(strings.TrimSpace(raw.Export.Format)); format != "" {
		switch format {
		case "csv", "json", "parquet":
			cfg.ExportFormat = format
		default:
			return Config{}, fmt.Errorf("parse config: unknown export format %q", raw.Export.Format)
		}
	}

	switch logFile := strings.TrimSpace(raw.Log.File); logFile {
	case "":
	case "-":
		cfg.LogFile = ""
	default:
		cfg.LogFile = mustExpand(logFile)
	}

	if raw.Table.SeedSample != nil {
		cfg.SeedSample = *raw.Table.SeedSample
	}

	return cfg, nil
}

// ImportOptions returns the CSV parse options the config selects.
func (c Config) ImportOptions() csvio.Options {
	return csvio.Options{
		Required:   append([]string(nil), c.RequiredColumns...),
		InferTypes: c.InferTypes,
	}
}

// ExpandPath resolves a leading ~ and makes path absolute. Blank input is
// returned unchanged.
func ExpandPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}
	return mustExpand(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
