// Package config loads the optional config.yaml from the data
// directory. A missing file means defaults; a broken file is an error
// the user should see.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const dirName = ".workday"

type Config struct {
	// DataDir holds tasks.json, daily_logs.db, archives and logs.
	DataDir string `yaml:"data_dir"`
	// CapacityHours is the working-day length used by planning.
	CapacityHours float64 `yaml:"capacity_hours"`
	// ArchiveAfterDays is the compaction cutoff for finished tasks.
	ArchiveAfterDays int `yaml:"archive_after_days"`
	// LogLevel is a zap level name ("debug", "info", ...).
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:          filepath.Join(home, dirName),
		CapacityHours:    8,
		ArchiveAfterDays: 30,
		LogLevel:         "info",
	}
}

// Load reads <dataDir>/config.yaml over the defaults. An empty dir uses
// the default location.
func Load(dir string) (Config, error) {
	cfg := Default()
	if dir != "" {
		cfg.DataDir = dir
	}

	bs, err := os.ReadFile(filepath.Join(cfg.DataDir, "config.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode config.yaml: %w", err)
	}
	if cfg.CapacityHours <= 0 {
		return cfg, fmt.Errorf("config: capacity_hours must be positive, got %v", cfg.CapacityHours)
	}
	if cfg.ArchiveAfterDays <= 0 {
		return cfg, fmt.Errorf("config: archive_after_days must be positive, got %v", cfg.ArchiveAfterDays)
	}
	return cfg, nil
}

// Paths derived from the data dir.

func (c Config) TasksFile() string     { return filepath.Join(c.DataDir, "tasks.json") }
func (c Config) DailyLogsFile() string { return filepath.Join(c.DataDir, "daily_logs.db") }
func (c Config) ArchiveDir() string    { return filepath.Join(c.DataDir, "archive") }
func (c Config) StatsDir() string      { return filepath.Join(c.DataDir, "stats") }
func (c Config) LogFile() string       { return filepath.Join(c.DataDir, "workday.log") }
