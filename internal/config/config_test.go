package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		cfg, err := Load(dir)
		is.NoErr(err)
		is.Equal(cfg.DataDir, dir)
		is.Equal(cfg.CapacityHours, 8.0)
		is.Equal(cfg.ArchiveAfterDays, 30)
		is.Equal(cfg.LogLevel, "info")
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("capacity_hours: 6.5\nlog_level: debug\n"), 0o644)
		is.NoErr(err)

		cfg, err := Load(dir)
		is.NoErr(err)
		is.Equal(cfg.CapacityHours, 6.5)
		is.Equal(cfg.LogLevel, "debug")
		is.Equal(cfg.ArchiveAfterDays, 30) // untouched
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("capacity_hours: 0\n"), 0o644)
		is.NoErr(err)

		_, err = Load(dir)
		is.True(err != nil)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		is := is.New(t)
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("capacity_hours: [oops\n"), 0o644)
		is.NoErr(err)

		_, err = Load(dir)
		is.True(err != nil)
	})

	t.Run("derived paths", func(t *testing.T) {
		is := is.New(t)
		cfg, err := Load("/tmp/wd")
		is.NoErr(err)
		is.Equal(cfg.TasksFile(), filepath.Join("/tmp/wd", "tasks.json"))
		is.Equal(cfg.ArchiveDir(), filepath.Join("/tmp/wd", "archive"))
	})
}
