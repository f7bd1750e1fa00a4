package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/td0m/workday/pkg/task/date"
)

type DayStats struct {
	Est float64 `json:"est"`
	Act float64 `json:"act"`
	Mtg float64 `json:"mtg"`
}

// MonthlyStats accumulates per-day totals for one month, keyed by
// "YYYY-MM-DD".
type MonthlyStats struct {
	Year  int                 `json:"year"`
	Month time.Month          `json:"month"`
	Days  map[string]DayStats `json:"days"`
}

type monthKey struct {
	year  int
	month time.Month
}

func (m *MonthlyStats) Add(day date.Day, est, act, mtg float64) {
	if m.Days == nil {
		m.Days = map[string]DayStats{}
	}
	entry := m.Days[day.String()]
	entry.Est += est
	entry.Act += act
	entry.Mtg += mtg
	m.Days[day.String()] = entry
}

// DayEntry is one day of a stats file, with its key parsed.
type DayEntry struct {
	Day   date.Day
	Stats DayStats
}

// DaysSorted returns the month's days oldest first. Corrupted date keys
// are dropped: one bad entry must not take down reporting.
func (m MonthlyStats) DaysSorted() []DayEntry {
	out := make([]DayEntry, 0, len(m.Days))
	for key, stats := range m.Days {
		day, err := date.Parse(key)
		if err != nil {
			continue
		}
		out = append(out, DayEntry{Day: day, Stats: stats})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

func (a *Archiver) statsPath(year int, month time.Month) string {
	return filepath.Join(a.statsDir, fmt.Sprintf("stats_%04d_%02d.json", year, month))
}

// Stats loads one month's totals, returning an empty record when the
// file is missing or unreadable.
func (a *Archiver) Stats(year int, month time.Month) MonthlyStats {
	stats := MonthlyStats{Year: year, Month: month}
	bs, err := os.ReadFile(a.statsPath(year, month))
	if err != nil {
		return stats
	}
	if err := json.Unmarshal(bs, &stats); err != nil {
		return MonthlyStats{Year: year, Month: month}
	}
	return stats
}

func (a *Archiver) saveStats(stats MonthlyStats) error {
	bs, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.statsPath(stats.Year, stats.Month), bs, 0o600)
}

// AllStats loads every month on disk, oldest first, skipping files that
// fail to parse.
func (a *Archiver) AllStats() []MonthlyStats {
	entries, err := os.ReadDir(a.statsDir)
	if err != nil {
		return nil
	}
	var out []MonthlyStats
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		bs, err := os.ReadFile(filepath.Join(a.statsDir, e.Name()))
		if err != nil {
			continue
		}
		var stats MonthlyStats
		if err := json.Unmarshal(bs, &stats); err != nil {
			continue
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
