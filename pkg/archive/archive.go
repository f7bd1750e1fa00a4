// Package archive compacts old finished tasks out of the live file.
// Their hours are folded into monthly stats files so history reporting
// survives the task records leaving the working set.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

// TaskStore is the slice of the task store compaction needs.
type TaskStore interface {
	List() ([]task.Task, error)
	Replace([]task.Task) error
}

type Archiver struct {
	store    TaskStore
	dir      string // archived task records, tasks_YYYY_MM.json
	statsDir string // compacted totals, stats_YYYY_MM.json
}

func New(store TaskStore, dir, statsDir string) (*Archiver, error) {
	for _, d := range []string{dir, statsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, err
		}
	}
	return &Archiver{store: store, dir: dir, statsDir: statsDir}, nil
}

// Run moves completed tasks finished more than cutoffDays ago (and
// deleted tasks created before the cutoff) into the archive. It returns
// how many tasks were archived.
func (a *Archiver) Run(cutoffDays int, now time.Time) (int, error) {
	all, err := a.store.List()
	if err != nil {
		return 0, err
	}
	cutoff := now.AddDate(0, 0, -cutoffDays)

	var old, keep []task.Task
	for _, t := range all {
		archive := false
		switch s := t.State.(type) {
		case task.Completed:
			archive = s.At.Before(cutoff)
		case task.Deleted:
			archive = t.Created.Before(cutoff)
		}
		if archive {
			old = append(old, t)
		} else {
			keep = append(keep, t)
		}
	}
	if len(old) == 0 {
		return 0, nil
	}

	if err := a.updateStats(old, now); err != nil {
		return 0, err
	}
	if err := a.writeRecords(old); err != nil {
		return 0, err
	}
	if err := a.store.Replace(keep); err != nil {
		return 0, err
	}
	return len(old), nil
}

func (a *Archiver) updateStats(tasks []task.Task, now time.Time) error {
	months := map[monthKey]*MonthlyStats{}
	for _, t := range tasks {
		s, ok := t.State.(task.Completed)
		if !ok {
			// deleted tasks carry no credited work
			continue
		}
		day := date.Of(s.At)
		k := monthKey{day.Year, day.Month}
		stats, ok := months[k]
		if !ok {
			loaded := a.Stats(k.year, k.month)
			stats = &loaded
			months[k] = stats
		}
		// meeting hours live in the daily-log store, not on tasks
		stats.Add(day, t.EstimateHours(), t.ElapsedTotal(now).Hours(), 0)
	}
	for _, stats := range months {
		if err := a.saveStats(*stats); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archiver) recordsName(day date.Day) string {
	return fmt.Sprintf("tasks_%04d_%02d.json", day.Year, day.Month)
}

func (a *Archiver) writeRecords(tasks []task.Task) error {
	byMonth := map[monthKey][]task.Task{}
	for _, t := range tasks {
		at := t.Created
		if s, ok := t.State.(task.Completed); ok {
			at = s.At
		}
		day := date.Of(at)
		k := monthKey{day.Year, day.Month}
		byMonth[k] = append(byMonth[k], t)
	}

	for k, group := range byMonth {
		path := filepath.Join(a.dir, a.recordsName(date.Day{Year: k.year, Month: k.month, Date: 1}))

		var existing []task.Task
		if bs, err := os.ReadFile(path); err == nil {
			// a corrupted archive file starts over rather than failing the run
			_ = json.Unmarshal(bs, &existing)
		}
		existing = append(existing, group...)

		bs, err := json.MarshalIndent(existing, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, bs, 0o600); err != nil {
			return err
		}
	}
	return nil
}
