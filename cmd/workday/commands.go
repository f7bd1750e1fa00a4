package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/workday/internal/config"
	"github.com/td0m/workday/pkg/archive"
	"github.com/td0m/workday/pkg/dailylog"
	"github.com/td0m/workday/pkg/dateinput"
	"github.com/td0m/workday/pkg/history"
	"github.com/td0m/workday/pkg/input"
	"github.com/td0m/workday/pkg/persist"
	"github.com/td0m/workday/pkg/plan"
	"github.com/td0m/workday/pkg/score"
	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

type env struct {
	cfg   config.Config
	log   *zap.Logger
	store *persist.JSON
	days  *dailylog.Store
	now   time.Time
}

var metaKeys = []string{"priority", "due", "estimate", "project", "description"}

// applyMetadata mutates t according to expanded key:value pairs from
// the command line. An empty value clears the field.
func applyMetadata(t *task.Task, meta map[string]string, now time.Time) error {
	for key, value := range meta {
		full, err := input.ExpandKey(key, metaKeys)
		if err != nil {
			return err
		}
		switch full {
		case "priority":
			t.Priority = task.ParsePriority(value)
		case "due":
			if value == "" {
				t.Due = nil
				continue
			}
			due, err := dateinput.Parse(value, now)
			if err != nil {
				return fmt.Errorf("due: %w", err)
			}
			t.Due = &due
		case "estimate":
			if value != "" {
				if _, err := task.ParseEstimate(value); err != nil {
					return fmt.Errorf("estimate: %w", err)
				}
			}
			t.Estimate = value
		case "project":
			t.Project = value
		case "description":
			t.Description = value
		}
	}
	return nil
}

// active returns pending tasks in urgency order. This is both the
// `list` output and the index space task references resolve in.
func (e *env) active() ([]task.Task, error) {
	all, err := e.store.List()
	if err != nil {
		return nil, err
	}
	var pending []task.Task
	for _, t := range all {
		if t.Status() == task.StatusPending {
			pending = append(pending, t)
		}
	}
	score.Sort(pending, score.Urgency, e.now)
	return pending, nil
}

// resolve turns a command-line reference into a task: a number is a
// 1-based index into the `list` ordering, anything else a unique id
// prefix over all tasks.
func (e *env) resolve(ref string) (task.Task, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		pending, err := e.active()
		if err != nil {
			return task.Task{}, err
		}
		if n < 1 || n > len(pending) {
			return task.Task{}, fmt.Errorf("no task %d (have %d)", n, len(pending))
		}
		return pending[n-1], nil
	}

	all, err := e.store.List()
	if err != nil {
		return task.Task{}, err
	}
	var matches []task.Task
	for _, t := range all {
		if strings.HasPrefix(string(t.ID), ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return task.Task{}, persist.ErrNotFound
	default:
		return task.Task{}, fmt.Errorf("ambiguous id prefix %q", ref)
	}
}

func (e *env) add(args []string) error {
	parsed := input.Parse(args)
	if parsed.Name == "" {
		return errors.New("usage: workday add <name> [priority:high due:fri estimate:2h project:x]")
	}
	t := task.New(parsed.Name, e.now)
	if err := applyMetadata(&t, parsed.Metadata, e.now); err != nil {
		return err
	}
	if err := e.store.Create(t); err != nil {
		return err
	}
	e.log.Info("task added", zap.String("id", string(t.ID)), zap.String("name", t.Name))
	fmt.Printf("added %q\n", t.Name)
	return nil
}

func (e *env) list(args []string) error {
	pending, err := e.active()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("no pending tasks")
		return nil
	}
	for i, t := range pending {
		fmt.Println(e.line(i+1, t))
	}
	if len(args) > 0 && args[0] == "all" {
		all, err := e.store.List()
		if err != nil {
			return err
		}
		for _, t := range all {
			if t.Status() == task.StatusPending {
				continue
			}
			fmt.Printf("  -. [%s] %s\n", t.Status(), t.Name)
		}
	}
	return nil
}

func (e *env) line(n int, t task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d. [%-6s] %s", n, t.Priority, t.Name)
	if t.Project != "" {
		fmt.Fprintf(&b, "  @%s", t.Project)
	}
	if t.Estimate != "" {
		fmt.Fprintf(&b, "  est:%s", t.Estimate)
	}
	if t.Due != nil {
		fmt.Fprintf(&b, "  due:%s", t.Due.Format("2006-01-02"))
	}
	if d := t.ElapsedTotal(e.now); d > 0 {
		fmt.Fprintf(&b, "  (%s)", d.Round(time.Second))
	}
	if t.IsTracking() {
		b.WriteString("  *tracking*")
	}
	return b.String()
}

func (e *env) done(args []string) error {
	return e.mutate(args, "done", "completed", func(t *task.Task) { t.Complete(e.now) })
}

func (e *env) start(args []string) error {
	return e.mutate(args, "start", "started", func(t *task.Task) { t.StartTracking(e.now) })
}

// stop closes the open log on the referenced task, or on whichever
// task is tracking when no reference is given.
func (e *env) stop(args []string) error {
	if len(args) > 0 {
		return e.mutate(args, "stop", "stopped", func(t *task.Task) { t.StopTracking(e.now) })
	}
	all, err := e.store.List()
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.IsTracking() {
			t.StopTracking(e.now)
			if err := e.store.Update(t); err != nil {
				return err
			}
			fmt.Printf("stopped %q\n", t.Name)
			return nil
		}
	}
	return errors.New("nothing is tracking")
}

func (e *env) reopen(args []string) error {
	return e.mutate(args, "reopen", "reopened", func(t *task.Task) { t.Reopen() })
}

func (e *env) remove(args []string) error {
	return e.mutate(args, "rm", "deleted", func(t *task.Task) { t.Delete() })
}

func (e *env) mutate(args []string, name, verb string, f func(*task.Task)) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: workday %s <task>", name)
	}
	t, err := e.resolve(args[0])
	if err != nil {
		return err
	}
	f(&t)
	if err := e.store.Update(t); err != nil {
		return err
	}
	e.log.Info("task "+verb, zap.String("id", string(t.ID)))
	fmt.Printf("%s %q\n", verb, t.Name)
	return nil
}

func (e *env) history(args []string) error {
	weeks := 4
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: workday history [weeks]")
		}
		weeks = n
	}

	all, err := e.store.List()
	if err != nil {
		return err
	}
	report := history.Aggregate(all, e.days.Hours, e.now)
	if len(report) > weeks {
		report = report[:weeks]
	}
	for _, w := range report {
		fmt.Printf("week %d of %d  est %.1fh  act %.1fh  mtg %.1fh\n",
			w.Week, w.Year, w.Stats.EstHours, w.Stats.ActHours, w.Stats.MeetingHours)
		for _, d := range w.Days {
			fmt.Printf("  %s %s  est %.1fh  act %.1fh  mtg %.1fh\n",
				d.Date.Weekday(), d.Date, d.Stats.EstHours, d.Stats.ActHours, d.Stats.MeetingHours)
			for _, t := range d.Tasks {
				marker := " "
				if t.Status() == task.StatusCompleted {
					marker = "x"
				}
				fmt.Printf("    [%s] %s\n", marker, t.Name)
			}
		}
	}
	return nil
}

func (e *env) plan(args []string) error {
	capacity := e.cfg.CapacityHours
	if len(args) > 0 {
		c, err := strconv.ParseFloat(args[0], 64)
		if err != nil || c <= 0 {
			return fmt.Errorf("usage: workday plan [capacity-hours]")
		}
		capacity = c
	}

	all, err := e.store.List()
	if err != nil {
		return err
	}
	meetings := e.days.Hours(date.Of(e.now))
	stats, entries := plan.Build(all, meetings, capacity, e.now)

	fmt.Printf("capacity %.1fh  meetings %.1fh  done %.1fh  remaining %.1fh\n",
		stats.TotalCapacity, stats.MeetingHours, stats.WorkDoneToday, stats.RemainingActiveCapacity)
	score.Sort(all, score.Urgency, e.now)
	byID := map[task.ID]plan.Entry{}
	for _, en := range entries {
		byID[en.Task.ID] = en
	}
	n := 0
	for _, t := range all {
		if t.Status() != task.StatusPending {
			continue
		}
		n++
		en := byID[t.ID]
		fit := " "
		switch en.Fit {
		case plan.Fits:
			fit = "+"
		case plan.DoesNotFit:
			fit = "-"
		}
		fmt.Printf("%3d. %s %s", n, fit, t.Name)
		if en.RemainingHours > 0 {
			fmt.Printf("  %.1fh left", en.RemainingHours)
		}
		fmt.Println()
	}
	return nil
}

func (e *env) archive(args []string) error {
	a, err := archive.New(e.store, e.cfg.ArchiveDir(), e.cfg.StatsDir())
	if err != nil {
		return err
	}
	n, err := a.Run(e.cfg.ArchiveAfterDays, e.now)
	if err != nil {
		return err
	}
	e.log.Info("archive run", zap.Int("archived", n))
	fmt.Printf("archived %d tasks\n", n)
	return nil
}
