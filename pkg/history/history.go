// Package history rebuilds the calendar view of past work. Nothing here
// is persisted: every call recomputes from the task snapshot and the
// meeting-hours accessor.
package history

import (
	"sort"
	"time"

	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

// MeetingHours looks up externally recorded meeting time for a day.
// Days with no record must read as 0.
type MeetingHours func(date.Day) float64

type Stats struct {
	EstHours     float64
	ActHours     float64
	MeetingHours float64
}

func (s *Stats) add(other Stats) {
	s.EstHours += other.EstHours
	s.ActHours += other.ActHours
	s.MeetingHours += other.MeetingHours
}

// Day is one day's slice of the timesheet.
type Day struct {
	Date  date.Day
	Tasks []task.Task
	Stats Stats
}

// Week groups days by ISO week, newest day first.
type Week struct {
	Year  int
	Week  int
	Days  []Day
	Stats Stats
}

type weekKey struct {
	year, week int
}

// bucket accumulates one day's data during the first pass.
type bucket struct {
	tasks []task.Task
	seen  map[task.ID]bool
	est   float64
	act   float64
}

// Aggregate builds the weekly history, newest week first, each week's
// days newest first. Eligible tasks are completed ones and pending ones
// with at least one log. A completed task is listed on its completion
// day; a pending task is listed on every day its logs touch, so one task
// may legitimately appear on several days. Tracked hours land on each
// log's own start day; estimates count once, on the completion day.
func Aggregate(tasks []task.Task, meetings MeetingHours, now time.Time) []Week {
	if meetings == nil {
		meetings = func(date.Day) float64 { return 0 }
	}

	buckets := map[date.Day]*bucket{}
	at := func(d date.Day) *bucket {
		b, ok := buckets[d]
		if !ok {
			b = &bucket{seen: map[task.ID]bool{}}
			buckets[d] = b
		}
		return b
	}
	list := func(d date.Day, t task.Task) {
		b := at(d)
		if b.seen[t.ID] {
			return
		}
		b.seen[t.ID] = true
		b.tasks = append(b.tasks, t)
	}

	// Pass 1: place tasks into day buckets and distribute tracked hours.
	for _, t := range tasks {
		switch s := t.State.(type) {
		case task.Completed:
			day := date.Of(s.At)
			list(day, t)
			at(day).est += t.EstimateHours()
			if s.Logs.Len() == 0 {
				at(day).act += s.LegacyActual.Hours()
			} else {
				distribute(s.Logs, now, at)
			}
		case task.Pending:
			if s.Logs.Len() == 0 {
				continue
			}
			distribute(s.Logs, now, at)
			for _, day := range s.Logs.Days() {
				list(day, t)
			}
		}
	}

	// Pass 2: sort the arena, overlay meeting hours, roll up per week.
	weeks := map[weekKey][]date.Day{}
	for day := range buckets {
		y, w := day.ISOWeek()
		k := weekKey{y, w}
		weeks[k] = append(weeks[k], day)
	}
	keys := make([]weekKey, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].week > keys[j].week
	})

	out := make([]Week, 0, len(keys))
	for _, k := range keys {
		days := weeks[k]
		sort.Slice(days, func(i, j int) bool { return days[j].Before(days[i]) })

		week := Week{Year: k.year, Week: k.week}
		for _, day := range days {
			b := buckets[day]
			sort.Slice(b.tasks, func(i, j int) bool { return b.tasks[i].ID < b.tasks[j].ID })
			stats := Stats{
				EstHours:     b.est,
				ActHours:     b.act,
				MeetingHours: meetings(day),
			}
			week.Stats.add(stats)
			week.Days = append(week.Days, Day{Date: day, Tasks: b.tasks, Stats: stats})
		}
		out = append(out, week)
	}
	return out
}

// distribute credits each log's duration to the day it started, the
// open log measured up to now.
func distribute(logs task.Logs, now time.Time, at func(date.Day) *bucket) {
	for _, log := range logs.Entries() {
		d := log.Duration(now)
		if d <= 0 {
			continue
		}
		at(log.Day()).act += d.Hours()
	}
}
