package history

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

var now = time.Date(2024, 1, 10, 18, 0, 0, 0, time.Local)

func tracked(name string, intervals ...[2]time.Time) task.Task {
	t := task.New(name, now.Add(-30*24*time.Hour))
	for _, iv := range intervals {
		t.StartTracking(iv[0])
		t.StopTracking(iv[1])
	}
	return t
}

func find(weeks []Week, d date.Day) *Day {
	for _, w := range weeks {
		for i := range w.Days {
			if w.Days[i].Date == d {
				return &w.Days[i]
			}
		}
	}
	return nil
}

func TestAggregateSplitsLogsAcrossDays(t *testing.T) {
	is := is.New(t)

	yesterday := now.Add(-24 * time.Hour)
	tk := tracked("split",
		[2]time.Time{yesterday, yesterday.Add(time.Hour)},
		[2]time.Time{now, now.Add(2 * time.Hour)},
	)
	tk.Complete(now.Add(2 * time.Hour))

	weeks := Aggregate([]task.Task{tk}, nil, now.Add(3*time.Hour))

	dYest := find(weeks, date.Of(yesterday))
	dToday := find(weeks, date.Of(now))
	is.True(dYest != nil)
	is.True(dToday != nil)
	is.Equal(dYest.Stats.ActHours, 1.0)
	is.Equal(dToday.Stats.ActHours, 2.0)

	// the task is listed on its completion day only
	is.Equal(len(dToday.Tasks), 1)
	is.Equal(len(dYest.Tasks), 0)
}

func TestAggregatePendingListsEveryTouchedDay(t *testing.T) {
	is := is.New(t)

	yesterday := now.Add(-24 * time.Hour)
	tk := tracked("wip",
		[2]time.Time{yesterday, yesterday.Add(time.Hour)},
		[2]time.Time{now, now.Add(time.Hour)},
	)

	weeks := Aggregate([]task.Task{tk}, nil, now.Add(2*time.Hour))

	dYest := find(weeks, date.Of(yesterday))
	dToday := find(weeks, date.Of(now))
	is.Equal(len(dYest.Tasks), 1)
	is.Equal(len(dToday.Tasks), 1)
	is.Equal(dYest.Tasks[0].ID, tk.ID)
	is.Equal(dToday.Tasks[0].ID, tk.ID)

	// pending tasks contribute no estimate hours
	is.Equal(dYest.Stats.EstHours, 0.0)
	is.Equal(dToday.Stats.EstHours, 0.0)
}

func TestAggregateEstimateOncePerCompletedTask(t *testing.T) {
	is := is.New(t)

	yesterday := now.Add(-24 * time.Hour)
	tk := tracked("est",
		[2]time.Time{yesterday, yesterday.Add(time.Hour)},
		[2]time.Time{now, now.Add(time.Hour)},
	)
	tk.Estimate = "3h"
	tk.Complete(now.Add(time.Hour))

	weeks := Aggregate([]task.Task{tk}, nil, now.Add(2*time.Hour))

	is.Equal(find(weeks, date.Of(now)).Stats.EstHours, 3.0)
	is.Equal(find(weeks, date.Of(yesterday)).Stats.EstHours, 0.0)
}

func TestAggregateDayAndWeekBoundaries(t *testing.T) {
	is := is.New(t)

	// Sunday 2024-01-07 23:59 is ISO week 1; Monday 2024-01-08 00:01 is
	// week 2. The tasks must land in different days and different weeks.
	sun := time.Date(2024, 1, 7, 23, 59, 0, 0, time.Local)
	mon := time.Date(2024, 1, 8, 0, 1, 0, 0, time.Local)

	a := task.New("a", sun.Add(-time.Hour))
	a.Complete(sun)
	b := task.New("b", sun.Add(-time.Hour))
	b.Complete(mon)

	weeks := Aggregate([]task.Task{a, b}, nil, now)
	is.Equal(len(weeks), 2)

	// newest week first
	is.Equal(weeks[0].Week, 2)
	is.Equal(weeks[1].Week, 1)
	is.Equal(weeks[0].Days[0].Date, date.Day{Year: 2024, Month: time.January, Date: 8})
	is.Equal(weeks[1].Days[0].Date, date.Day{Year: 2024, Month: time.January, Date: 7})
}

func TestAggregateOrderingDeterministic(t *testing.T) {
	is := is.New(t)

	mk := func(id string, at time.Time) task.Task {
		t := task.New(id, at.Add(-time.Hour))
		t.ID = task.ID(id)
		t.Complete(at)
		return t
	}
	d1 := now.Add(-48 * time.Hour)
	d2 := now.Add(-24 * time.Hour)
	tasks := []task.Task{mk("c", d2), mk("a", d2), mk("b", d1), mk("d", d2)}

	weeks := Aggregate(tasks, nil, now)

	day2 := find(weeks, date.Of(d2))
	is.Equal(len(day2.Tasks), 3)
	is.Equal(day2.Tasks[0].ID, task.ID("a"))
	is.Equal(day2.Tasks[1].ID, task.ID("c"))
	is.Equal(day2.Tasks[2].ID, task.ID("d"))

	// days inside a week are newest first
	for _, w := range weeks {
		for i := 1; i < len(w.Days); i++ {
			is.True(w.Days[i].Date.Before(w.Days[i-1].Date))
		}
	}
}

func TestAggregateMeetingOverlayAndRollup(t *testing.T) {
	is := is.New(t)

	tk := tracked("work", [2]time.Time{now, now.Add(2 * time.Hour)})
	tk.Estimate = "2h"
	tk.Complete(now.Add(2 * time.Hour))

	today := date.Of(now)
	meetings := func(d date.Day) float64 {
		if d == today {
			return 1.5
		}
		return 0
	}

	weeks := Aggregate([]task.Task{tk}, meetings, now.Add(3*time.Hour))
	is.Equal(len(weeks), 1)

	day := find(weeks, today)
	is.Equal(day.Stats, Stats{EstHours: 2, ActHours: 2, MeetingHours: 1.5})
	// week stats are rollups of their days
	is.Equal(weeks[0].Stats, Stats{EstHours: 2, ActHours: 2, MeetingHours: 1.5})
}

func TestAggregateSkipsIneligible(t *testing.T) {
	is := is.New(t)

	bare := task.New("no logs", now)
	gone := task.New("deleted", now)
	gone.Delete()

	weeks := Aggregate([]task.Task{bare, gone}, nil, now)
	is.Equal(len(weeks), 0)
}

func TestAggregateOpenLogCountsUpToNow(t *testing.T) {
	is := is.New(t)

	tk := task.New("running", now)
	tk.StartTracking(now)

	weeks := Aggregate([]task.Task{tk}, nil, now.Add(30*time.Minute))
	day := find(weeks, date.Of(now))
	is.True(day != nil)
	is.Equal(day.Stats.ActHours, 0.5)
	is.Equal(len(day.Tasks), 1)
}

func TestAggregateLegacyActual(t *testing.T) {
	is := is.New(t)

	tk := task.New("legacy", now.Add(-time.Hour))
	tk.State = task.Completed{At: now, LegacyActual: 4 * time.Hour}

	weeks := Aggregate([]task.Task{tk}, nil, now)
	is.Equal(find(weeks, date.Of(now)).Stats.ActHours, 4.0)
}
