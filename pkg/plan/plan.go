// Package plan answers "what still fits today": remaining working
// capacity after meetings and tracked work, and per-task fit flags.
package plan

import (
	"time"

	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

// DefaultCapacity is the working hours in a day before meetings. It is
// a configuration default, not a law: callers pass their own value.
const DefaultCapacity = 8.0

type Stats struct {
	TotalCapacity           float64
	MeetingHours            float64
	WorkDoneToday           float64
	RemainingActiveCapacity float64
}

// Fit says whether a task's remaining effort fits in today's remaining
// capacity. Unknown means no verdict: the task is not pending, is being
// tracked right now, or has nothing left on its estimate.
type Fit int

const (
	FitUnknown Fit = iota
	Fits
	DoesNotFit
)

// Entry pairs a task with its fit verdict and remaining effort.
type Entry struct {
	Task           task.Task
	RemainingHours float64
	Fit            Fit
}

// Build computes today's capacity stats and annotates every task.
// Work done today sums over the whole snapshot: anything touched today
// counts, completed tasks included.
func Build(tasks []task.Task, meetingHours, totalCapacity float64, now time.Time) (Stats, []Entry) {
	today := date.Of(now)

	var workDone time.Duration
	for _, t := range tasks {
		workDone += t.ElapsedOn(today, now)
	}
	workDoneHours := workDone.Hours()

	effective := totalCapacity - meetingHours
	if effective < 0 {
		effective = 0
	}
	remaining := effective - workDoneHours
	if remaining < 0 {
		remaining = 0
	}

	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		e := Entry{Task: t, RemainingHours: t.RemainingHours(now)}
		if t.Status() == task.StatusPending && !t.IsTracking() && e.RemainingHours > 0 {
			if e.RemainingHours <= remaining {
				e.Fit = Fits
			} else {
				e.Fit = DoesNotFit
			}
		}
		entries[i] = e
	}

	return Stats{
		TotalCapacity:           totalCapacity,
		MeetingHours:            meetingHours,
		WorkDoneToday:           workDoneHours,
		RemainingActiveCapacity: remaining,
	}, entries
}
