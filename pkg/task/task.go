package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/td0m/workday/pkg/task/date"
)

type ID string

// NewID returns a fresh random task ID.
func NewID() ID {
	return ID(uuid.NewString())
}

type Priority int

const (
	Low Priority = iota
	Medium
	High
)

func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Low:
		return "low"
	default:
		return "medium"
	}
}

// ParsePriority accepts the short and long forms used on the command
// line ("h", "high", ...). Anything else falls back to Medium.
func ParsePriority(s string) Priority {
	switch s {
	case "h", "high", "H", "High":
		return High
	case "l", "low", "L", "Low":
		return Low
	default:
		return Medium
	}
}

type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusDeleted:
		return "deleted"
	default:
		return "pending"
	}
}

// State is the lifecycle state of a task. It is a closed set: Pending,
// Completed and Deleted. Keeping the time logs inside the variants makes
// combinations like a deleted task with an open log unrepresentable.
type State interface {
	Status() Status
}

type Pending struct {
	Logs Logs
}

type Completed struct {
	At   time.Time
	Logs Logs

	// LegacyActual carries the recorded duration of tasks completed
	// before per-interval logging existed. Only consulted when Logs is
	// empty.
	LegacyActual time.Duration
}

type Deleted struct{}

func (Pending) Status() Status   { return StatusPending }
func (Completed) Status() Status { return StatusCompleted }
func (Deleted) Status() Status   { return StatusDeleted }

type Task struct {
	ID          ID
	Name        string
	Priority    Priority
	Due         *time.Time
	Description string
	Project     string
	Estimate    string
	Created     time.Time
	State       State
}

// New creates a pending task with no logs.
func New(name string, now time.Time) Task {
	return Task{
		ID:       NewID(),
		Name:     name,
		Priority: Medium,
		Created:  now,
		State:    Pending{},
	}
}

func (t Task) Status() Status {
	if t.State == nil {
		return StatusPending
	}
	return t.State.Status()
}

func (t Task) logs() Logs {
	switch s := t.State.(type) {
	case Pending:
		return s.Logs
	case Completed:
		return s.Logs
	default:
		return Logs{}
	}
}

// TimeLogs returns a copy of the task's tracked intervals.
func (t Task) TimeLogs() []Log {
	return t.logs().Entries()
}

// IsTracking reports whether the task is pending with an open log.
func (t Task) IsTracking() bool {
	if s, ok := t.State.(Pending); ok {
		return s.Logs.Tracking()
	}
	return false
}

// StartTracking opens a log at now. No-op unless the task is pending,
// and no-op when already tracking.
func (t *Task) StartTracking(now time.Time) {
	s, ok := t.State.(Pending)
	if !ok {
		return
	}
	s.Logs.Start(now)
	t.State = s
}

// StopTracking closes the open log at now. No-op when nothing is open.
func (t *Task) StopTracking(now time.Time) {
	s, ok := t.State.(Pending)
	if !ok {
		return
	}
	s.Logs.Stop(now)
	t.State = s
}

// Complete closes any open log and moves a pending task to completed.
// No-op for completed and deleted tasks.
func (t *Task) Complete(now time.Time) {
	s, ok := t.State.(Pending)
	if !ok {
		return
	}
	s.Logs.Stop(now)
	t.State = Completed{At: now, Logs: s.Logs}
}

// Reopen resets the task to pending with no logs, whatever state it was
// in. Prior logs are discarded: a reopened task is a fresh work session
// (archived stats keep the old numbers).
func (t *Task) Reopen() {
	t.State = Pending{}
}

// Delete moves the task to deleted, discarding its logs.
func (t *Task) Delete() {
	t.State = Deleted{}
}

// CompletedAt returns the completion instant, or nil.
func (t Task) CompletedAt() *time.Time {
	if s, ok := t.State.(Completed); ok {
		at := s.At
		return &at
	}
	return nil
}

// ElapsedTotal is the total tracked time across all logs, the open one
// measured up to now. Completed tasks with no logs fall back to the
// legacy recorded duration.
func (t Task) ElapsedTotal(now time.Time) time.Duration {
	switch s := t.State.(type) {
	case Pending:
		return s.Logs.Total(now)
	case Completed:
		if s.Logs.Len() == 0 {
			return s.LegacyActual
		}
		return s.Logs.Total(now)
	default:
		return 0
	}
}

// ElapsedOn is the tracked time attributed to day. A log counts against
// the day it started, even when it runs past midnight. A completed task
// with no logs credits its legacy duration to its completion day.
func (t Task) ElapsedOn(day date.Day, now time.Time) time.Duration {
	switch s := t.State.(type) {
	case Pending:
		return s.Logs.On(day, now)
	case Completed:
		if s.Logs.Len() == 0 {
			if date.Of(s.At) == day {
				return s.LegacyActual
			}
			return 0
		}
		return s.Logs.On(day, now)
	default:
		return 0
	}
}

// EstimateHours is the parsed estimate in hours, 0 when the estimate is
// blank or unparseable.
func (t Task) EstimateHours() float64 {
	return EstimateHours(t.Estimate)
}

// RemainingHours is the estimated effort left: estimate minus total
// tracked time, floored at zero.
func (t Task) RemainingHours(now time.Time) float64 {
	remaining := t.EstimateHours() - t.ElapsedTotal(now).Hours()
	if remaining < 0 {
		return 0
	}
	return remaining
}
