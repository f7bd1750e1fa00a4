package task

import (
	"encoding/json"
	"time"

	"github.com/td0m/workday/pkg/task/date"
)

// Log is a single tracked interval. A nil End means the interval is
// still open and the task is actively being worked on.
type Log struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Duration returns the length of the interval, measuring an open log up
// to now.
func (l Log) Duration(now time.Time) time.Duration {
	end := now
	if l.End != nil {
		end = *l.End
	}
	d := end.Sub(l.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Day returns the local calendar day the log counts against. A log
// spanning midnight credits its whole duration to the day it started.
func (l Log) Day() date.Day {
	return date.Of(l.Start)
}

// Logs is an owned collection of tracked intervals. It guarantees that
// at most one log is open and that the open log is always the last one:
// the only mutators are Start and Stop.
type Logs struct {
	entries []Log
}

// Tracking reports whether the last log is open.
func (l Logs) Tracking() bool {
	if len(l.entries) == 0 {
		return false
	}
	return l.entries[len(l.entries)-1].End == nil
}

// Start opens a new interval at now. It reports whether a log was
// opened; starting while already tracking is a no-op.
func (l *Logs) Start(now time.Time) bool {
	if l.Tracking() {
		return false
	}
	l.entries = append(l.entries, Log{Start: now})
	return true
}

// Stop closes the open interval at now. It reports whether a log was
// closed; stopping with nothing open is a no-op.
func (l *Logs) Stop(now time.Time) bool {
	if !l.Tracking() {
		return false
	}
	end := now
	l.entries[len(l.entries)-1].End = &end
	return true
}

// Total is the summed duration of all intervals, the open one measured
// up to now.
func (l Logs) Total(now time.Time) time.Duration {
	var sum time.Duration
	for _, log := range l.entries {
		sum += log.Duration(now)
	}
	return sum
}

// On is the summed duration of the intervals attributed to day.
func (l Logs) On(day date.Day, now time.Time) time.Duration {
	var sum time.Duration
	for _, log := range l.entries {
		if log.Day() == day {
			sum += log.Duration(now)
		}
	}
	return sum
}

// Days returns the distinct local days touched by any interval, in
// chronological order. Both endpoints of a closed log count as touched.
func (l Logs) Days() []date.Day {
	seen := map[date.Day]bool{}
	var days []date.Day
	add := func(d date.Day) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	for _, log := range l.entries {
		add(date.Of(log.Start))
		if log.End != nil {
			add(date.Of(*log.End))
		}
	}
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].Before(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

// Entries returns a copy of the intervals.
func (l Logs) Entries() []Log {
	out := make([]Log, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l Logs) Len() int {
	return len(l.entries)
}

func (l Logs) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

func (l *Logs) UnmarshalJSON(bs []byte) error {
	return json.Unmarshal(bs, &l.entries)
}
