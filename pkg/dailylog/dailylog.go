// Package dailylog records per-day meeting hours, the one input to
// capacity planning that doesn't live on tasks.
package dailylog

import (
	"github.com/td0m/workday/pkg/task/date"
)

type Meeting struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type DailyLog struct {
	Date     date.Day  `json:"-"`
	Meetings []Meeting `json:"meetings"`
}

// New builds a log for day with a single catch-all meeting entry.
func New(day date.Day, hours float64) DailyLog {
	return DailyLog{
		Date:     day,
		Meetings: []Meeting{{Name: "all", Hours: hours}},
	}
}

// TotalHours sums the meeting hours for the day.
func (l DailyLog) TotalHours() float64 {
	var sum float64
	for _, m := range l.Meetings {
		sum += m.Hours
	}
	return sum
}
