package date

import (
	"fmt"
	"time"
)

// Day is a local calendar day. It is comparable, so it can be used
// directly as a map key when bucketing work by day.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// Of returns the calendar day of t in local time.
func Of(t time.Time) Day {
	local := t.In(time.Local)
	return Day{Year: local.Year(), Month: local.Month(), Date: local.Day()}
}

// Parse parses a "YYYY-MM-DD" key.
func Parse(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("date: parse %q: %w", s, err)
	}
	return Of(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Date)
}

// Time returns midnight local time on d.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.Local)
}

// ISOWeek returns the ISO-8601 week d belongs to (Monday start, week 1
// is the first week containing a Thursday).
func (d Day) ISOWeek() (year, week int) {
	return d.Time().ISOWeek()
}

// Weekday returns the short weekday name ("Mon", "Tue", ...).
func (d Day) Weekday() string {
	return d.Time().Format("Mon")
}

// Before reports whether d is an earlier day than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Date < other.Date
}

// Add returns the day n days after d.
func (d Day) Add(n int) Day {
	return Of(d.Time().AddDate(0, 0, n))
}

// StartOfDay returns midnight local time on the day of t.
func StartOfDay(t time.Time) time.Time {
	return Of(t).Time()
}

// EndOfDay returns 23:59:59 local time on the day of t.
func EndOfDay(t time.Time) time.Time {
	return Of(t).Time().Add(24*time.Hour - time.Second)
}
