// Package dateinput parses the date phrases accepted for due dates:
// reserved words ("today", "eow"), relative offsets ("+2d"), weekdays
// ("fri", "2:fri") and plain dates. Everything resolves to the end of
// the target day in local time, since a due date means "by then".
package dateinput

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/td0m/workday/pkg/task/date"
)

var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

var absoluteFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse resolves a date phrase relative to now.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	today := date.Of(now)

	switch s {
	case "today", "tod":
		return date.EndOfDay(now), nil
	case "tomorrow", "tom":
		return date.EndOfDay(today.Add(1).Time()), nil
	case "eow":
		// end of week is Sunday
		days := int(time.Sunday) - int(now.Weekday())
		if days < 0 {
			days += 7
		}
		return date.EndOfDay(today.Add(days).Time()), nil
	case "eom":
		first := time.Date(today.Year, today.Month, 1, 0, 0, 0, 0, time.Local)
		last := first.AddDate(0, 1, -1)
		return date.EndOfDay(last), nil
	}

	if strings.HasPrefix(s, "+") {
		return parseRelative(s[1:], today)
	}

	if t, err := parseWeekday(s, now); err == nil {
		return t, nil
	}

	for _, format := range absoluteFormats {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			if format == "2006-01-02" {
				return date.EndOfDay(t), nil
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date: %q", s)
}

// parseRelative handles "+Nd", "+Nw" and "+Nm" (days, weeks, months).
func parseRelative(s string, today date.Day) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, errors.New("invalid relative date")
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative date: %w", err)
	}
	base := today.Time()
	switch s[len(s)-1] {
	case 'd':
		return date.EndOfDay(base.AddDate(0, 0, n)), nil
	case 'w':
		return date.EndOfDay(base.AddDate(0, 0, 7*n)), nil
	case 'm':
		return date.EndOfDay(base.AddDate(0, n, 0)), nil
	default:
		return time.Time{}, fmt.Errorf("unknown relative unit %q", s[len(s)-1])
	}
}

// parseWeekday handles "fri" (the next Friday) and "2:fri" (the one
// after that).
func parseWeekday(s string, now time.Time) (time.Time, error) {
	count := 1
	name := s
	if before, after, ok := strings.Cut(s, ":"); ok {
		n, err := strconv.Atoi(before)
		if err != nil || n < 1 {
			return time.Time{}, errors.New("invalid weekday repetition")
		}
		count = n
		name = after
	}
	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid weekday %q", name)
	}

	days := int(target) - int(now.Weekday())
	if days <= 0 {
		days += 7
	}
	days += (count - 1) * 7
	return date.EndOfDay(date.Of(now).Add(days).Time()), nil
}
