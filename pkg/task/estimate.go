package task

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Estimates use one grammar everywhere: a number with an optional unit
// suffix. "m" and "h" are literal minutes and hours; "d" is a working
// day (8h) and "w" a working week (40h). A bare number means hours.
const (
	workingDay  = 8 * time.Hour
	workingWeek = 5 * workingDay
)

var errEmptyEstimate = errors.New("empty estimate")

// ParseEstimate parses an effort estimate like "30m", "1.5h", "2d" or
// "2.5" (hours) into a duration.
func ParseEstimate(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, errEmptyEstimate
	}

	unit := time.Hour
	switch s[len(s)-1] {
	case 'm':
		unit = time.Minute
		s = s[:len(s)-1]
	case 'h':
		unit = time.Hour
		s = s[:len(s)-1]
	case 'd':
		unit = workingDay
		s = s[:len(s)-1]
	case 'w':
		unit = workingWeek
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0, errors.New("invalid estimate number")
	}
	return time.Duration(n * float64(unit)), nil
}

// EstimateHours parses s and converts to hours. Blank or unparseable
// estimates are worth 0; they must never fail scoring or aggregation.
func EstimateHours(s string) float64 {
	d, err := ParseEstimate(s)
	if err != nil {
		return 0
	}
	return d.Hours()
}
