package ui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	TaskMarker   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle    = lipgloss.NewStyle().Bold(true)
	DoneTitle    = lipgloss.NewStyle().Foreground(Secondary).Strikethrough(true)
	TaskProject  = lipgloss.NewStyle().Foreground(Secondary)
	TaskEstimate = lipgloss.NewStyle().Foreground(Faded)

	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	TaskTimer   = lipgloss.NewStyle().Foreground(Blue)
	FitYes      = lipgloss.NewStyle().Foreground(Green)
	FitNo       = lipgloss.NewStyle().Foreground(Red)
)

// FormatDuration renders a tracked duration like "(1h30m0s)".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	bracket := lipgloss.NewStyle().Foreground(Faded).Render
	return bracket("(") + TaskTimer.Render(d.String()) + bracket(")")
}

// FormatDue renders a due date relative to now: "today", "3 days",
// "2 weeks", "overdue 1 day".
func FormatDue(due, now time.Time) string {
	days := daysBetween(now, due)
	switch {
	case days < 0:
		return "overdue " + plural(-days, "day")
	case days == 0:
		return "today"
	case days < 14:
		return plural(days, "day")
	case days <= 31:
		return plural(days/7, "week")
	default:
		return plural(days/31, "month")
	}
}

// DueDays is the whole days from now's date to due's date, negative
// when overdue.
func DueDays(due, now time.Time) int {
	return daysBetween(now, due)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f).Hours() / 24)
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
