package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/workday/pkg/task"
)

const (
	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// PriorityColor is the accent color for a task's priority marker.
func PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.High:
		return Red
	case task.Low:
		return Faded
	default:
		return Yellow
	}
}

// DueColor grades a due date by how close it is.
func DueColor(days int) lipgloss.Color {
	switch {
	case days < 0:
		return Red
	case days <= 2:
		return Orange
	case days <= 14:
		return Yellow
	default:
		return Faded
	}
}
