// Package score orders tasks. Scores are pure functions of a task, a
// strategy and an explicit "now", so callers (and tests) decide what
// time it is.
package score

import (
	"math"
	"sort"
	"time"

	"github.com/td0m/workday/pkg/task"
)

type Strategy int

const (
	Urgency Strategy = iota
	Priority
	DueDate
)

// Urgency coefficients.
const (
	coefDue      = 12.0
	coefPriority = 6.0
	coefAge      = 2.0
	coefEstimate = 5.0
)

// nonPending is the score of completed and deleted tasks under the
// urgency strategy: always below any pending task.
const nonPending = -100.0

// Score rates a task under the given strategy. Higher sorts first.
func Score(t task.Task, strategy Strategy, now time.Time) float64 {
	switch strategy {
	case Priority:
		return priorityScore(t)
	case DueDate:
		return dueScore(t)
	default:
		return urgency(t, now)
	}
}

func urgency(t task.Task, now time.Time) float64 {
	if t.Status() != task.StatusPending {
		return nonPending
	}

	score := 0.0

	if t.Due != nil {
		due := *t.Due
		if due.Before(now) {
			score += coefDue * 2
		} else {
			switch days := int(due.Sub(now).Hours() / 24); {
			case days < 7:
				score += coefDue + (7-float64(days))*0.5
			case days < 14:
				score += coefDue * 0.5
			default:
				score += coefDue * 0.2
			}
		}
	}

	switch t.Priority {
	case task.High:
		score += coefPriority
	case task.Medium:
		score += coefPriority * 0.5
	case task.Low:
		score += coefPriority * 0.1
	}

	if days := int(now.Sub(t.Created).Hours() / 24); days > 0 {
		score += math.Min(float64(days)/100*coefAge, coefAge)
	}

	if est, err := task.ParseEstimate(t.Estimate); err == nil {
		switch minutes := est.Minutes(); {
		case minutes > 0 && minutes <= 30:
			score += coefEstimate
		case minutes > 0 && minutes <= 60:
			score += coefEstimate * 0.5
		case minutes > 0 && minutes <= 120:
			score += coefEstimate * 0.2
		}
	}

	return score
}

func priorityScore(t task.Task) float64 {
	switch t.Priority {
	case task.High:
		return 3
	case task.Medium:
		return 2
	default:
		return 1
	}
}

func dueScore(t task.Task) float64 {
	if t.Due == nil {
		// no due date sorts last
		return -math.MaxFloat64
	}
	// earlier due date, higher score
	return -float64(t.Due.Unix())
}

// Sort orders tasks by descending score. The sort is stable: tasks with
// equal scores keep their relative order.
func Sort(tasks []task.Task, strategy Strategy, now time.Time) {
	scored := make([]struct {
		t task.Task
		s float64
	}, len(tasks))
	for i, t := range tasks {
		scored[i].t = t
		scored[i].s = Score(t, strategy, now)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].s > scored[j].s
	})
	for i := range scored {
		tasks[i] = scored[i].t
	}
}
