package plan

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/workday/pkg/task"
)

var now = time.Date(2024, 3, 1, 15, 0, 0, 0, time.Local)

func withRemaining(name, estimate string) task.Task {
	t := task.New(name, now)
	t.Estimate = estimate
	return t
}

func TestBuildStats(t *testing.T) {
	is := is.New(t)

	// 3 hours tracked earlier today
	worked := task.New("worked", now)
	worked.StartTracking(now.Add(-4 * time.Hour))
	worked.StopTracking(now.Add(-time.Hour))

	stats, _ := Build([]task.Task{worked}, 2, 8, now)
	is.Equal(stats.TotalCapacity, 8.0)
	is.Equal(stats.MeetingHours, 2.0)
	is.Equal(stats.WorkDoneToday, 3.0)
	is.Equal(stats.RemainingActiveCapacity, 3.0)
}

func TestBuildFit(t *testing.T) {
	is := is.New(t)

	worked := task.New("worked", now)
	worked.StartTracking(now.Add(-4 * time.Hour))
	worked.StopTracking(now.Add(-time.Hour))

	fits := withRemaining("fits", "2.5h")
	tooBig := withRemaining("too big", "4h")
	noEstimate := withRemaining("no estimate", "")

	// remaining capacity is 8 - 2 - 3 = 3 hours
	_, entries := Build([]task.Task{worked, fits, tooBig, noEstimate}, 2, 8, now)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Task.Name] = e
	}
	is.Equal(byName["fits"].Fit, Fits)
	is.Equal(byName["too big"].Fit, DoesNotFit)
	is.Equal(byName["no estimate"].Fit, FitUnknown)
	// the stopped task has no remaining estimate either
	is.Equal(byName["worked"].Fit, FitUnknown)
}

func TestBuildSkipsTrackingAndNonPending(t *testing.T) {
	is := is.New(t)

	tracking := withRemaining("tracking", "2h")
	tracking.StartTracking(now.Add(-10 * time.Minute))

	done := withRemaining("done", "2h")
	done.Complete(now.Add(-time.Hour))

	gone := withRemaining("gone", "2h")
	gone.Delete()

	_, entries := Build([]task.Task{tracking, done, gone}, 0, 8, now)
	for _, e := range entries {
		is.Equal(e.Fit, FitUnknown)
	}
}

func TestBuildWorkDoneCountsWholeSnapshot(t *testing.T) {
	is := is.New(t)

	// completed today: still counts toward work done
	done := task.New("done", now)
	done.StartTracking(now.Add(-2 * time.Hour))
	done.Complete(now.Add(-time.Hour))

	stats, _ := Build([]task.Task{done}, 0, 8, now)
	is.Equal(stats.WorkDoneToday, 1.0)
	is.Equal(stats.RemainingActiveCapacity, 7.0)
}

func TestBuildCapacityFloorsAtZero(t *testing.T) {
	is := is.New(t)

	stats, _ := Build(nil, 10, 8, now)
	is.Equal(stats.RemainingActiveCapacity, 0.0)

	worked := task.New("worked", now)
	worked.StartTracking(now.Add(-9 * time.Hour))
	worked.StopTracking(now)
	stats, _ = Build([]task.Task{worked}, 0, 8, now)
	is.Equal(stats.RemainingActiveCapacity, 0.0)
}

func TestBuildExactBoundaryFits(t *testing.T) {
	is := is.New(t)

	exact := withRemaining("exact", "8h")
	_, entries := Build([]task.Task{exact}, 0, 8, now)
	is.Equal(entries[0].Fit, Fits)
}
