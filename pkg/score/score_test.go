package score

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/workday/pkg/task"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

func pending(name string, p task.Priority) task.Task {
	t := task.New(name, now)
	t.Priority = p
	return t
}

func TestUrgencyNonPending(t *testing.T) {
	is := is.New(t)

	done := pending("done", task.High)
	done.Complete(now)
	is.Equal(Score(done, Urgency, now), -100.0)

	gone := pending("gone", task.High)
	gone.Delete()
	is.Equal(Score(gone, Urgency, now), -100.0)

	// always below a pending task, even a bare low-priority one
	bare := pending("bare", task.Low)
	is.True(Score(bare, Urgency, now) > -100.0)
}

func TestUrgencyDueBuckets(t *testing.T) {
	is := is.New(t)

	at := func(d time.Duration) *time.Time {
		due := now.Add(d)
		return &due
	}
	base := pending("x", task.Low) // priority term 0.6 in every case

	overdue := base
	overdue.Due = at(-time.Hour)
	is.Equal(Score(overdue, Urgency, now), 12.0*2+0.6)

	dueSoon := base
	dueSoon.Due = at(48 * time.Hour) // 2 days out
	is.Equal(Score(dueSoon, Urgency, now), 12.0+(7-2)*0.5+0.6)

	nextWeek := base
	nextWeek.Due = at(10 * 24 * time.Hour)
	is.Equal(Score(nextWeek, Urgency, now), 12.0*0.5+0.6)

	someday := base
	someday.Due = at(30 * 24 * time.Hour)
	is.Equal(Score(someday, Urgency, now), 12.0*0.2+0.6)

	is.Equal(Score(base, Urgency, now), 0.6) // no due date, no due term
}

func TestUrgencyAge(t *testing.T) {
	is := is.New(t)

	young := pending("young", task.Low)
	old := pending("old", task.Low)
	old.Created = now.Add(-50 * 24 * time.Hour)
	ancient := pending("ancient", task.Low)
	ancient.Created = now.Add(-500 * 24 * time.Hour)

	is.Equal(Score(young, Urgency, now), 0.6)
	is.Equal(Score(old, Urgency, now), 0.6+(50.0/100)*2.0)
	// age term is capped at its coefficient
	is.Equal(Score(ancient, Urgency, now), 0.6+2.0)
}

func TestUrgencyEstimate(t *testing.T) {
	is := is.New(t)

	quick := pending("quick", task.Low)
	quick.Estimate = "20m"
	is.Equal(Score(quick, Urgency, now), 0.6+5.0)

	hour := pending("hour", task.Low)
	hour.Estimate = "1h"
	is.Equal(Score(hour, Urgency, now), 0.6+5.0*0.5)

	long := pending("long", task.Low)
	long.Estimate = "2h"
	is.Equal(Score(long, Urgency, now), 0.6+5.0*0.2)

	epic := pending("epic", task.Low)
	epic.Estimate = "2d"
	is.Equal(Score(epic, Urgency, now), 0.6)

	// unparseable estimates contribute nothing and never fail
	bad := pending("bad", task.Low)
	bad.Estimate = "a while"
	is.Equal(Score(bad, Urgency, now), 0.6)
}

func TestPriorityStrategy(t *testing.T) {
	is := is.New(t)

	is.Equal(Score(pending("h", task.High), Priority, now), 3.0)
	is.Equal(Score(pending("m", task.Medium), Priority, now), 2.0)
	is.Equal(Score(pending("l", task.Low), Priority, now), 1.0)
}

func TestDueDateStrategy(t *testing.T) {
	is := is.New(t)

	early := pending("early", task.Medium)
	d1 := now.Add(time.Hour)
	early.Due = &d1

	late := pending("late", task.Medium)
	d2 := now.Add(48 * time.Hour)
	late.Due = &d2

	never := pending("never", task.Medium)

	is.True(Score(early, DueDate, now) > Score(late, DueDate, now))
	is.True(Score(late, DueDate, now) > Score(never, DueDate, now))
}

func TestSortStable(t *testing.T) {
	is := is.New(t)

	tasks := []task.Task{
		pending("m1", task.Medium),
		pending("h1", task.High),
		pending("m2", task.Medium),
		pending("l1", task.Low),
		pending("h2", task.High),
	}
	Sort(tasks, Priority, now)

	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	// highs before mediums before lows, ties in input order
	is.Equal(names, []string{"h1", "h2", "m1", "m2", "l1"})
}

func TestSortUrgencyPutsDoneLast(t *testing.T) {
	is := is.New(t)

	a := pending("todo", task.Low)
	b := pending("done", task.High)
	b.Complete(now)

	tasks := []task.Task{b, a}
	Sort(tasks, Urgency, now)
	is.Equal(tasks[0].Name, "todo")
	is.Equal(tasks[1].Name, "done")
}
