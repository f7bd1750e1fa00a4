package dailylog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/workday/pkg/task/date"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "daily_logs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	is := is.New(t)

	s := open(t)
	day := date.Day{Year: 2024, Month: time.March, Date: 1}

	log, err := s.Get(day)
	is.NoErr(err)
	is.Equal(log, nil)

	has, err := s.Has(day)
	is.NoErr(err)
	is.True(!has)

	is.NoErr(s.Upsert(New(day, 2.5)))

	log, err = s.Get(day)
	is.NoErr(err)
	is.True(log != nil)
	is.Equal(log.Date, day)
	is.Equal(log.TotalHours(), 2.5)

	// Upsert replaces the day's record
	is.NoErr(s.Upsert(DailyLog{Date: day, Meetings: []Meeting{
		{Name: "standup", Hours: 0.5},
		{Name: "planning", Hours: 1},
	}}))
	log, err = s.Get(day)
	is.NoErr(err)
	is.Equal(log.TotalHours(), 1.5)
	is.Equal(len(log.Meetings), 2)
}

func TestHours(t *testing.T) {
	is := is.New(t)

	s := open(t)
	day := date.Day{Year: 2024, Month: time.March, Date: 1}

	is.Equal(s.Hours(day), 0.0) // absent day reads as zero

	is.NoErr(s.Upsert(New(day, 3)))
	is.Equal(s.Hours(day), 3.0)
	is.Equal(s.Hours(day.Add(1)), 0.0)
}
