package dailylog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/td0m/workday/pkg/task/date"
)

var bucket = []byte("daily_logs")

// Store keeps daily logs in a bolt file, one record per day keyed by
// "YYYY-MM-DD".
type Store struct {
	db *bolt.DB
}

// Open initializes the bolt file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the log for day, or nil when none was recorded.
func (s *Store) Get(day date.Day) (*DailyLog, error) {
	var log *DailyLog
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(day.String()))
		if v == nil {
			return nil
		}
		var l DailyLog
		if err := json.Unmarshal(v, &l); err != nil {
			return err
		}
		l.Date = day
		log = &l
		return nil
	})
	return log, err
}

// Has reports whether a log exists for day.
func (s *Store) Has(day date.Day) (bool, error) {
	log, err := s.Get(day)
	return log != nil, err
}

// Upsert writes the log for its day, replacing any previous record.
func (s *Store) Upsert(log DailyLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(log.Date.String()), payload)
	})
}

// Hours is a convenience lookup for aggregation: meeting hours for day,
// 0 when absent or unreadable.
func (s *Store) Hours(day date.Day) float64 {
	log, err := s.Get(day)
	if err != nil || log == nil {
		return 0
	}
	return log.TotalHours()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
