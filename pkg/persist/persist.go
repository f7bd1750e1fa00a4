// Package persist stores the live task list as a single JSON file. The
// core engine never touches disk itself; it works on snapshots handed
// over by this store.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/td0m/workday/pkg/task"
)

var ErrNotFound = errors.New("task not found")

type JSON struct {
	file string
}

// InJSON creates a store backed by the given file, initializing it with
// an empty list when missing.
func InJSON(file string) (*JSON, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(file, []byte("[]"), 0o600); err != nil {
			return nil, err
		}
	}
	return &JSON{file: file}, nil
}

func (j *JSON) read() ([]task.Task, error) {
	bs, err := os.ReadFile(j.file)
	if err != nil {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal(bs, &tasks); err != nil {
		return nil, fmt.Errorf("persist: decode %s: %w", j.file, err)
	}
	return tasks, nil
}

func (j *JSON) write(tasks []task.Task) error {
	bs, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(j.file, bs, 0o600)
}

// List returns every stored task.
func (j *JSON) List() ([]task.Task, error) {
	return j.read()
}

// Get returns the task with the given id, or ErrNotFound.
func (j *JSON) Get(id task.ID) (task.Task, error) {
	tasks, err := j.read()
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, ErrNotFound
}

// Create appends a new task.
func (j *JSON) Create(t task.Task) error {
	tasks, err := j.read()
	if err != nil {
		return err
	}
	return j.write(append(tasks, t))
}

// Update replaces the stored record with the same id, or ErrNotFound.
func (j *JSON) Update(t task.Task) error {
	tasks, err := j.read()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			return j.write(tasks)
		}
	}
	return ErrNotFound
}

// Delete removes the record with the given id, or ErrNotFound.
func (j *JSON) Delete(id task.ID) error {
	tasks, err := j.read()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return j.write(append(tasks[:i], tasks[i+1:]...))
		}
	}
	return ErrNotFound
}

// Replace overwrites the whole list. Used by archival compaction.
func (j *JSON) Replace(tasks []task.Task) error {
	return j.write(tasks)
}
