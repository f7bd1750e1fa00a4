package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// taskJSON is the flat on-disk shape of a task. The status field tags
// which state variant the record holds.
type taskJSON struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Priority    string     `json:"priority"`
	Due         *time.Time `json:"due,omitempty"`
	Description string     `json:"description,omitempty"`
	Project     string     `json:"project,omitempty"`
	Estimate    string     `json:"estimate,omitempty"`
	Created     time.Time  `json:"created_at"`

	Status      string     `json:"status"`
	TimeLogs    Logs       `json:"time_logs"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ActualSecs  int64      `json:"actual_seconds,omitempty"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:          t.ID,
		Name:        t.Name,
		Priority:    t.Priority.String(),
		Due:         t.Due,
		Description: t.Description,
		Project:     t.Project,
		Estimate:    t.Estimate,
		Created:     t.Created,
		Status:      t.Status().String(),
	}
	switch s := t.State.(type) {
	case Completed:
		at := s.At
		out.CompletedAt = &at
		out.TimeLogs = s.Logs
		out.ActualSecs = int64(s.LegacyActual / time.Second)
	case Deleted:
	default:
		out.TimeLogs = t.logs()
	}
	return json.Marshal(out)
}

func (t *Task) UnmarshalJSON(bs []byte) error {
	var in taskJSON
	if err := json.Unmarshal(bs, &in); err != nil {
		return err
	}
	t.ID = in.ID
	t.Name = in.Name
	t.Priority = ParsePriority(in.Priority)
	t.Due = in.Due
	t.Description = in.Description
	t.Project = in.Project
	t.Estimate = in.Estimate
	t.Created = in.Created

	switch in.Status {
	case "", "pending":
		t.State = Pending{Logs: in.TimeLogs}
	case "completed":
		var at time.Time
		if in.CompletedAt != nil {
			at = *in.CompletedAt
		}
		t.State = Completed{
			At:           at,
			Logs:         in.TimeLogs,
			LegacyActual: time.Duration(in.ActualSecs) * time.Second,
		}
	case "deleted":
		t.State = Deleted{}
	default:
		return fmt.Errorf("task: unknown status %q", in.Status)
	}
	return nil
}
