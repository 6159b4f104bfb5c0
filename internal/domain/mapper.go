package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"smart-share-todo/internal/errors"
)

// Durable storage keys.
const (
	TasksKey = "tasks"
	UserKey  = "user"
)

// SnapshotMapper converts between domain values and their durable JSON form.
type SnapshotMapper struct{}

// NewSnapshotMapper creates a new SnapshotMapper instance.
func NewSnapshotMapper() *SnapshotMapper {
	return &SnapshotMapper{}
}

// EncodeTasks serializes the full task list. List fields are always written as arrays.
func (m *SnapshotMapper) EncodeTasks(tasks []Task) (string, error) {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = withArrays(t)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// DecodeTasks parses a stored task list. Anything that is not an array of
// well-formed tasks is reported as a malformed_snapshot error. A task whose
// completed flag disagrees with its status has the status rederived from the flag.
func (m *SnapshotMapper) DecodeTasks(raw string) ([]Task, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '[' {
		return nil, errors.NewMalformedSnapshotError(TasksKey, fmt.Errorf("expected a JSON array"))
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, errors.NewMalformedSnapshotError(TasksKey, err)
	}

	for i := range tasks {
		t := withArrays(tasks[i])
		if t.Status == "" {
			t.Status = StatusFor(t.Completed)
		}
		if !t.IsValid() {
			return nil, errors.NewMalformedSnapshotError(TasksKey, fmt.Errorf("task at index %d is invalid", i))
		}
		if !t.Consistent() {
			t.Status = StatusFor(t.Completed)
		}
		tasks[i] = t
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// EncodeUser serializes the session user.
func (m *SnapshotMapper) EncodeUser(user User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(data), nil
}

// DecodeUser parses the stored session user.
func (m *SnapshotMapper) DecodeUser(raw string) (User, error) {
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return User{}, errors.NewMalformedSnapshotError(UserKey, err)
	}
	if !user.IsValid() {
		return User{}, errors.NewMalformedSnapshotError(UserKey, fmt.Errorf("user record has no id"))
	}
	return user, nil
}

func withArrays(t Task) Task {
	if t.SharedWith == nil {
		t.SharedWith = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}
