package domain

import (
	"time"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists the valid workflow states.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// StatusFor returns the status implied by a completion flag.
func StatusFor(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusTodo
}

// Task is a single todo item. Field names follow the durable JSON layout.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
	UserID      string     `json:"userId" yaml:"userId"`
	SharedWith  []string   `json:"sharedWith" yaml:"sharedWith"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Status      Status     `json:"status" yaml:"status"`
}

// IsValid checks if the task has the fields every stored task needs.
func (t Task) IsValid() bool {
	return t.ID != "" && t.Priority.Valid() && t.Status.Valid()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Consistent reports whether the completed flag agrees with the status.
func (t Task) Consistent() bool {
	return t.Completed == (t.Status == StatusCompleted)
}

// IsOverdue reports whether the task has a due date before now and is still open.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// IsSharedWith reports whether recipient is in the task's share list.
func (t Task) IsSharedWith(recipient string) bool {
	for _, r := range t.SharedWith {
		if r == recipient {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	c.SharedWith = append([]string{}, t.SharedWith...)
	c.Tags = append([]string{}, t.Tags...)
	return c
}

// CloneTasks deep-copies a task list.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
