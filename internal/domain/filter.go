package domain

import (
	"strings"

	"smart-share-todo/internal/errors"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterActive    StatusFilter = "active"
	StatusFilterCompleted StatusFilter = "completed"
	StatusFilterOverdue   StatusFilter = "overdue"
)

// PriorityFilter selects tasks by priority; "all" disables the predicate.
type PriorityFilter string

const PriorityFilterAll PriorityFilter = "all"

// TaskFilter holds the criteria for a filtered view. Empty fields mean "all".
// Shared is carried for callers but no predicate consults it.
type TaskFilter struct {
	Status   StatusFilter
	Priority PriorityFilter
	Search   string
	Shared   *bool
}

// TaskCounts are badge totals over an unfiltered task list.
type TaskCounts struct {
	All       int `json:"all" yaml:"all"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
	Overdue   int `json:"overdue" yaml:"overdue"`
}

// ParseStatusFilter validates a user-supplied status filter. Empty input means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusFilterAll, nil
	case StatusFilterAll, StatusFilterActive, StatusFilterCompleted, StatusFilterOverdue:
		return f, nil
	}
	return "", errors.NewInvalidInputError("status", s, "must be one of all, active, completed, overdue")
}

// ParsePriorityFilter validates a user-supplied priority filter. Empty input means all.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	f := PriorityFilter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == PriorityFilterAll {
		return PriorityFilterAll, nil
	}
	if Priority(f).Valid() {
		return f, nil
	}
	return "", errors.NewInvalidInputError("priority", s, "must be one of all, low, medium, high")
}

// ParsePriority validates a task priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.NewInvalidInputError("priority", s, "must be one of low, medium, high")
	}
	return p, nil
}

// ParseStatus validates a task status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errors.NewInvalidInputError("status", s, "must be one of todo, in-progress, completed")
	}
	return st, nil
}
