package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid task",
			task:     Task{ID: "a1", Title: "Write report", Priority: PriorityHigh, Status: StatusTodo},
			expected: true,
		},
		{
			name:     "empty title is tolerated on stored tasks",
			task:     Task{ID: "a1", Priority: PriorityLow, Status: StatusTodo},
			expected: true,
		},
		{
			name:     "missing id",
			task:     Task{Title: "Write report", Priority: PriorityHigh, Status: StatusTodo},
			expected: false,
		},
		{
			name:     "unknown priority",
			task:     Task{ID: "a1", Priority: "urgent", Status: StatusTodo},
			expected: false,
		},
		{
			name:     "unknown status",
			task:     Task{ID: "a1", Priority: PriorityLow, Status: "blocked"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_Consistent(t *testing.T) {
	tests := []struct {
		completed bool
		status    Status
		expected  bool
	}{
		{false, StatusTodo, true},
		{false, StatusInProgress, true},
		{true, StatusCompleted, true},
		{true, StatusTodo, false},
		{true, StatusInProgress, false},
		{false, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			task := Task{Completed: tt.completed, Status: tt.status}
			assert.Equal(t, tt.expected, task.Consistent())
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusFor(true))
	assert.Equal(t, StatusTodo, StatusFor(false))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"past due and open", Task{DueDate: &past}, true},
		{"past due but completed", Task{DueDate: &past, Completed: true}, false},
		{"due in the future", Task{DueDate: &future}, false},
		{"due exactly now", Task{DueDate: &now}, false},
		{"no due date", Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsOverdue(now))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	original := Task{ID: "a1", DueDate: &due, Tags: []string{"work"}, SharedWith: []string{"ann@example.com"}}

	clone := original.Clone()
	clone.Tags[0] = "home"
	clone.SharedWith[0] = "bob@example.com"
	*clone.DueDate = due.Add(time.Hour)

	assert.Equal(t, "work", original.Tags[0])
	assert.Equal(t, "ann@example.com", original.SharedWith[0])
	assert.Equal(t, due, *original.DueDate)
}

func TestTask_IsSharedWith(t *testing.T) {
	task := Task{SharedWith: []string{"ann@example.com"}}
	assert.True(t, task.IsSharedWith("ann@example.com"))
	assert.False(t, task.IsSharedWith("bob@example.com"))
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "Write report", Task{Title: "Write report"}.String())
}
