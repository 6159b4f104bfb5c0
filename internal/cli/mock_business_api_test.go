package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/services"
)

var mockNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// mockBusinessAPI implements the BusinessAPI interface for testing
type mockBusinessAPI struct {
	user   *domain.User
	tasks  []domain.Task
	nextID int

	// recorded inputs
	lastDraft   domain.TaskDraft
	lastPatch   domain.TaskPatch
	lastOptions api.ListOptions
	lastShare   []string

	// failWith is returned by every task operation when set
	failWith error
}

// newMockBusinessAPI creates a signed-in mock with an empty list
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		user:   &domain.User{ID: "user-1", Name: "Demo User", Email: "demo@smartsharetodo.com"},
		nextID: 1,
	}
}

func (m *mockBusinessAPI) Login(ctx context.Context, provider string) (*domain.User, error) {
	m.user = &domain.User{ID: "user-1", Name: "Demo User", Email: "demo@smartsharetodo.com"}
	return m.user, nil
}

func (m *mockBusinessAPI) Logout(ctx context.Context) error {
	m.user = nil
	m.tasks = nil
	return nil
}

func (m *mockBusinessAPI) WhoAmI(ctx context.Context) (*domain.User, error) {
	if m.user == nil {
		return nil, errors.NewUnauthenticatedError("whoami")
	}
	return m.user, nil
}

func (m *mockBusinessAPI) check(operation string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if m.user == nil {
		return errors.NewUnauthenticatedError(operation)
	}
	return nil
}

func (m *mockBusinessAPI) find(id string) (int, error) {
	for i, task := range m.tasks {
		if task.ID == id || strings.HasPrefix(task.ID, id) {
			return i, nil
		}
	}
	return -1, errors.NewNotFoundError("task", id)
}

func (m *mockBusinessAPI) AddTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if err := m.check("add task"); err != nil {
		return nil, err
	}
	m.lastDraft = draft
	draft = draft.Normalize()
	if draft.Title == "" {
		return nil, errors.NewValidationError("invalid task", nil)
	}

	status := draft.Status
	if status == "" {
		status = domain.StatusFor(draft.Completed)
	}
	task := domain.Task{
		ID:         fmt.Sprintf("task-%d", m.nextID),
		Title:      draft.Title,
		Priority:   draft.Priority,
		DueDate:    draft.DueDate,
		Status:     status,
		Completed:  status == domain.StatusCompleted,
		Tags:       draft.Tags,
		SharedWith: draft.SharedWith,
		CreatedAt:  mockNow,
		UpdatedAt:  mockNow,
		UserID:     m.user.ID,
	}
	m.nextID++
	m.tasks = append([]domain.Task{task}, m.tasks...)
	return &task, nil
}

func (m *mockBusinessAPI) EditTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := m.check("edit task"); err != nil {
		return nil, err
	}
	m.lastPatch = patch
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	m.tasks[i] = patch.Apply(m.tasks[i])
	task := m.tasks[i]
	return &task, nil
}

func (m *mockBusinessAPI) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := m.check("toggle task"); err != nil {
		return nil, err
	}
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	m.tasks[i].Completed = !m.tasks[i].Completed
	m.tasks[i].Status = domain.StatusFor(m.tasks[i].Completed)
	task := m.tasks[i]
	return &task, nil
}

func (m *mockBusinessAPI) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := m.check("delete task"); err != nil {
		return nil, err
	}
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	task := m.tasks[i]
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return &task, nil
}

func (m *mockBusinessAPI) ShareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error) {
	if err := m.check("share task"); err != nil {
		return nil, err
	}
	m.lastShare = recipients
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	m.tasks[i].SharedWith = domain.NormalizeRecipients(append(m.tasks[i].SharedWith, recipients...))
	task := m.tasks[i]
	return &task, nil
}

func (m *mockBusinessAPI) UnshareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error) {
	if err := m.check("unshare task"); err != nil {
		return nil, err
	}
	m.lastShare = recipients
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	kept := []string{}
	for _, r := range m.tasks[i].SharedWith {
		drop := false
		for _, gone := range recipients {
			drop = drop || r == gone
		}
		if !drop {
			kept = append(kept, r)
		}
	}
	m.tasks[i].SharedWith = kept
	task := m.tasks[i]
	return &task, nil
}

func (m *mockBusinessAPI) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := m.check("get task"); err != nil {
		return nil, err
	}
	i, err := m.find(id)
	if err != nil {
		return nil, err
	}
	task := m.tasks[i]
	return &task, nil
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, opts api.ListOptions) (*api.TaskList, error) {
	if err := m.check("list tasks"); err != nil {
		return nil, err
	}
	m.lastOptions = opts
	filter := services.NewFilterService()
	tasks := filter.Filter(m.tasks, opts.Filter, mockNow)
	if opts.Sort != "" {
		tasks = filter.Sort(tasks, opts.Sort)
	}
	return &api.TaskList{
		Tasks:  tasks,
		Counts: filter.Counts(m.tasks, mockNow),
		Total:  len(m.tasks),
	}, nil
}

func (m *mockBusinessAPI) Stats(ctx context.Context) (*services.TaskSummary, error) {
	if err := m.check("stats"); err != nil {
		return nil, err
	}
	reporting := services.NewReportingService(
		services.NewTimeServiceWithClock(nil, func() time.Time { return mockNow }),
		services.NewFilterService(),
	)
	return reporting.Summarize(m.tasks, mockNow), nil
}

func (m *mockBusinessAPI) ParseDueDate(input string) (time.Time, error) {
	return services.NewTimeServiceWithClock(nil, func() time.Time { return mockNow }).ParseDueDate(input)
}

func (m *mockBusinessAPI) FormatDueDate(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format("2006-01-02")
}

// setupTestAppWithMockBusinessAPI creates a test app with mock BusinessAPI
// and captured output
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mockAPI := newMockBusinessAPI()
	app := NewAppWithConfig(mockAPI, config.NewConfig())
	out := &bytes.Buffer{}
	app.SetOutput(out, &bytes.Buffer{})
	return app, mockAPI, out
}
