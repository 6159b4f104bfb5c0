package services

import (
	"context"
	"time"

	"smart-share-todo/internal/domain"
)

// SortOrder selects an explicit ordering for a listed view. The store's own
// order is newest first.
type SortOrder string

const (
	SortByNewest   SortOrder = "newest" // store order, left untouched
	SortByOldest   SortOrder = "oldest"
	SortByDueDate  SortOrder = "due"      // soonest first, undated last
	SortByPriority SortOrder = "priority" // high first
	SortByTitle    SortOrder = "title"
)

// SortOrders lists the accepted sort orders.
var SortOrders = []SortOrder{SortByNewest, SortByOldest, SortByDueDate, SortByPriority, SortByTitle}

// TaskSummary is the aggregate view shown by the stats command
type TaskSummary struct {
	Counts     domain.TaskCounts       `json:"counts" yaml:"counts"`
	ByPriority map[domain.Priority]int `json:"byPriority" yaml:"byPriority"`
	ByStatus   map[domain.Status]int   `json:"byStatus" yaml:"byStatus"`
	Tags       []TagCount              `json:"tags" yaml:"tags"`
	Shared     int                     `json:"shared" yaml:"shared"`
	DueToday   int                     `json:"dueToday" yaml:"dueToday"`
	NextDue    *domain.Task            `json:"nextDue,omitempty" yaml:"nextDue,omitempty"`
}

// TagCount is how many tasks carry a tag
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// TimeService owns the clock and due date parsing and formatting
type TimeService interface {
	Now() time.Time
	ParseDueDate(input string) (time.Time, error)
	ParseTimeShorthand(shorthand string) (time.Duration, error)
	FormatDueDate(due *time.Time, relative bool) string
	IsToday(t time.Time) bool
}

// TaskService is the task store for one signed-in user. Every mutation
// persists the full list before it returns.
type TaskService interface {
	// Lifecycle
	Initialize(ctx context.Context, userID string) error
	Ready() bool
	Release()

	// Mutations. A false bool means no task had the given id.
	Add(ctx context.Context, draft domain.TaskDraft) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	ToggleComplete(ctx context.Context, id string) (domain.Task, bool, error)
	Share(ctx context.Context, id string, recipients ...string) (domain.Task, bool, error)
	Unshare(ctx context.Context, id string, recipients ...string) (domain.Task, bool, error)

	// Reads return copies.
	Get(id string) (domain.Task, bool)
	List() []domain.Task
}

// FilterService derives views from a task list without side effects
type FilterService interface {
	Matches(task domain.Task, filter domain.TaskFilter, now time.Time) bool
	Filter(tasks []domain.Task, filter domain.TaskFilter, now time.Time) []domain.Task
	Counts(tasks []domain.Task, now time.Time) domain.TaskCounts
	Sort(tasks []domain.Task, order SortOrder) []domain.Task
}

// SessionService is the mock sign-in provider
type SessionService interface {
	Current(ctx context.Context) (*domain.User, error)
	SignIn(ctx context.Context, provider string) (*domain.User, error)
	SignOut(ctx context.Context) error
}

// ReportingService aggregates task lists for the stats view
type ReportingService interface {
	Summarize(tasks []domain.Task, now time.Time) *TaskSummary
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	FilterService    FilterService
	SessionService   SessionService
	ReportingService ReportingService
}
