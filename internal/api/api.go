package api

import (
	"time"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
	"smart-share-todo/internal/services"
)

// ShortIDLength is how many characters of a task id the list view shows.
// Any unique prefix of at least one character is accepted as an id.
const ShortIDLength = 8

// ListOptions selects and orders the tasks returned by ListTasks
type ListOptions struct {
	Filter domain.TaskFilter
	Sort   services.SortOrder
}

// TaskList is a filtered view together with counts over the full list
type TaskList struct {
	Tasks  []domain.Task     `json:"tasks" yaml:"tasks"`
	Counts domain.TaskCounts `json:"counts" yaml:"counts"`
	Total  int               `json:"total" yaml:"total"`
}

// Options configures how New wires the services
type Options struct {
	Config *config.Config
	Sink   notify.Sink
	// Clock overrides time.Now, mainly for tests
	Clock func() time.Time
}

// NewServiceContainer builds every service over repo
func NewServiceContainer(repo sqlite.Repository, opts Options) *services.ServiceContainer {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	sink := opts.Sink
	if sink == nil {
		sink = notify.NopSink{}
	}

	var timeService services.TimeService
	if opts.Clock != nil {
		timeService = services.NewTimeServiceWithClock(cfg, opts.Clock)
	} else {
		timeService = services.NewTimeService(cfg)
	}
	filterService := services.NewFilterService()

	return &services.ServiceContainer{
		TimeService:      timeService,
		TaskService:      services.NewTaskServiceWithConfig(repo, sink, timeService, cfg),
		FilterService:    filterService,
		SessionService:   services.NewSessionService(repo, sink, cfg),
		ReportingService: services.NewReportingService(timeService, filterService),
	}
}

// New creates a BusinessAPI over repo
func New(repo sqlite.Repository, opts Options) BusinessAPI {
	relative := true
	if opts.Config != nil {
		relative = opts.Config.Display.RelativeDueDates
	}
	return NewBusinessAPIWithDisplay(NewServiceContainer(repo, opts), relative)
}

// ShortID abbreviates a task id for display
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
