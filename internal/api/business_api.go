package api

import (
	"context"
	"strings"
	"time"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/logging"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
	"smart-share-todo/internal/services"
)

// BusinessAPI is the surface the CLI talks to. Task operations load the
// signed-in user's tasks on first use and fail with an unauthenticated
// error when nobody is signed in.
type BusinessAPI interface {
	// ========== Session ==========

	// Login signs in with provider and loads that user's tasks
	Login(ctx context.Context, provider string) (*domain.User, error)

	// Logout clears the user and the stored tasks
	Logout(ctx context.Context) error

	// WhoAmI returns the signed-in user
	WhoAmI(ctx context.Context) (*domain.User, error)

	// ========== Task Workflows ==========

	AddTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)

	// EditTask applies patch to the task whose id starts with id
	EditTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	ToggleTask(ctx context.Context, id string) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
	ShareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error)
	UnshareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error)

	// ========== Query Operations ==========

	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks filters and optionally sorts the list. Counts always cover
	// the full list.
	ListTasks(ctx context.Context, opts ListOptions) (*TaskList, error)

	// Stats summarizes the full list
	Stats(ctx context.Context) (*services.TaskSummary, error)

	// ========== Input Helpers ==========

	// ParseDueDate accepts a date, an RFC 3339 timestamp or a shorthand
	// offset from now such as "2d"
	ParseDueDate(input string) (time.Time, error)

	// FormatDueDate renders a due date for display
	FormatDueDate(due *time.Time) string
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	relative bool
}

// NewBusinessAPI creates a BusinessAPI with default wiring
func NewBusinessAPI(repo sqlite.Repository, sink notify.Sink, cfg *config.Config) BusinessAPI {
	return New(repo, Options{Config: cfg, Sink: sink})
}

// NewBusinessAPIWithServices creates a BusinessAPI over prebuilt services
func NewBusinessAPIWithServices(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{services: container, relative: true}
}

// NewBusinessAPIWithDisplay is NewBusinessAPIWithServices with control over
// relative due date rendering
func NewBusinessAPIWithDisplay(container *services.ServiceContainer, relativeDueDates bool) BusinessAPI {
	return &businessAPIImpl{services: container, relative: relativeDueDates}
}

// ========== Session ==========

func (b *businessAPIImpl) Login(ctx context.Context, provider string) (*domain.User, error) {
	user, err := b.services.SessionService.SignIn(ctx, provider)
	if err != nil {
		return nil, err
	}

	// A previous session in this process may still hold another user's list
	b.services.TaskService.Release()
	if err := b.services.TaskService.Initialize(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (b *businessAPIImpl) Logout(ctx context.Context) error {
	if err := b.services.SessionService.SignOut(ctx); err != nil {
		return err
	}
	b.services.TaskService.Release()
	return nil
}

func (b *businessAPIImpl) WhoAmI(ctx context.Context) (*domain.User, error) {
	user, err := b.services.SessionService.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewUnauthenticatedError("whoami")
	}
	return user, nil
}

// ensureStore loads the signed-in user's tasks once per process
func (b *businessAPIImpl) ensureStore(ctx context.Context, operation string) error {
	if b.services.TaskService.Ready() {
		return nil
	}

	user, err := b.services.SessionService.Current(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NewUnauthenticatedError(operation)
	}

	logging.Debugf("loading tasks for user %s", user.ID)
	return b.services.TaskService.Initialize(ctx, user.ID)
}

// resolveID maps a full id or a unique id prefix to a task id
func (b *businessAPIImpl) resolveID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidInputError("id", id, "task id is required")
	}
	if _, ok := b.services.TaskService.Get(id); ok {
		return id, nil
	}

	var matches []string
	for _, task := range b.services.TaskService.List() {
		if strings.HasPrefix(task.ID, id) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", id)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", id, "prefix matches more than one task").
			WithContext("matches", len(matches))
	}
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if err := b.ensureStore(ctx, "add task"); err != nil {
		return nil, err
	}

	task, err := b.services.TaskService.Add(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *businessAPIImpl) EditTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, errors.NewInvalidInputError("changes", "", "nothing to update")
	}
	return b.mutate(ctx, "edit task", id, func(fullID string) (domain.Task, bool, error) {
		return b.services.TaskService.Update(ctx, fullID, patch)
	})
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return b.mutate(ctx, "toggle task", id, func(fullID string) (domain.Task, bool, error) {
		return b.services.TaskService.ToggleComplete(ctx, fullID)
	})
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return b.mutate(ctx, "delete task", id, func(fullID string) (domain.Task, bool, error) {
		task, ok := b.services.TaskService.Get(fullID)
		if !ok {
			return domain.Task{}, false, nil
		}
		removed, err := b.services.TaskService.Remove(ctx, fullID)
		return task, removed, err
	})
}

func (b *businessAPIImpl) ShareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error) {
	return b.mutate(ctx, "share task", id, func(fullID string) (domain.Task, bool, error) {
		return b.services.TaskService.Share(ctx, fullID, recipients...)
	})
}

func (b *businessAPIImpl) UnshareTask(ctx context.Context, id string, recipients []string) (*domain.Task, error) {
	return b.mutate(ctx, "unshare task", id, func(fullID string) (domain.Task, bool, error) {
		return b.services.TaskService.Unshare(ctx, fullID, recipients...)
	})
}

// mutate resolves id and runs op. A task that disappears between the
// lookup and op is reported as not found.
func (b *businessAPIImpl) mutate(ctx context.Context, operation, id string, op func(fullID string) (domain.Task, bool, error)) (*domain.Task, error) {
	if err := b.ensureStore(ctx, operation); err != nil {
		return nil, err
	}

	fullID, err := b.resolveID(id)
	if err != nil {
		return nil, err
	}

	task, ok, err := op(fullID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &task, nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := b.ensureStore(ctx, "get task"); err != nil {
		return nil, err
	}

	fullID, err := b.resolveID(id)
	if err != nil {
		return nil, err
	}
	task, ok := b.services.TaskService.Get(fullID)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &task, nil
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, opts ListOptions) (*TaskList, error) {
	if err := b.ensureStore(ctx, "list tasks"); err != nil {
		return nil, err
	}

	now := b.services.TimeService.Now()
	all := b.services.TaskService.List()
	filtered := b.services.FilterService.Filter(all, opts.Filter, now)
	if opts.Sort != "" && opts.Sort != services.SortByNewest {
		filtered = b.services.FilterService.Sort(filtered, opts.Sort)
	}

	return &TaskList{
		Tasks:  filtered,
		Counts: b.services.FilterService.Counts(all, now),
		Total:  len(all),
	}, nil
}

func (b *businessAPIImpl) Stats(ctx context.Context) (*services.TaskSummary, error) {
	if err := b.ensureStore(ctx, "stats"); err != nil {
		return nil, err
	}
	now := b.services.TimeService.Now()
	return b.services.ReportingService.Summarize(b.services.TaskService.List(), now), nil
}

// ========== Input Helpers ==========

func (b *businessAPIImpl) ParseDueDate(input string) (time.Time, error) {
	return b.services.TimeService.ParseDueDate(input)
}

func (b *businessAPIImpl) FormatDueDate(due *time.Time) string {
	return b.services.TimeService.FormatDueDate(due, b.relative)
}
