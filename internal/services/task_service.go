package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/logging"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
	"smart-share-todo/internal/validation"
)

// taskServiceImpl implements the TaskService interface. It keeps the
// authoritative list in memory, newest first, and mirrors it to the "tasks" key.
type taskServiceImpl struct {
	repo          sqlite.Repository
	sink          notify.Sink
	timeService   TimeService
	mapper        *domain.SnapshotMapper
	taskValidator *validation.TaskValidator
	cfg           *config.Config
	newID         func() string

	mu     sync.Mutex
	tasks  []domain.Task
	userID string
	ready  bool
}

// NewTaskService creates a TaskService with default configuration
func NewTaskService(repo sqlite.Repository, sink notify.Sink, timeService TimeService) TaskService {
	return NewTaskServiceWithConfig(repo, sink, timeService, config.NewConfig())
}

// NewTaskServiceWithConfig creates a TaskService using cfg's validation and seed settings
func NewTaskServiceWithConfig(repo sqlite.Repository, sink notify.Sink, timeService TimeService, cfg *config.Config) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		sink:          notify.Safe(sink),
		timeService:   timeService,
		mapper:        domain.NewSnapshotMapper(),
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		cfg:           cfg,
		newID:         uuid.NewString,
	}
}

// Initialize loads the stored list for userID, seeding demo tasks when none
// exists or the stored value cannot be decoded. Calling it again reloads.
func (t *taskServiceImpl) Initialize(ctx context.Context, userID string) error {
	if err := t.taskValidator.ValidateUserID(userID); err != nil {
		return errors.NewValidationError("invalid user", err)
	}

	tasks, err := t.load(ctx, userID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.tasks = tasks
	t.userID = userID
	t.ready = true
	t.mu.Unlock()

	logging.Debugf("task store ready for user %s with %d tasks", userID, len(tasks))
	return nil
}

func (t *taskServiceImpl) load(ctx context.Context, userID string) ([]domain.Task, error) {
	raw, err := t.repo.Get(ctx, domain.TasksKey)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		logging.Debugln("no stored tasks, seeding demo data")
		return t.seed(ctx, userID)
	}

	tasks, err := t.mapper.DecodeTasks(raw)
	if err != nil {
		logging.Debugf("stored tasks unreadable, reseeding: %v", err)
		return t.seed(ctx, userID)
	}
	return tasks, nil
}

func (t *taskServiceImpl) seed(ctx context.Context, userID string) ([]domain.Task, error) {
	now := t.timeService.Now()
	due := now.Add(t.cfg.Session.SeedDueIn)

	tasks := []domain.Task{
		{
			ID:          t.newID(),
			Title:       "Welcome to Smart Share Todo!",
			Description: "This is your first task. Click to edit or mark as complete.",
			Priority:    domain.PriorityHigh,
			DueDate:     &due,
			CreatedAt:   now,
			UpdatedAt:   now,
			UserID:      userID,
			SharedWith:  []string{},
			Tags:        []string{"welcome", "demo"},
			Status:      domain.StatusTodo,
		},
		{
			ID:          t.newID(),
			Title:       "Explore collaboration features",
			Description: "Try sharing tasks with team members for better productivity.",
			Priority:    domain.PriorityMedium,
			CreatedAt:   now,
			UpdatedAt:   now,
			UserID:      userID,
			SharedWith:  []string{},
			Tags:        []string{"collaboration"},
			Status:      domain.StatusTodo,
		},
	}

	if err := t.persist(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// persist overwrites the stored snapshot with tasks
func (t *taskServiceImpl) persist(ctx context.Context, tasks []domain.Task) error {
	raw, err := t.mapper.EncodeTasks(tasks)
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}
	return t.repo.Set(ctx, domain.TasksKey, raw)
}

// Ready reports whether Initialize has completed for the current session
func (t *taskServiceImpl) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

// Release drops the in-memory list at session end. Stored data is untouched.
func (t *taskServiceImpl) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = nil
	t.userID = ""
	t.ready = false
}

// Add creates a task from draft and puts it at the front of the list
func (t *taskServiceImpl) Add(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	draft = draft.Normalize()
	if err := t.taskValidator.ValidateDraft(draft); err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task", err)
	}

	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		return domain.Task{}, errors.NewNotReadyError("add task")
	}

	now := t.timeService.Now()
	task := domain.Task{
		ID:          t.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   draft.Completed,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      t.userID,
		SharedWith:  draft.SharedWith,
		Tags:        draft.Tags,
		Status:      draft.Status,
	}
	if task.Status == "" {
		task.Status = domain.StatusFor(task.Completed)
	} else {
		task.Completed = task.Status == domain.StatusCompleted
	}
	task = task.Clone()

	updated := make([]domain.Task, 0, len(t.tasks)+1)
	updated = append(updated, task)
	updated = append(updated, t.tasks...)
	if err := t.persist(ctx, updated); err != nil {
		t.mu.Unlock()
		return domain.Task{}, err
	}
	t.tasks = updated
	t.mu.Unlock()

	t.sink.Notify(notify.Notification{
		Title:       "Task created successfully!",
		Description: fmt.Sprintf("%q has been added to your list.", task.Title),
		Severity:    notify.SeverityDefault,
	})
	return task.Clone(), nil
}

// Update merges patch into the task with id. Setting only status derives
// completed, setting only completed derives status.
func (t *taskServiceImpl) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, bool, error) {
	patch = patch.Normalize()
	if err := t.taskValidator.ValidatePatch(patch); err != nil {
		return domain.Task{}, false, errors.NewValidationError("invalid update", err)
	}
	return t.updateWith(ctx, id, "update task", func(domain.Task) (domain.TaskPatch, error) {
		return patch, nil
	})
}

// updateWith builds a patch from the current task under the lock, applies it,
// persists, then notifies.
func (t *taskServiceImpl) updateWith(ctx context.Context, id, operation string, build func(current domain.Task) (domain.TaskPatch, error)) (domain.Task, bool, error) {
	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		return domain.Task{}, false, errors.NewNotReadyError(operation)
	}

	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		logging.Debugf("%s: no task with id %q", operation, id)
		return domain.Task{}, false, nil
	}

	current := t.tasks[idx]
	patch, err := build(current)
	if err != nil {
		t.mu.Unlock()
		return domain.Task{}, false, err
	}

	next := reconcile(current, patch, patch.Apply(current))
	next.UpdatedAt = t.timeService.Now()

	updated := domain.CloneTasks(t.tasks)
	updated[idx] = next
	if err := t.persist(ctx, updated); err != nil {
		t.mu.Unlock()
		return domain.Task{}, false, err
	}
	t.tasks = updated
	t.mu.Unlock()

	t.sink.Notify(notify.Notification{
		Title:       "Task updated successfully!",
		Description: "Your changes have been saved.",
		Severity:    notify.SeverityDefault,
	})
	return next.Clone(), true, nil
}

// reconcile restores completed == (status == completed) after a merge.
// The patch has already been checked for a contradictory pair.
func reconcile(before domain.Task, patch domain.TaskPatch, after domain.Task) domain.Task {
	switch {
	case patch.Status != nil && patch.Completed == nil:
		after.Completed = after.Status == domain.StatusCompleted
	case patch.Completed != nil && patch.Status == nil:
		if after.Completed {
			after.Status = domain.StatusCompleted
		} else if before.Status == domain.StatusCompleted {
			after.Status = domain.StatusTodo
		}
	}
	return after
}

// Remove deletes the task with id
func (t *taskServiceImpl) Remove(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		return false, errors.NewNotReadyError("remove task")
	}

	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		logging.Debugf("remove task: no task with id %q", id)
		return false, nil
	}

	removed := t.tasks[idx]
	updated := make([]domain.Task, 0, len(t.tasks)-1)
	updated = append(updated, t.tasks[:idx]...)
	updated = append(updated, t.tasks[idx+1:]...)
	if err := t.persist(ctx, updated); err != nil {
		t.mu.Unlock()
		return false, err
	}
	t.tasks = updated
	t.mu.Unlock()

	t.sink.Notify(notify.Notification{
		Title:       "Task deleted",
		Description: fmt.Sprintf("%q has been removed.", removed.Title),
		Severity:    notify.SeverityDefault,
	})
	return true, nil
}

// ToggleComplete flips completed and sets status to match
func (t *taskServiceImpl) ToggleComplete(ctx context.Context, id string) (domain.Task, bool, error) {
	return t.updateWith(ctx, id, "toggle task", func(current domain.Task) (domain.TaskPatch, error) {
		completed := !current.Completed
		status := domain.StatusFor(completed)
		return domain.TaskPatch{Completed: &completed, Status: &status}, nil
	})
}

// Share adds recipients to the task's share list. Existing recipients are kept once.
func (t *taskServiceImpl) Share(ctx context.Context, id string, recipients ...string) (domain.Task, bool, error) {
	recipients = domain.NormalizeRecipients(recipients)
	if err := t.taskValidator.ValidateRecipients(recipients); err != nil {
		return domain.Task{}, false, errors.NewValidationError("invalid recipients", err)
	}
	return t.updateWith(ctx, id, "share task", func(current domain.Task) (domain.TaskPatch, error) {
		merged := domain.NormalizeRecipients(append(append([]string{}, current.SharedWith...), recipients...))
		if err := t.taskValidator.ValidatePatch(domain.TaskPatch{SharedWith: merged}); err != nil {
			return domain.TaskPatch{}, errors.NewValidationError("invalid recipients", err)
		}
		return domain.TaskPatch{SharedWith: merged}, nil
	})
}

// Unshare removes recipients from the task's share list
func (t *taskServiceImpl) Unshare(ctx context.Context, id string, recipients ...string) (domain.Task, bool, error) {
	recipients = domain.NormalizeRecipients(recipients)
	if len(recipients) == 0 {
		ve := validation.NewValidationError()
		ve.AddRequiredError("sharedWith")
		return domain.Task{}, false, errors.NewValidationError("invalid recipients", ve)
	}

	drop := make(map[string]bool, len(recipients))
	for _, r := range recipients {
		drop[r] = true
	}
	return t.updateWith(ctx, id, "unshare task", func(current domain.Task) (domain.TaskPatch, error) {
		kept := make([]string, 0, len(current.SharedWith))
		for _, r := range current.SharedWith {
			if !drop[r] {
				kept = append(kept, r)
			}
		}
		return domain.TaskPatch{SharedWith: kept}, nil
	})
}

// Get returns a copy of the task with id
func (t *taskServiceImpl) Get(id string) (domain.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx := t.indexOf(id); idx >= 0 {
		return t.tasks[idx].Clone(), true
	}
	return domain.Task{}, false
}

// List returns a copy of the current list, newest first
func (t *taskServiceImpl) List() []domain.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.CloneTasks(t.tasks)
}

// indexOf must be called with mu held
func (t *taskServiceImpl) indexOf(id string) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
