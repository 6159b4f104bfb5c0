package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
)

var fixedNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

// testClock is a settable clock for time-dependent tests
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingRepo wraps a real repository and fails writes on demand
type failingRepo struct {
	sqlite.Repository
	failSet bool
}

func (f *failingRepo) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.NewStorageError("set "+key, stderrors.New("disk full"))
	}
	return f.Repository.Set(ctx, key, value)
}

func setupRepo(t *testing.T) sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

type taskFixture struct {
	repo     sqlite.Repository
	clock    *testClock
	recorder *notify.Recorder
	service  TaskService
}

func newTaskFixture(t *testing.T, repo sqlite.Repository) *taskFixture {
	t.Helper()
	clock := newTestClock(fixedNow)
	recorder := &notify.Recorder{}
	timeService := NewTimeServiceWithClock(config.NewConfig(), clock.Now)
	return &taskFixture{
		repo:     repo,
		clock:    clock,
		recorder: recorder,
		service:  NewTaskService(repo, recorder, timeService),
	}
}

// setupTaskService returns an initialized store for "user-1" with the seed
// tasks and no recorded notifications
func setupTaskService(t *testing.T) *taskFixture {
	t.Helper()
	f := newTaskFixture(t, setupRepo(t))
	require.NoError(t, f.service.Initialize(context.Background(), "user-1"))
	f.recorder.Reset()
	return f
}
