package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/notify"
	"smart-share-todo/internal/repository/sqlite"
)

// nopCloser keeps a shared in-memory repository open between commands
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type appFixture struct {
	app      *App
	repo     sqlite.Repository
	out      *bytes.Buffer
	notices  *bytes.Buffer
	connects int
}

// setupTestApp wires the real API over an in-memory store
func setupTestApp(t *testing.T) *appFixture {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	f := &appFixture{repo: repo, out: &bytes.Buffer{}, notices: &bytes.Buffer{}}
	f.app = NewAppWithConnector(config.NewConfig(), func(cfg *config.Config) (api.BusinessAPI, io.Closer, error) {
		f.connects++
		businessAPI := api.New(repo, api.Options{
			Config: cfg,
			Sink:   notify.NewWriterSink(f.notices),
			Clock:  func() time.Time { return mockNow },
		})
		return businessAPI, nopCloser{}, nil
	})
	f.app.SetOutput(f.out, &bytes.Buffer{})
	return f
}

func (f *appFixture) run(t *testing.T, args ...string) string {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.app.Run(context.Background(), args))
	return f.out.String()
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		errorMsg    string
	}{
		{name: "no args shows help", args: []string{}, expectError: false},
		{name: "unknown command", args: []string{"start"}, expectError: true, errorMsg: "unknown command"},
		{name: "list before login", args: []string{"list"}, expectError: true, errorMsg: "sign in required"},
		{name: "bad global flag value", args: []string{"--title-width", "3", "whoami"}, expectError: true, errorMsg: "title width"},
		{name: "whoami before login", args: []string{"whoami"}, expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestApp(t)
			err := f.app.Run(context.Background(), tt.args)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApp_TaskLifecycle(t *testing.T) {
	f := setupTestApp(t)

	output := f.run(t, "login", "github")
	assert.Contains(t, output, "Signed in as Demo User <demo@smartsharetodo.com>")
	assert.Contains(t, f.notices.String(), "Welcome to Smart Share Todo!: You've successfully signed in with github")

	// Seeded list
	output = f.run(t, "list")
	assert.Contains(t, output, "Welcome to Smart Share Todo!")
	assert.Contains(t, output, "Explore collaboration features")
	assert.Contains(t, output, "Showing 2 of 2")

	f.run(t, "add", "Quarterly", "report", "-p", "high", "--due", "2024-06-10", "--tags", "work")
	assert.Contains(t, f.notices.String(), `"Quarterly report" has been added to your list.`)

	list := f.listJSON(t)
	require.Len(t, list, 3)
	report := list[0]
	assert.Equal(t, "Quarterly report", report.Title)
	assert.Equal(t, domain.PriorityHigh, report.Priority)

	output = f.run(t, "list", "--status", "overdue")
	assert.Contains(t, output, "Quarterly report")
	assert.NotContains(t, output, "Explore collaboration features")

	f.run(t, "toggle", api.ShortID(report.ID))
	output = f.run(t, "list", "--status", "completed", "--format", "csv")
	rows, err := csv.NewReader(strings.NewReader(output)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Quarterly report", rows[1][1])
	assert.Equal(t, "completed", rows[1][3])
	assert.Equal(t, "true", rows[1][5])

	f.run(t, "edit", report.ID, "--status", "in-progress", "--clear-due")
	edited := f.findTask(t, report.ID)
	assert.False(t, edited.Completed)
	assert.Equal(t, domain.StatusInProgress, edited.Status)
	assert.Nil(t, edited.DueDate)
	assert.Equal(t, []string{"work"}, edited.Tags)

	f.run(t, "share", report.ID, "alice@example.com")
	assert.Equal(t, []string{"alice@example.com"}, f.findTask(t, report.ID).SharedWith)

	output = f.run(t, "show", report.ID)
	assert.Contains(t, output, "alice@example.com")
	assert.Contains(t, output, "in-progress")

	f.run(t, "delete", report.ID)
	assert.Len(t, f.listJSON(t), 2)
	assert.Contains(t, f.notices.String(), "Task deleted: \"Quarterly report\" has been removed.")

	f.run(t, "logout")
	err = f.app.Run(context.Background(), []string{"list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in required")
}

func TestApp_StatsYAML(t *testing.T) {
	f := setupTestApp(t)
	f.run(t, "login")

	output := f.run(t, "stats", "--format", "yaml")

	var summary struct {
		Counts domain.TaskCounts `yaml:"counts"`
		Tags   []struct {
			Tag   string `yaml:"tag"`
			Count int    `yaml:"count"`
		} `yaml:"tags"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(output), &summary))
	assert.Equal(t, 2, summary.Counts.All)
	assert.Equal(t, 2, summary.Counts.Active)
	assert.NotEmpty(t, summary.Tags)

	output = f.run(t, "stats")
	assert.Contains(t, output, "Total:")
	assert.Contains(t, output, "Next due:")
	assert.Contains(t, output, "Welcome to Smart Share Todo!")
}

func TestApp_ExportFormats(t *testing.T) {
	f := setupTestApp(t)
	f.run(t, "login")

	output := f.run(t, "export", "--format", "yaml")
	var tasks []domain.Task
	require.NoError(t, yaml.Unmarshal([]byte(output), &tasks))
	assert.Len(t, tasks, 2)

	err := f.app.Run(context.Background(), []string{"export", "--format", "table"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use sst list for a table")
}

func TestApp_ValidationMessages(t *testing.T) {
	f := setupTestApp(t)
	f.run(t, "login")

	err := f.app.Run(context.Background(), []string{"add", "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add task")

	err = f.app.Run(context.Background(), []string{"--title-max-length", "5", "add", "much too long"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add task")
}

func TestApp_ReconnectsPerCommand(t *testing.T) {
	f := setupTestApp(t)
	f.run(t, "login")
	f.run(t, "list")
	assert.Equal(t, 2, f.connects)
}

func TestNewAppWithDefaultRepository(t *testing.T) {
	t.Setenv("SST_ENV", "production")
	cfg := config.NewConfig()
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "nested")

	app := NewAppWithDefaultRepository(cfg)
	out := &bytes.Buffer{}
	app.SetOutput(out, &bytes.Buffer{})

	require.NoError(t, app.Run(context.Background(), []string{"whoami"}))
	assert.Contains(t, out.String(), "Not signed in")
	assert.FileExists(t, cfg.GetDatabasePath())
}

func (f *appFixture) listJSON(t *testing.T) []domain.Task {
	t.Helper()
	var tasks []domain.Task
	output := f.run(t, "list", "--format", "json")
	require.NoError(t, json.Unmarshal([]byte(output), &tasks))
	return tasks
}

func (f *appFixture) findTask(t *testing.T, id string) domain.Task {
	t.Helper()
	for _, task := range f.listJSON(t) {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found", id)
	return domain.Task{}
}
