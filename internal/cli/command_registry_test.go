package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedCommands = []string{
	"login", "logout", "whoami", "add", "edit", "toggle", "delete",
	"share", "unshare", "show", "list", "stats", "export",
}

func TestNewCommandRegistry(t *testing.T) {
	app, _, _ := setupTestAppWithMockBusinessAPI(t)

	registry := NewCommandRegistry(app)

	assert.NotNil(t, registry)
	assert.Equal(t, expectedCommands, registry.Names())
}

func TestCommandRegistry_Execute(t *testing.T) {
	app, mockAPI, out := setupTestAppWithMockBusinessAPI(t)
	registry := app.registry
	ctx := context.Background()

	t.Run("executes add command", func(t *testing.T) {
		err := registry.Execute(ctx, "add", []string{"Test", "Task"})
		require.NoError(t, err)

		require.Len(t, mockAPI.tasks, 1)
		assert.Equal(t, "Test Task", mockAPI.tasks[0].Title)
		assert.Contains(t, out.String(), "Added task task-1: Test Task")
	})

	t.Run("executes toggle command", func(t *testing.T) {
		err := registry.Execute(ctx, "toggle", []string{"task-1"})
		require.NoError(t, err)
		assert.True(t, mockAPI.tasks[0].Completed)
	})

	t.Run("executes list command", func(t *testing.T) {
		err := registry.Execute(ctx, "list", []string{})
		assert.NoError(t, err)
	})

	t.Run("handles unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "unknown", []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("handles empty command", func(t *testing.T) {
		err := registry.Execute(ctx, "", []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})
}

func TestCommandRegistry_GetUsage(t *testing.T) {
	app, _, _ := setupTestAppWithMockBusinessAPI(t)

	usage := app.registry.GetUsage()
	assert.NotEmpty(t, usage)

	for _, name := range expectedCommands {
		assert.Contains(t, usage, name)
	}
}

func TestCommandRegistry_ErrorPropagation(t *testing.T) {
	app, _, _ := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()

	t.Run("propagates usage errors", func(t *testing.T) {
		err := app.registry.Execute(ctx, "add", []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "usage: sst add")
	})

	t.Run("propagates not found errors", func(t *testing.T) {
		err := app.registry.Execute(ctx, "delete", []string{"missing"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "task not found: missing")
	})
}
