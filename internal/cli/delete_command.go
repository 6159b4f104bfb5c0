package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the delete command
func (c *DeleteCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Long: `Delete one or more tasks. This operation cannot be undone.

Any unique prefix of an id works.`,
		Args: cobra.MinimumNArgs(1),
	}
}

// Execute runs the delete command. Every id is attempted; the first failure
// is returned after the rest have run.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: sst delete <id>...")
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	var firstErr error
	for _, id := range args {
		task, err := businessAPI.DeleteTask(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = c.errorHandler.Handle("delete task", err)
			}
			continue
		}
		fmt.Fprintf(c.app.out, "Deleted task: %s\n", task)
	}
	return firstErr
}
