package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the toggle command
func (c *ToggleCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task complete, or reopen a completed one",
		Long: `Flip a task between completed and open. Reopened tasks go back to "todo".

Any unique prefix of the id works.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute runs the toggle command
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "toggle", "usage: sst toggle <id>")
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	task, err := businessAPI.ToggleTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}

	if task.Completed {
		fmt.Fprintf(c.app.out, "Completed: %s\n", task)
	} else {
		fmt.Fprintf(c.app.out, "Reopened: %s\n", task)
	}
	return nil
}
