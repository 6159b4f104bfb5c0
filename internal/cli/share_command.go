package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/errors"
)

// ShareCommand handles the share command
type ShareCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShareCommand creates a new share command handler
func NewShareCommand(app *App) *ShareCommand {
	return &ShareCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the share command
func (c *ShareCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "share <id> <email>...",
		Short: "Share a task with team members",
		Long: `Add people to a task's share list. Sharing labels the task; nothing is sent.

Examples:
  sst share 1a2b3c4d alice@example.com bob@example.com
  sst share 1a2b3c4d alice@example.com,bob@example.com`,
		Args: cobra.MinimumNArgs(2),
	}
}

// Execute runs the share command
func (c *ShareCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "share", "usage: sst share <id> <email>...")
	}

	recipients, err := parseRecipients(args[1:])
	if err != nil {
		return c.errorHandler.Handle("share task", err)
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("share task", err)
	}
	task, err := businessAPI.ShareTask(ctx, args[0], recipients)
	if err != nil {
		return c.errorHandler.Handle("share task", err)
	}

	fmt.Fprintf(c.app.out, "Shared %q with %s\n", task.Title, strings.Join(task.SharedWith, ", "))
	return nil
}

// UnshareCommand handles the unshare command
type UnshareCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUnshareCommand creates a new unshare command handler
func NewUnshareCommand(app *App) *UnshareCommand {
	return &UnshareCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the unshare command
func (c *UnshareCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <id> <email>...",
		Short: "Remove people from a task's share list",
		Args:  cobra.MinimumNArgs(2),
	}
}

// Execute runs the unshare command
func (c *UnshareCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "unshare", "usage: sst unshare <id> <email>...")
	}

	recipients, err := parseRecipients(args[1:])
	if err != nil {
		return c.errorHandler.Handle("unshare task", err)
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("unshare task", err)
	}
	task, err := businessAPI.UnshareTask(ctx, args[0], recipients)
	if err != nil {
		return c.errorHandler.Handle("unshare task", err)
	}

	if len(task.SharedWith) == 0 {
		fmt.Fprintf(c.app.out, "%q is no longer shared\n", task.Title)
		return nil
	}
	fmt.Fprintf(c.app.out, "%q is shared with %s\n", task.Title, strings.Join(task.SharedWith, ", "))
	return nil
}
