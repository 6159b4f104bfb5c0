package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
)

// EditOptions are the edit command's flags. Only flags given on the command
// line are applied.
type EditOptions struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Due         string
	ClearDue    bool
	Tags        string
	Share       string
	Done        bool
}

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         EditOptions
	cmd          *cobra.Command
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the edit command and binds its flags
func (c *EditCommand) Definition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change the fields named by flags and leave everything else alone.

Setting --status also sets completion, and --done also sets the status.
An empty --tags or --share clears the list.

Examples:
  sst edit 1a2b3c4d --title "Final report" --priority high
  sst edit 1a2b3c4d --status in-progress
  sst edit 1a2b3c4d --clear-due --tags ""`,
		Args: cobra.ExactArgs(1),
	}

	flags := cmd.Flags()
	flags.StringVar(&c.opts.Title, "title", "", "New title")
	flags.StringVarP(&c.opts.Description, "description", "d", "", "New description")
	flags.StringVarP(&c.opts.Priority, "priority", "p", "", "Priority: low, medium or high")
	flags.StringVar(&c.opts.Status, "status", "", "Status: todo, in-progress or completed")
	flags.StringVar(&c.opts.Due, "due", "", "Due date: YYYY-MM-DD, RFC 3339, or an offset like 2d")
	flags.BoolVar(&c.opts.ClearDue, "clear-due", false, "Remove the due date")
	flags.StringVarP(&c.opts.Tags, "tags", "t", "", "Comma separated tags, replacing the current ones")
	flags.StringVar(&c.opts.Share, "share", "", "Comma separated emails, replacing the current ones")
	flags.BoolVar(&c.opts.Done, "done", false, "Mark completed (--done=false reopens)")
	c.cmd = cmd
	return cmd
}

// changed reports whether a flag was given on the command line
func (c *EditCommand) changed(name string) bool {
	return c.cmd != nil && c.cmd.Flags().Changed(name)
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: sst edit <id> [flags]")
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	patch, err := c.buildPatch(businessAPI.ParseDueDate)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	task, err := businessAPI.EditTask(ctx, args[0], patch)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated task: %s\n", task)
	return nil
}

// buildPatch turns the changed flags into a patch
func (c *EditCommand) buildPatch(parseDue dueParser) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if c.changed("title") {
		title := c.opts.Title
		patch.Title = &title
	}
	if c.changed("description") {
		description := c.opts.Description
		patch.Description = &description
	}
	if c.changed("priority") {
		priority, err := domain.ParsePriority(c.opts.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &priority
	}
	if c.changed("status") {
		status, err := domain.ParseStatus(c.opts.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	if c.changed("done") {
		done := c.opts.Done
		patch.Completed = &done
	}
	if c.changed("due") {
		due, err := parseDue(c.opts.Due)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &due
	}
	if c.changed("clear-due") {
		patch.ClearDueDate = c.opts.ClearDue
	}
	if c.changed("tags") {
		patch.Tags = domain.SplitList(c.opts.Tags)
	}
	if c.changed("share") {
		patch.SharedWith = domain.SplitList(c.opts.Share)
	}
	return patch, nil
}
