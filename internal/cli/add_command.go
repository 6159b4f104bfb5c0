package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
)

// AddOptions are the add command's flags
type AddOptions struct {
	Description string
	Priority    string
	Status      string
	Due         string
	Tags        string
	Share       string
	Done        bool
}

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the add command and binds its flags
func (c *AddCommand) Definition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task to the top of your list",
		Long: `Add a task. Every word after "add" becomes the title.

Examples:
  sst add Buy milk
  sst add "Quarterly report" -p high --due 2024-07-01 --tags work,finance
  sst add "Plan offsite" --share alice@example.com,bob@example.com`,
		Args: cobra.MinimumNArgs(1),
	}

	flags := cmd.Flags()
	flags.StringVarP(&c.opts.Description, "description", "d", "", "Task description")
	flags.StringVarP(&c.opts.Priority, "priority", "p", "", "Priority: low, medium or high (default medium)")
	flags.StringVar(&c.opts.Status, "status", "", "Status: todo, in-progress or completed")
	flags.StringVar(&c.opts.Due, "due", "", "Due date: YYYY-MM-DD, RFC 3339, or an offset like 2d")
	flags.StringVarP(&c.opts.Tags, "tags", "t", "", "Comma separated tags")
	flags.StringVar(&c.opts.Share, "share", "", "Comma separated emails to share with")
	flags.BoolVar(&c.opts.Done, "done", false, "Create the task already completed")
	return cmd
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: sst add \"your task\"")
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	draft, err := c.buildDraft(strings.Join(args, " "), businessAPI.ParseDueDate)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	task, err := businessAPI.AddTask(ctx, draft)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %s: %s\n", api.ShortID(task.ID), task.Title)
	return nil
}

// buildDraft turns the flags into a draft
func (c *AddCommand) buildDraft(title string, parseDue dueParser) (domain.TaskDraft, error) {
	draft := domain.TaskDraft{
		Title:       title,
		Description: c.opts.Description,
		Completed:   c.opts.Done,
		Tags:        domain.SplitList(c.opts.Tags),
		SharedWith:  domain.SplitList(c.opts.Share),
	}

	if c.opts.Priority != "" {
		priority, err := domain.ParsePriority(c.opts.Priority)
		if err != nil {
			return draft, err
		}
		draft.Priority = priority
	}
	if c.opts.Status != "" {
		status, err := domain.ParseStatus(c.opts.Status)
		if err != nil {
			return draft, err
		}
		draft.Status = status
	}
	if c.opts.Due != "" {
		due, err := parseDue(c.opts.Due)
		if err != nil {
			return draft, err
		}
		draft.DueDate = &due
	}
	return draft, nil
}
