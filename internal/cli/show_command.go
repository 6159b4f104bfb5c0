package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/errors"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the show command
func (c *ShowCommand) Definition() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
	}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: sst show <id>")
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}
	task, err := businessAPI.GetTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}

	timeFormat := c.app.config.Time.DisplayFormat
	tw := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", task.Description)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", task.Priority)
	fmt.Fprintf(tw, "Due:\t%s\n", businessAPI.FormatDueDate(task.DueDate))
	fmt.Fprintf(tw, "Tags:\t%s\n", orDash(strings.Join(task.Tags, ", ")))
	fmt.Fprintf(tw, "Shared with:\t%s\n", orDash(strings.Join(task.SharedWith, ", ")))
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt.Format(timeFormat))
	fmt.Fprintf(tw, "Updated:\t%s\n", task.UpdatedAt.Format(timeFormat))
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
