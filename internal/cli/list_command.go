package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/services"
)

// ListOptions are the list command's flags
type ListOptions struct {
	Status   string
	Priority string
	Sort     string
	Format   string
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
	opts         ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the list command and binds its flags
func (c *ListCommand) Definition() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [search text]",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Long: `List tasks with optional filtering.

Search text matches task titles (case-insensitive partial matching).
Status filters: all, active, completed, overdue
Priority filters: all, low, medium, high
Sort orders: newest (default), oldest, due, priority, title

Examples:
  sst list                          # Everything
  sst list report                   # Titles containing "report"
  sst list --status overdue         # Open tasks past their due date
  sst list -s active -p high --sort due
  sst list --format json            # Machine readable output`,
	}

	flags := cmd.Flags()
	flags.StringVarP(&c.opts.Status, "status", "s", "", "Status filter: all, active, completed, overdue")
	flags.StringVarP(&c.opts.Priority, "priority", "p", "", "Priority filter: all, low, medium, high")
	flags.StringVar(&c.opts.Sort, "sort", "", "Sort order: newest, oldest, due, priority, title")
	flags.StringVarP(&c.opts.Format, "format", "f", "", "Output format: table, json, yaml, csv")
	return cmd
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	listOpts, format, err := c.parseOptions(args)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	list, err := businessAPI.ListTasks(ctx, listOpts)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	writer := NewTaskWriter(c.app.out, businessAPI.FormatDueDate, c.app.config.Display.TitleWidth)
	if err := writer.Write(format, list.Tasks); err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if format == FormatTable && list.Total > 0 {
		fmt.Fprintf(c.app.out, "\nShowing %d of %d (active %d, completed %d, overdue %d)\n",
			len(list.Tasks), list.Total, list.Counts.Active, list.Counts.Completed, list.Counts.Overdue)
	}
	return nil
}

// parseOptions validates the flags and joins the arguments into search text
func (c *ListCommand) parseOptions(args []string) (api.ListOptions, string, error) {
	var opts api.ListOptions

	status, err := domain.ParseStatusFilter(c.opts.Status)
	if err != nil {
		return opts, "", err
	}
	priority, err := domain.ParsePriorityFilter(c.opts.Priority)
	if err != nil {
		return opts, "", err
	}

	sort := services.SortByNewest
	if c.opts.Sort != "" {
		parsed, ok := services.ParseSortOrder(c.opts.Sort)
		if !ok {
			return opts, "", errors.NewInvalidInputError("sort", c.opts.Sort,
				"must be one of newest, oldest, due, priority, title")
		}
		sort = parsed
	}

	format := c.opts.Format
	if format == "" {
		format = c.app.config.Commands.ListDefaultFormat
	}
	format, err = ParseFormat(format)
	if err != nil {
		return opts, "", err
	}

	opts.Filter = domain.TaskFilter{
		Status:   status,
		Priority: priority,
		Search:   strings.TrimSpace(strings.Join(args, " ")),
	}
	opts.Sort = sort
	return opts, format, nil
}
