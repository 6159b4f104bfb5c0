package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/services"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	app          *App
	errorHandler *ErrorHandler
	format       string
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the stats command and binds its flags
func (c *StatsCommand) Definition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize your task list",
		Long: `Show totals over the whole list: open, completed and overdue counts,
a breakdown by priority and status, the most used tags, and the next task due.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&c.format, "format", "f", FormatTable, "Output format: table, json, yaml")
	return cmd
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	format, err := ParseFormat(c.format)
	if err != nil {
		return c.errorHandler.Handle("summarize tasks", err)
	}
	if format == FormatCSV {
		return c.errorHandler.Handle("summarize tasks",
			errors.NewInvalidInputError("format", format, "stats support table, json and yaml"))
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("summarize tasks", err)
	}
	summary, err := businessAPI.Stats(ctx)
	if err != nil {
		return c.errorHandler.Handle("summarize tasks", err)
	}

	if format != FormatTable {
		writer := NewTaskWriter(c.app.out, nil, 0)
		return writer.WriteValue(format, summary)
	}
	return c.printSummary(summary, businessAPI.FormatDueDate)
}

func (c *StatsCommand) printSummary(summary *services.TaskSummary, formatDue func(due *time.Time) string) error {
	counts := summary.Counts
	tw := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total:\t%d\n", counts.All)
	fmt.Fprintf(tw, "Active:\t%d\n", counts.Active)
	fmt.Fprintf(tw, "Completed:\t%d\n", counts.Completed)
	fmt.Fprintf(tw, "Overdue:\t%d\n", counts.Overdue)
	fmt.Fprintf(tw, "Due today:\t%d\n", summary.DueToday)
	fmt.Fprintf(tw, "Shared:\t%d\n", summary.Shared)

	priorities := make([]string, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		priorities = append(priorities, fmt.Sprintf("%s %d", p, summary.ByPriority[p]))
	}
	fmt.Fprintf(tw, "By priority:\t%s\n", strings.Join(priorities, ", "))

	statuses := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		statuses = append(statuses, fmt.Sprintf("%s %d", s, summary.ByStatus[s]))
	}
	fmt.Fprintf(tw, "By status:\t%s\n", strings.Join(statuses, ", "))

	tags := make([]string, 0, len(summary.Tags))
	for _, tc := range summary.Tags {
		tags = append(tags, fmt.Sprintf("%s (%d)", tc.Tag, tc.Count))
	}
	fmt.Fprintf(tw, "Top tags:\t%s\n", orDash(strings.Join(tags, ", ")))

	if summary.NextDue != nil {
		fmt.Fprintf(tw, "Next due:\t%s (%s)\n", summary.NextDue.Title, formatDue(summary.NextDue.DueDate))
	} else {
		fmt.Fprintf(tw, "Next due:\t-\n")
	}
	return tw.Flush()
}
