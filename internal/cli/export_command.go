package cli

import (
	"context"

	"github.com/spf13/cobra"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	format       string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Definition describes the export command and binds its flags
func (c *ExportCommand) Definition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full task list",
		Long: `Write every task to stdout in the chosen format.

Supported formats:
  json - the stored layout, one array of tasks (default)
  yaml - the same fields as YAML
  csv  - one row per task; tags and share lists are ";" separated

Example:
  sst export --format csv > tasks.csv`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&c.format, "format", "f", FormatJSON, "Output format: json, yaml, csv")
	return cmd
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format, err := ParseFormat(c.format)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	if format == FormatTable {
		return c.errorHandler.Handle("export tasks",
			errors.NewInvalidInputError("format", format, "use sst list for a table"))
	}

	businessAPI, err := c.app.API()
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	list, err := businessAPI.ListTasks(ctx, api.ListOptions{})
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	writer := NewTaskWriter(c.app.out, nil, 0)
	if err := writer.Write(format, list.Tasks); err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}
	return nil
}
