package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"smart-share-todo/internal/api"
	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

var csvHeader = []string{
	"id", "title", "description", "status", "priority", "completed",
	"dueDate", "tags", "sharedWith", "createdAt", "updatedAt",
}

// TaskWriter renders task lists in the supported output formats
type TaskWriter struct {
	out        io.Writer
	formatDue  func(due *time.Time) string
	titleWidth int
}

// NewTaskWriter creates a TaskWriter. formatDue renders the table's due
// column; a nil formatDue prints RFC 3339.
func NewTaskWriter(out io.Writer, formatDue func(due *time.Time) string, titleWidth int) *TaskWriter {
	if formatDue == nil {
		formatDue = func(due *time.Time) string {
			if due == nil {
				return "-"
			}
			return due.UTC().Format(time.RFC3339)
		}
	}
	return &TaskWriter{out: out, formatDue: formatDue, titleWidth: titleWidth}
}

// ParseFormat validates a user-supplied output format
func ParseFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if !config.IsListFormat(format) {
		return "", errors.NewInvalidInputError("format", format,
			"must be one of "+strings.Join(config.ListFormats, ", "))
	}
	return format, nil
}

// Write renders tasks in format
func (w *TaskWriter) Write(format string, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	switch format {
	case FormatTable:
		return w.writeTable(tasks)
	case FormatCSV:
		return w.writeCSV(tasks)
	case FormatJSON, FormatYAML:
		return w.WriteValue(format, tasks)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

// WriteValue renders any value as JSON or YAML
func (w *TaskWriter) WriteValue(format string, v interface{}) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		return errors.NewInvalidInputError("format", format, "only json and yaml are supported here")
	}
}

func (w *TaskWriter) writeTable(tasks []domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w.out, "No tasks found")
		return err
	}

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tSTATUS\tTITLE\tDUE\tTAGS\tSHARED")
	for _, task := range tasks {
		done := "[ ]"
		if task.Completed {
			done = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			api.ShortID(task.ID),
			done,
			task.Priority,
			task.Status,
			truncate(task.Title, w.titleWidth),
			w.formatDue(task.DueDate),
			strings.Join(task.Tags, ","),
			len(task.SharedWith),
		)
	}
	return tw.Flush()
}

func (w *TaskWriter) writeCSV(tasks []domain.Task) error {
	writer := csv.NewWriter(w.out)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		var due string
		if task.DueDate != nil {
			due = task.DueDate.UTC().Format(time.RFC3339)
		}
		row := []string{
			task.ID,
			task.Title,
			task.Description,
			string(task.Status),
			string(task.Priority),
			fmt.Sprintf("%t", task.Completed),
			due,
			strings.Join(task.Tags, ";"),
			strings.Join(task.SharedWith, ";"),
			task.CreatedAt.UTC().Format(time.RFC3339),
			task.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
