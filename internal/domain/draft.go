package domain

import (
	"strings"
	"time"
)

// TaskDraft carries the caller-supplied fields of a new task. The store assigns
// the id, timestamps and owner.
type TaskDraft struct {
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	SharedWith  []string
	Tags        []string
	Status      Status
}

// Normalize trims the title and cleans the list fields.
func (d TaskDraft) Normalize() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Tags = NormalizeList(d.Tags)
	d.SharedWith = NormalizeRecipients(d.SharedWith)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// TaskPatch is a partial update. Nil fields are left unchanged; a nil slice
// leaves the list alone while an empty one clears it.
type TaskPatch struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
	Status       *Status
	Tags         []string
	SharedWith   []string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.Status == nil && p.Tags == nil && p.SharedWith == nil
}

// Normalize trims text fields and cleans the list fields, keeping nil lists nil.
func (p TaskPatch) Normalize() TaskPatch {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	if p.Tags != nil {
		p.Tags = NormalizeList(p.Tags)
	}
	if p.SharedWith != nil {
		p.SharedWith = NormalizeRecipients(p.SharedWith)
	}
	return p
}

// Apply merges the patch into t and returns the result. Completion and
// status are copied as given; reconciling them is the caller's job.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		out.DueDate = &due
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, p.Tags...)
	}
	if p.SharedWith != nil {
		out.SharedWith = append([]string{}, p.SharedWith...)
	}
	return out
}

// NormalizeList trims entries and drops empty ones. The result is never nil.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// NormalizeRecipients is NormalizeList with duplicates removed, keeping first occurrence.
func NormalizeRecipients(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range NormalizeList(items) {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// SplitList splits a comma separated form value into a normalized list.
func SplitList(value string) []string {
	return NormalizeList(strings.Split(value, ","))
}
