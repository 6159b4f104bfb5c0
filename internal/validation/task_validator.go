package validation

import (
	"smart-share-todo/internal/config"
	"smart-share-todo/internal/domain"
)

// TaskValidator checks drafts and patches before they reach the task store.
// Inputs are expected to be normalized already.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a task validator with cfg's limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTitle validates a task title
func (tv *TaskValidator) ValidateTitle(title string) error {
	ve := NewValidationError()
	tv.checkTitle(ve, title)
	return ve.OrNil()
}

// ValidateUserID validates the owner id passed to the store on initialization
func (tv *TaskValidator) ValidateUserID(id string) error {
	if !tv.validator.IsValidUserID(id) {
		ve := NewValidationError()
		ve.AddRequiredError("userId")
		return ve
	}
	return nil
}

// ValidateTaskID validates an id argument
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		ve := NewValidationError()
		ve.AddRequiredError("id")
		return ve
	}
	return nil
}

// ValidateDraft validates a new task. A status of "completed" together with
// completed=false is accepted since the status wins on creation; the reverse is not.
func (tv *TaskValidator) ValidateDraft(d domain.TaskDraft) error {
	ve := NewValidationError()

	tv.checkTitle(ve, d.Title)
	tv.checkDescription(ve, d.Description)
	if !d.Priority.Valid() {
		ve.AddInvalidValueError("priority", d.Priority, "must be one of low, medium, high")
	}
	if d.Status != "" && !d.Status.Valid() {
		ve.AddInvalidValueError("status", d.Status, "must be one of todo, in-progress, completed")
	}
	if d.Completed && d.Status != "" && d.Status != domain.StatusCompleted {
		ve.AddConflictError("completed", "status", d.Status)
	}
	tv.checkTags(ve, d.Tags)
	tv.checkRecipients(ve, d.SharedWith)

	return ve.OrNil()
}

// ValidatePatch validates a partial update
func (tv *TaskValidator) ValidatePatch(p domain.TaskPatch) error {
	ve := NewValidationError()

	if p.Title != nil {
		tv.checkTitle(ve, *p.Title)
	}
	if p.Description != nil {
		tv.checkDescription(ve, *p.Description)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		ve.AddInvalidValueError("priority", *p.Priority, "must be one of low, medium, high")
	}
	if p.Status != nil && !p.Status.Valid() {
		ve.AddInvalidValueError("status", *p.Status, "must be one of todo, in-progress, completed")
	}
	if p.Completed != nil && p.Status != nil && p.Status.Valid() &&
		*p.Completed != (*p.Status == domain.StatusCompleted) {
		ve.AddConflictError("completed", "status", *p.Status)
	}
	if p.DueDate != nil && p.ClearDueDate {
		ve.AddConflictError("dueDate", "clearDueDate", p.DueDate)
	}
	if p.Tags != nil {
		tv.checkTags(ve, p.Tags)
	}
	if p.SharedWith != nil {
		tv.checkRecipients(ve, p.SharedWith)
	}

	return ve.OrNil()
}

// ValidateRecipients validates share recipients on their own
func (tv *TaskValidator) ValidateRecipients(recipients []string) error {
	ve := NewValidationError()
	if len(recipients) == 0 {
		ve.AddRequiredError("sharedWith")
	}
	tv.checkRecipients(ve, recipients)
	return ve.OrNil()
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	limits := tv.validator.Limits()
	if !tv.validator.IsNonEmptyString(title) {
		ve.AddRequiredError("title")
		return
	}
	if !tv.validator.IsValidTitleLength(title) {
		ve.AddInvalidLengthError("title", title, limits.TitleMinLength, limits.TitleMaxLength)
	}
	if !tv.validator.HasNoControlCharacters(title) {
		ve.AddInvalidCharacterError("title", title)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	max := tv.validator.Limits().DescriptionMaxLength
	if max > 0 && !tv.validator.IsValidStringLength(description, 0, max) {
		ve.AddInvalidLengthError("description", description, 0, max)
	}
}

func (tv *TaskValidator) checkTags(ve *ValidationError, tags []string) {
	limits := tv.validator.Limits()
	if limits.MaxTags > 0 && len(tags) > limits.MaxTags {
		ve.AddTooManyError("tags", len(tags), limits.MaxTags)
	}
	for _, tag := range tags {
		if !tv.validator.IsValidStringLength(tag, 1, limits.TagMaxLength) {
			ve.AddInvalidLengthError("tags", tag, 1, limits.TagMaxLength)
		}
		if !tv.validator.IsValidTag(tag) {
			ve.AddInvalidCharacterError("tags", tag)
		}
	}
}

func (tv *TaskValidator) checkRecipients(ve *ValidationError, recipients []string) {
	limits := tv.validator.Limits()
	if limits.MaxRecipients > 0 && len(recipients) > limits.MaxRecipients {
		ve.AddTooManyError("sharedWith", len(recipients), limits.MaxRecipients)
	}
	for _, r := range recipients {
		if !tv.validator.IsValidRecipient(r) {
			ve.AddInvalidFormatError("sharedWith", r, "email address")
		}
	}
}
