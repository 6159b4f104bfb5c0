package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"smart-share-todo/internal/config"
)

// Loose address check: something@something.tld with no spaces.
var recipientRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator provides common validation utilities
type Validator struct {
	limits config.ValidationConfig
}

// NewValidator creates a validator using the default limits
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a validator using cfg's limits. A nil cfg uses defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Validator{limits: cfg.Validation}
}

// Limits returns the limits the validator enforces
func (v *Validator) Limits() config.ValidationConfig {
	return v.limits
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks the trimmed rune count is within [min, max]
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTitleLength checks a title against the configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, v.limits.TitleMinLength, v.limits.TitleMaxLength)
}

// HasNoControlCharacters rejects newlines, tabs and other control runes
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsValidTag checks a single tag. Commas are the list separator on input.
func (v *Validator) IsValidTag(tag string) bool {
	return v.HasNoControlCharacters(tag) && !strings.Contains(tag, ",")
}

// IsValidRecipient checks that a share recipient looks like an email address
func (v *Validator) IsValidRecipient(recipient string) bool {
	return recipientRegex.MatchString(recipient)
}

// IsValidUserID checks a session user id
func (v *Validator) IsValidUserID(id string) bool {
	return v.IsNonEmptyString(id) && v.HasNoControlCharacters(id)
}
