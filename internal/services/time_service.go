package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"smart-share-todo/internal/config"
	"smart-share-todo/internal/errors"
)

var timeShorthandRegex = regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now        func() time.Time
	dateFormat string
}

// NewTimeService creates a TimeService on the wall clock
func NewTimeService(cfg *config.Config) TimeService {
	return NewTimeServiceWithClock(cfg, time.Now)
}

// NewTimeServiceWithClock creates a TimeService reading time from now
func NewTimeServiceWithClock(cfg *config.Config, now func() time.Time) TimeService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &timeServiceImpl{now: now, dateFormat: cfg.Time.DateFormat}
}

// Now returns the current time in UTC
func (t *timeServiceImpl) Now() time.Time {
	return t.now().UTC()
}

// ParseDueDate accepts a calendar date (midnight UTC), an RFC 3339 timestamp,
// or a shorthand offset from now such as "2h" or "3d".
func (t *timeServiceImpl) ParseDueDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, errors.NewInvalidInputError("due", input, "cannot be empty")
	}

	if d, err := time.ParseInLocation(t.dateFormat, input, time.UTC); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, input); err == nil {
		return d.UTC(), nil
	}
	if timeShorthandRegex.MatchString(input) {
		offset, err := t.ParseTimeShorthand(input)
		if err != nil {
			return time.Time{}, err
		}
		return t.Now().Add(offset), nil
	}

	return time.Time{}, errors.NewInvalidInputError("due", input,
		fmt.Sprintf("expected %s, RFC 3339, or an offset like 2h, 3d, 1w", t.dateFormat))
}

// ParseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func (t *timeServiceImpl) ParseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := timeShorthandRegex.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, errors.NewInvalidInputError("time", shorthand, "invalid time format")
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil || value <= 0 {
		return 0, errors.NewInvalidInputError("time", shorthand, "invalid number in time format")
	}

	unit := matches[2]
	switch unit {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "w":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "mo":
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	case "y":
		return time.Duration(value) * 365 * 24 * time.Hour, nil
	}
	return 0, errors.NewInvalidInputError("time", shorthand, "invalid time unit: "+unit)
}

// FormatDueDate renders a due date for display, either relative to now
// ("2 days from now") or in the configured date format. Nil renders as "-".
func (t *timeServiceImpl) FormatDueDate(due *time.Time, relative bool) string {
	if due == nil {
		return "-"
	}
	if relative {
		return humanize.RelTime(*due, t.Now(), "ago", "from now")
	}
	return due.UTC().Format(t.dateFormat)
}

// IsToday reports whether ts falls on the current UTC calendar day
func (t *timeServiceImpl) IsToday(ts time.Time) bool {
	y1, m1, d1 := ts.UTC().Date()
	y2, m2, d2 := t.Now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
