package cli

import (
	"time"

	"smart-share-todo/internal/domain"
	"smart-share-todo/internal/errors"
)

// dueParser turns user input into a due date
type dueParser func(input string) (time.Time, error)

// parseRecipients splits a comma separated recipient flag. A set flag that
// names nobody is an error.
func parseRecipients(values []string) ([]string, error) {
	var recipients []string
	for _, v := range values {
		recipients = append(recipients, domain.SplitList(v)...)
	}
	if len(recipients) == 0 {
		return nil, errors.NewInvalidInputError("recipients", "", "at least one email is required")
	}
	return recipients, nil
}
