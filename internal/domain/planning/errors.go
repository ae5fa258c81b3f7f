package planning

import "errors"

var (
	ErrNotMonday     = errors.New("date must be a Monday")
	ErrNoRecipients  = errors.New("no employee with an email address")
	ErrEmptyDocument = errors.New("nothing to export for this period")
)
