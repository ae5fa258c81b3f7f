package absence

import "errors"

var (
	ErrAbsenceTypeNotFound    = errors.New("absence type not found")
	ErrAbsenceTypeLabelExists = errors.New("absence type with this label already exists")
)
