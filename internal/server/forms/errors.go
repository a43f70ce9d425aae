package forms

import "errors"

var (
	// ErrMissingDataModel is returned by Process when no data model was
	// supplied to bind the form to.
	ErrMissingDataModel = errors.New("missing data model")

	// ErrNotYetProcessed is returned by IsSuccess before Process has run.
	ErrNotYetProcessed = errors.New("form not yet processed")

	// ErrMalformedFormName is returned when an indexed form name does not
	// carry a parseable id suffix. This indicates a broken template or
	// client, never valid user input, and is treated as fatal.
	ErrMalformedFormName = errors.New("malformed form name")
)
