package models

import "errors"

var (
	// ErrInvalidOrdering is returned when an update timestamp would predate
	// the entity's creation. This is a programming error, not user input.
	ErrInvalidOrdering = errors.New("updated_at predates created_at")

	// ErrOwnershipAlreadySet is returned on a second author assignment.
	// Task ownership is permanent once set.
	ErrOwnershipAlreadySet = errors.New("author already set")
)
