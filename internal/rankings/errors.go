package rankings

import "errors"

var (
	// ErrNotFound is returned when a ranking run does not exist.
	ErrNotFound = errors.New("ranking run not found")
	// ErrMissingInput is returned when no files or no job description are given.
	ErrMissingInput = errors.New("missing input")
)
