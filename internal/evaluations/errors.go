package evaluations

import "errors"

var (
	// ErrNotFound is returned when an evaluation does not exist.
	ErrNotFound = errors.New("evaluation not found")
	// ErrMissingInput is returned when the resume file or job description is empty.
	ErrMissingInput = errors.New("missing input")
	// ErrScoring wraps embedding failures.
	ErrScoring = errors.New("scoring failed")
)
