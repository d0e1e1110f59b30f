// Package llm defines the text-completion client used for recruiter feedback.
package llm

import (
	"context"
	"errors"
)

// Client completes a single prompt and returns the model's text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("feedback model not configured")

// Disabled is used when no provider is configured.
type Disabled struct{}

// Complete returns ErrNotConfigured.
func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
