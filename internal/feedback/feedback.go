// Package feedback asks a language model for recruiter-style commentary on a
// resume against a job description.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-matcher/internal/llm"
	"resume-matcher/internal/shared/telemetry"
)

const promptTemplate = "You are an expert recruiter. Evaluate the following resume for the given job description.\n" +
	"Give a match score (0-100), 2 strengths, and 2 improvement suggestions. dont include ** this symbols in the output \n\n" +
	"Job Description:\n%s\n\n" +
	"Resume:\n%s\n"

// FailurePrefix starts every degraded feedback string.
const FailurePrefix = "⚠️ Gemini feedback failed: "

// DefaultTimeout bounds a single feedback call.
const DefaultTimeout = 60 * time.Second

// Generator produces feedback text. It never returns an error: faults are
// folded into a warning string.
type Generator struct {
	LLM     llm.Client
	Timeout time.Duration
}

// NewGenerator returns a Generator bound to client.
func NewGenerator(client llm.Client, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{LLM: client, Timeout: timeout}
}

// BuildPrompt fills the recruiter prompt with the raw texts.
func BuildPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(promptTemplate, jdText, resumeText)
}

// Generate returns the model's feedback, or a string starting with
// FailurePrefix when the call cannot be completed.
func (g *Generator) Generate(ctx context.Context, resumeText, jdText string) string {
	if g == nil || g.LLM == nil {
		return FailurePrefix + llm.ErrNotConfigured.Error()
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.LLM.Complete(ctx, BuildPrompt(resumeText, jdText))
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		telemetry.Warn("feedback generation failed", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"error":       err.Error(),
		})
		return FailurePrefix + err.Error()
	}
	return text
}

// Failed reports whether text is a degraded feedback string.
func Failed(text string) bool {
	return strings.HasPrefix(text, FailurePrefix)
}
