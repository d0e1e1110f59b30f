// Package embed turns text into vectors and scores resume/job pairs.
package embed

import (
	"context"
	"errors"
	"fmt"

	"resume-matcher/internal/match"
)

// Embedder produces a fixed-dimension vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// ErrNoEmbedder is returned when a Scorer has no embedder configured.
var ErrNoEmbedder = errors.New("embedding model not configured")

// Scorer computes the 0-100 semantic score of two texts.
type Scorer struct {
	Embedder Embedder
}

// NewScorer returns a Scorer bound to e.
func NewScorer(e Embedder) *Scorer {
	return &Scorer{Embedder: e}
}

// Score embeds both texts with the same model and returns cosine x 100
// rounded to two decimals.
func (s *Scorer) Score(ctx context.Context, resumeText, jdText string) (float64, error) {
	if s == nil || s.Embedder == nil {
		return 0, ErrNoEmbedder
	}
	a, err := s.Embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("embed resume: %w", err)
	}
	b, err := s.Embedder.Embed(ctx, jdText)
	if err != nil {
		return 0, fmt.Errorf("embed job description: %w", err)
	}
	sim, err := match.Cosine(a, b)
	if err != nil {
		return 0, err
	}
	return match.ScoreFromSimilarity(sim), nil
}
