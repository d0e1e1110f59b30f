package evaluations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-matcher/internal/feedback"
	"resume-matcher/internal/match"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/shared/util"
)

// Scorer scores normalized resume text against normalized JD text.
type Scorer interface {
	Score(ctx context.Context, resumeText, jdText string) (float64, error)
}

// Service evaluates one resume against one job description.
type Service struct {
	Repo     Repo
	Extract  func(ctx context.Context, fileName string, data []byte) (string, error)
	Scorer   Scorer
	Feedback *feedback.Generator
	Now      func() time.Time
}

// Evaluate runs extract, normalize, score, explain, keyword match and
// optional feedback, then stores the result. Extraction faults wrap
// extract.ErrExtraction; embedding faults wrap ErrScoring.
func (s *Service) Evaluate(ctx context.Context, req Request) (Result, error) {
	if len(req.Data) == 0 || strings.TrimSpace(req.FileName) == "" || req.JobDescription == "" {
		return Result{}, ErrMissingInput
	}

	start := time.Now()
	metrics.IncEvaluationStarted()
	ev, err := s.evaluate(ctx, req)
	metrics.ObserveEvaluationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncEvaluationFailed()
		telemetry.Warn("evaluation failed", map[string]any{
			"file_name": util.BaseName(req.FileName),
			"error":     err.Error(),
		})
		return Result{}, err
	}
	metrics.IncEvaluationCompleted()
	return toResult(ev), nil
}

func (s *Service) evaluate(ctx context.Context, req Request) (Evaluation, error) {
	text, err := s.Extract(ctx, req.FileName, req.Data)
	if err != nil {
		return Evaluation{}, err
	}
	resume := match.Normalize(text)
	jd := match.Normalize(req.JobDescription)

	score, err := s.Scorer.Score(ctx, resume, jd)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrScoring, err)
	}
	matched, missing := match.MatchKeywords(resume, jd)

	var fb string
	if req.UseFeedback {
		fb = s.Feedback.Generate(ctx, resume, jd)
		if feedback.Failed(fb) {
			metrics.IncFeedbackFailed()
		}
	}

	ev := Evaluation{
		ID:             uuid.NewString(),
		FileName:       util.BaseName(req.FileName),
		JobDescription: req.JobDescription,
		Score:          score,
		Explanation:    match.Explain(score).Message(),
		Matched:        matched,
		Missing:        missing,
		Feedback:       fb,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, ev); err != nil {
		return Evaluation{}, fmt.Errorf("store evaluation: %w", err)
	}
	return ev, nil
}

// Get returns a stored evaluation.
func (s *Service) Get(ctx context.Context, id string) (Result, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Result{}, ErrNotFound
	}
	ev, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return toResult(ev), nil
}

// List returns stored evaluations newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Result, error) {
	evs, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(evs))
	for _, ev := range evs {
		out = append(out, toResult(ev))
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
