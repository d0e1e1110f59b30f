package rankings

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-matcher/internal/ranking"
	"resume-matcher/internal/report"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/storage/object"
	"resume-matcher/internal/shared/telemetry"
)

// Report kinds served for a run.
const (
	KindCSV = "csv"
	KindPDF = "pdf"
)

// Service ranks uploads, writes the reports and records the run.
type Service struct {
	Repo    Repo
	Ranker  *ranking.Ranker
	Reports *report.Writer
	Store   object.ObjectStore
	Now     func() time.Time
	NewID   func() string
}

// Rank scores every input against jd. Per-file faults become error entries;
// the returned error covers missing input, cancellation, report and storage
// faults only.
func (s *Service) Rank(ctx context.Context, jd string, inputs []ranking.Input) (Result, error) {
	if len(inputs) == 0 || jd == "" {
		return Result{}, ErrMissingInput
	}

	runID := s.newID()
	start := time.Now()

	entries, err := s.Ranker.Rank(ctx, jd, inputs)
	if err != nil {
		return Result{}, fmt.Errorf("rank run=%s: %w", runID, err)
	}

	failed := 0
	for _, e := range entries {
		if e.IsError() {
			failed++
		}
	}
	metrics.ObserveRanking(len(entries), failed, metrics.SinceMillis(start))

	files, err := s.Reports.Write(ctx, runID, entries)
	if err != nil {
		return Result{}, fmt.Errorf("write reports run=%s: %w", runID, err)
	}

	run := Run{
		ID:             runID,
		JobDescription: jd,
		Entries:        entries,
		CSVKey:         files.CSVKey,
		PDFKey:         files.PDFKey,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, run); err != nil {
		return Result{}, fmt.Errorf("store run=%s: %w", runID, err)
	}

	telemetry.Info("ranking.complete", map[string]any{
		"run_id": runID,
		"files":  len(entries),
		"failed": failed,
	})
	return toResult(run), nil
}

// Get returns a stored run.
func (s *Service) Get(ctx context.Context, id string) (Result, error) {
	run, err := s.get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return toResult(run), nil
}

// List returns stored runs newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Result, error) {
	runs, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(runs))
	for _, run := range runs {
		out = append(out, toResult(run))
	}
	return out, nil
}

// OpenReport opens the csv or pdf report of a run. Callers close the reader.
func (s *Service) OpenReport(ctx context.Context, id, kind string) (io.ReadCloser, error) {
	run, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var key string
	switch kind {
	case KindCSV:
		key = run.CSVKey
	case KindPDF:
		key = run.PDFKey
	default:
		return nil, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open report key=%s: %w", key, err)
	}
	return rc, nil
}

func (s *Service) get(ctx context.Context, id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
