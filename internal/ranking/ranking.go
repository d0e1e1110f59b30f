// Package ranking scores many resumes against one job description.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"resume-matcher/internal/match"
	"resume-matcher/internal/shared/util"
)

// Input is one uploaded resume.
type Input struct {
	Name string
	Data []byte
}

// Entry is one ranked resume. Err is set when the file could not be scored.
type Entry struct {
	Resume string  `json:"resume"`
	Score  float64 `json:"score"`
	Err    string  `json:"error,omitempty"`
}

// IsError reports whether the entry records a failure.
func (e Entry) IsError() bool {
	return e.Err != ""
}

// ScoreText is the score column as shown to users: the number, or
// "Error: <detail>".
func (e Entry) ScoreText() string {
	if e.IsError() {
		return "Error: " + e.Err
	}
	return match.FormatScore(e.Score)
}

// SortKey orders entries; failures rank as -1.
func (e Entry) SortKey() float64 {
	if e.IsError() {
		return -1
	}
	return e.Score
}

// ExtractFunc turns an uploaded file into raw text.
type ExtractFunc func(ctx context.Context, name string, data []byte) (string, error)

// TextScorer scores normalized resume text against normalized JD text.
type TextScorer interface {
	Score(ctx context.Context, resumeText, jdText string) (float64, error)
}

// Ranker runs extract, normalize and score for each input, up to
// Concurrency files at a time.
type Ranker struct {
	Extract     ExtractFunc
	Scorer      TextScorer
	Concurrency int
}

// Rank returns one entry per input, sorted by descending score with failures
// last. Per-file faults are recorded in the entry. The error is non-nil only
// when ctx is done.
func (r *Ranker) Rank(ctx context.Context, jdText string, inputs []Input) ([]Entry, error) {
	jd := match.Normalize(jdText)
	entries := make([]Entry, len(inputs))

	limit := r.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			entries[i] = r.rankOne(gctx, jd, in)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	Sort(entries)
	return entries, nil
}

func (r *Ranker) rankOne(ctx context.Context, jd string, in Input) (entry Entry) {
	entry.Resume = util.BaseName(in.Name)
	defer func() {
		if rec := recover(); rec != nil {
			entry.Score = 0
			entry.Err = fmt.Sprint(rec)
		}
	}()

	if r.Extract == nil || r.Scorer == nil {
		entry.Err = "ranker not configured"
		return entry
	}
	text, err := r.Extract(ctx, in.Name, in.Data)
	if err != nil {
		entry.Err = err.Error()
		return entry
	}
	score, err := r.Scorer.Score(ctx, match.Normalize(text), jd)
	if err != nil {
		entry.Err = err.Error()
		return entry
	}
	entry.Score = score
	return entry
}

// Sort orders entries by SortKey descending. Ties keep input order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortKey() > entries[j].SortKey()
	})
}

// Display renders "1. name - score" lines.
func Display(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, e.Resume, e.ScoreText()))
	}
	return strings.Join(lines, "\n")
}
