package evaluations

import (
	"time"

	"resume-matcher/internal/match"
)

// Result is the outward-facing representation of an evaluation.
type Result struct {
	ID          string    `json:"evaluationId"`
	FileName    string    `json:"fileName"`
	Score       float64   `json:"score"`
	ScoreText   string    `json:"scoreText"`
	Tier        string    `json:"tier"`
	Explanation string    `json:"explanation"`
	Matched     []string  `json:"matched"`
	Missing     []string  `json:"missing"`
	Feedback    string    `json:"feedback"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResult(ev Evaluation) Result {
	matched := ev.Matched
	if matched == nil {
		matched = []string{}
	}
	missing := ev.Missing
	if missing == nil {
		missing = []string{}
	}
	return Result{
		ID:          ev.ID,
		FileName:    ev.FileName,
		Score:       ev.Score,
		ScoreText:   match.ScoreText(ev.Score),
		Tier:        string(match.Explain(ev.Score)),
		Explanation: ev.Explanation,
		Matched:     matched,
		Missing:     missing,
		Feedback:    ev.Feedback,
		CreatedAt:   ev.CreatedAt,
	}
}
