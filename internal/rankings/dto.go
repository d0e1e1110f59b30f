package rankings

import (
	"time"

	"resume-matcher/internal/ranking"
)

// EntryResult is one row of a ranking as returned by the API.
type EntryResult struct {
	Rank      int     `json:"rank"`
	Resume    string  `json:"resume"`
	Score     float64 `json:"score"`
	ScoreText string  `json:"scoreText"`
	Error     string  `json:"error,omitempty"`
}

// Result is the outward-facing representation of a ranking run.
type Result struct {
	ID             string        `json:"runId"`
	JobDescription string        `json:"jobDescription"`
	Display        string        `json:"display"`
	Entries        []EntryResult `json:"entries"`
	CSVURL         string        `json:"csvUrl"`
	PDFURL         string        `json:"pdfUrl"`
	CSVKey         string        `json:"csvKey"`
	PDFKey         string        `json:"pdfKey"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ReportURL is the API path that streams one of a run's reports.
func ReportURL(runID, kind string) string {
	return "/api/v1/rankings/" + runID + "/report." + kind
}

func toResult(run Run) Result {
	entries := make([]EntryResult, 0, len(run.Entries))
	for i, e := range run.Entries {
		entries = append(entries, EntryResult{
			Rank:      i + 1,
			Resume:    e.Resume,
			Score:     e.Score,
			ScoreText: e.ScoreText(),
			Error:     e.Err,
		})
	}
	return Result{
		ID:             run.ID,
		JobDescription: run.JobDescription,
		Display:        ranking.Display(run.Entries),
		Entries:        entries,
		CSVURL:         ReportURL(run.ID, "csv"),
		PDFURL:         ReportURL(run.ID, "pdf"),
		CSVKey:         run.CSVKey,
		PDFKey:         run.PDFKey,
		CreatedAt:      run.CreatedAt,
	}
}
