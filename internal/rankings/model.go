package rankings

import (
	"time"

	"resume-matcher/internal/ranking"
)

// Run is one stored ranking of many resumes against a job description.
type Run struct {
	ID             string
	JobDescription string
	Entries        []ranking.Entry
	CSVKey         string
	PDFKey         string
	CreatedAt      time.Time
}
