package evaluations

import "time"

// Evaluation is one stored single-resume evaluation.
type Evaluation struct {
	ID             string
	FileName       string
	JobDescription string
	Score          float64
	Explanation    string
	Matched        []string
	Missing        []string
	Feedback       string
	CreatedAt      time.Time
}

// Request is the input to Service.Evaluate.
type Request struct {
	FileName       string
	Data           []byte
	JobDescription string
	UseFeedback    bool
}
