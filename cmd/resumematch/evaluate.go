package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-matcher/internal/evaluations"
	"resume-matcher/internal/shared/config"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one resume against a job description",
	Long:  "Extracts the resume text, scores it against the job description, lists matched and missing keywords and optionally asks the feedback model for recruiter notes.",
	RunE:  runEvaluate,
}

var (
	evaluateResume   string
	evaluateJD       string
	evaluateFeedback bool
	evaluateJSON     bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateResume, "resume", "r", "", "Path to the resume (.pdf or .docx) (required)")
	evaluateCmd.Flags().StringVarP(&evaluateJD, "jd", "j", "", "Job description text, or a path to a file containing it (required)")
	evaluateCmd.Flags().BoolVar(&evaluateFeedback, "feedback", false, "Ask the feedback model for recruiter notes")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print the result as JSON")

	if err := evaluateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("jd"); err != nil {
		panic(fmt.Sprintf("failed to mark jd flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	jd, err := readJobDescription(evaluateJD)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(evaluateResume)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", evaluateResume, err)
	}

	app, err := buildApp(cmd.Context(), config.Load())
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.EvaluationsService.Evaluate(cmd.Context(), evaluations.Request{
		FileName:       evaluateResume,
		Data:           data,
		JobDescription: jd,
		UseFeedback:    evaluateFeedback,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if evaluateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printEvaluation(out, res)
	return nil
}

func printEvaluation(w io.Writer, res evaluations.Result) {
	fmt.Fprintf(w, "Match Score: %s\n", res.ScoreText)
	fmt.Fprintln(w, res.Explanation)
	fmt.Fprintf(w, "Matched Keywords: %s\n", joinOrNone(res.Matched))
	fmt.Fprintf(w, "Missing Keywords: %s\n", joinOrNone(res.Missing))
	if res.Feedback != "" {
		fmt.Fprintf(w, "\nAI Feedback:\n%s\n", res.Feedback)
	}
}

func joinOrNone(words []string) string {
	if len(words) == 0 {
		return "(none)"
	}
	return strings.Join(words, ", ")
}
