package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/ranking"
	"resume-matcher/internal/report"
	"resume-matcher/internal/shared/config"
)

var rankCmd = &cobra.Command{
	Use:   "rank [flags] resume...",
	Short: "Rank many resumes against a job description",
	Long:  "Scores every resume against the job description, prints the ranked list and writes CSV and PDF reports named with a fresh run ID.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRank,
}

var (
	rankJD  string
	rankOut string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJD, "jd", "j", "", "Job description text, or a path to a file containing it (required)")
	rankCmd.Flags().StringVarP(&rankOut, "out", "o", ".", "Directory for the CSV and PDF reports")

	if err := rankCmd.MarkFlagRequired("jd"); err != nil {
		panic(fmt.Sprintf("failed to mark jd flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	jd, err := readJobDescription(rankJD)
	if err != nil {
		return err
	}
	inputs := make([]ranking.Input, 0, len(args))
	for _, path := range args {
		inputs = append(inputs, ranking.Input{Name: path})
	}

	app, err := buildApp(cmd.Context(), config.Load())
	if err != nil {
		return err
	}
	defer app.Close()

	// Files are read inside the ranker so an unreadable path only fails its own entry.
	ranker := *app.Ranker
	ranker.Extract = func(ctx context.Context, path string, _ []byte) (string, error) {
		return extract.ExtractFile(ctx, path)
	}
	entries, err := ranker.Rank(cmd.Context(), jd, inputs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(rankOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", rankOut, err)
	}
	runID := uuid.NewString()
	csvPath := filepath.Join(rankOut, runFileName(report.CSVFileName, runID))
	pdfPath := filepath.Join(rankOut, runFileName(report.PDFFileName, runID))
	if err := writeReport(csvPath, func(f *os.File) error { return report.CSV(f, entries) }); err != nil {
		return err
	}
	if err := writeReport(pdfPath, func(f *os.File) error { return report.PDF(f, entries) }); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ranking.Display(entries))
	fmt.Fprintf(out, "\nCSV report: %s\nPDF report: %s\n", csvPath, pdfPath)
	return nil
}

func writeReport(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
