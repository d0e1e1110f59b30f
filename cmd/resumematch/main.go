// Package main is the resumematch command line: evaluate one resume, rank many,
// serve the HTTP API or run migrations.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/shared/config"
)

var rootCmd = &cobra.Command{
	Use:           "resumematch",
	Short:         "Score resumes against a job description",
	Long:          "resumematch scores PDF and DOCX resumes against a job description with text embeddings, lists matched and missing keywords, and writes ranking reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// buildApp is replaced in tests to avoid real model clients.
var buildApp = func(ctx context.Context, cfg config.Config) (*bootstrap.App, error) {
	return bootstrap.Build(ctx, cfg)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
