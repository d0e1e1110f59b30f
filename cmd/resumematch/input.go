package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// readJobDescription treats value as a path when a regular file exists there,
// otherwise as the job description text itself.
func readJobDescription(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("--jd is required")
	}
	if info, err := os.Stat(value); err == nil && info.Mode().IsRegular() {
		raw, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file %s: %w", value, err)
		}
		return string(raw), nil
	}
	return value, nil
}

// runFileName inserts runID before the extension: report.csv -> report_<runID>.csv.
func runFileName(name, runID string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + runID + ext
}
