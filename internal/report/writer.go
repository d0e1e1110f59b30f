package report

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"resume-matcher/internal/ranking"
	"resume-matcher/internal/shared/storage/object"
)

const keyPrefix = "reports"

// Files holds the object-store keys of one run's reports.
type Files struct {
	CSVKey string `json:"csvKey"`
	PDFKey string `json:"pdfKey"`
}

// Writer stores rendered reports under a per-run prefix.
type Writer struct {
	Store object.ObjectStore
}

// NewWriter returns a Writer backed by store.
func NewWriter(store object.ObjectStore) *Writer {
	return &Writer{Store: store}
}

// KeysFor returns the report keys for runID without writing anything.
func KeysFor(runID string) Files {
	return Files{
		CSVKey: path.Join(keyPrefix, runID, CSVFileName),
		PDFKey: path.Join(keyPrefix, runID, PDFFileName),
	}
}

// Write renders both reports and stores them. Concurrent runs never share keys.
func (w *Writer) Write(ctx context.Context, runID string, entries []ranking.Entry) (Files, error) {
	if runID == "" {
		return Files{}, fmt.Errorf("report run id is required")
	}
	files := KeysFor(runID)

	var csvBuf bytes.Buffer
	if err := CSV(&csvBuf, entries); err != nil {
		return Files{}, err
	}
	if _, err := w.Store.Put(ctx, files.CSVKey, CSVContentType, &csvBuf); err != nil {
		return Files{}, fmt.Errorf("store csv report: %w", err)
	}

	var pdfBuf bytes.Buffer
	if err := PDF(&pdfBuf, entries); err != nil {
		return Files{}, err
	}
	if _, err := w.Store.Put(ctx, files.PDFKey, PDFContentType, &pdfBuf); err != nil {
		return Files{}, fmt.Errorf("store pdf report: %w", err)
	}
	return files, nil
}
