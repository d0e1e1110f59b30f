// Package report renders ranking results as CSV and PDF documents.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"resume-matcher/internal/ranking"
)

const (
	Title          = "Resume Ranking Report"
	CSVFileName    = "resume_ranking_report.csv"
	PDFFileName    = "resume_ranking_report.pdf"
	CSVContentType = "text/csv; charset=utf-8"
	PDFContentType = "application/pdf"
	resumeColWidth = 80
	scoreColWidth  = 30
	rowHeight      = 10
	titleWidth     = 200
	titleFontSize  = 12
	tableFontSize  = 10
	titleGapHeight = 10
	cellBorder     = "1"
)

// Header is the column row shared by both formats.
var Header = []string{"Resume", "Score"}

// Table is the content the PDF renders: a title, a header row and one row per
// entry.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Layout builds the table for entries.
func Layout(entries []ranking.Entry) Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Resume, e.ScoreText()})
	}
	return Table{Title: Title, Header: append([]string(nil), Header...), Rows: rows}
}

// CSV writes a Resume,Score header and one row per entry.
func CSV(w io.Writer, entries []ranking.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Resume, e.ScoreText()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF writes the ranking table as an A4 document. Rows continue onto new
// pages as needed.
func PDF(w io.Writer, entries []ranking.Entry) error {
	pdf, err := render(entries)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func render(entries []ranking.Entry) (*fpdf.Fpdf, error) {
	table := Layout(entries)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(table.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "", titleFontSize)
	pdf.CellFormat(titleWidth, rowHeight, table.Title, "", 1, "C", false, 0, "")
	pdf.Ln(titleGapHeight)

	pdf.SetFont("Arial", "", tableFontSize)
	row := func(cells []string) {
		pdf.CellFormat(resumeColWidth, rowHeight, tr(cells[0]), cellBorder, 0, "", false, 0, "")
		pdf.CellFormat(scoreColWidth, rowHeight, tr(cells[1]), cellBorder, 0, "", false, 0, "")
		pdf.Ln(-1)
	}
	row(table.Header)
	for _, r := range table.Rows {
		row(r)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}
