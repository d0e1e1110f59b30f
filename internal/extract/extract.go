package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnsupportedFormat is returned as the extracted text for any file that is
// neither .pdf nor .docx. It is text, not an error, and flows downstream.
const UnsupportedFormat = "Unsupported file format"

// ErrExtraction wraps any fault raised by the PDF or DOCX libraries.
var ErrExtraction = errors.New("extraction failed")

// Supported reports whether the file name carries an extension with a real extractor.
func Supported(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".docx":
		return true
	default:
		return false
	}
}

// ExtractFile reads the file at path and extracts its text.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !Supported(path) {
		return UnsupportedFormat, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract text path=%s: %w", path, err)
	}
	return ExtractBytes(ctx, path, data)
}

// ExtractBytes extracts text from an in-memory payload, dispatching on the
// extension of fileName.
func ExtractBytes(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	default:
		return UnsupportedFormat, nil
	}
	if err != nil {
		return "", fmt.Errorf("extract text file=%s: %w: %w", filepath.Base(fileName), ErrExtraction, err)
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent())
}

// paragraphText flattens WordprocessingML into one line per body paragraph.
// Text boxes (txbxContent) are skipped, so their nested paragraphs never
// split the paragraph that anchors them.
func paragraphText(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
		inRun      bool
		inPara     bool
		boxDepth   int
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" {
				boxDepth++
			}
			if boxDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "r":
				inRun = true
			case "t":
				inText = true
			case "tab":
				// Tab stops in paragraph properties share the element name.
				if inRun {
					current.WriteString("\t")
				}
			case "br", "cr":
				if inRun {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "txbxContent" {
				boxDepth--
				continue
			}
			if boxDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				inRun = false
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
				}
				inPara = false
			}
		case xml.CharData:
			if inText && boxDepth == 0 {
				current.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
