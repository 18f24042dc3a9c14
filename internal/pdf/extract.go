// Package pdf extracts plain text from uploaded resume documents.
package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls plain text out of a document.
type Extractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
}

// TextExtractor reads PDF files.
type TextExtractor struct{}

// NewTextExtractor creates a PDF text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the concatenated plain text of all pages.
func (e *TextExtractor) Extract(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	text, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	return buf.String(), nil
}
