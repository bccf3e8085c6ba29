// Package extract pulls first-page plain text out of statement PDFs.
package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Veraticus/statement-sorter/internal/common"
)

// Extractor supplies the first-page text of a document.
type Extractor interface {
	FirstPageText(path string) (string, error)
}

// PDF extracts text with the ledongthuc/pdf reader. Only the first
// page is read; statement headers carry everything the rules need.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// FirstPageText returns the plain text of the document's first page.
// A document with no pages or no extractable text is reported as
// common.ErrNoText.
func (*PDF) FirstPageText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	if r.NumPage() < 1 {
		return "", common.ErrNoText
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", common.ErrNoText
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", common.ErrNoText
	}

	return text, nil
}
