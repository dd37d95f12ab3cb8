// Package pdftext turns statement PDFs into plain text, one string per page.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the extracted text of a statement.
type Document struct {
	Pages []string
}

// Empty reports whether no page produced any text. Scanned statements land
// here; callers treat them as having no transactions.
func (d Document) Empty() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}

	return true
}

// FirstPage returns the text of page 1, or "" for an empty document.
func (d Document) FirstPage() string {
	if len(d.Pages) == 0 {
		return ""
	}

	return d.Pages[0]
}

// Mentions reports whether page 1 contains name, ignoring case.
func (d Document) Mentions(name string) bool {
	return strings.Contains(strings.ToLower(d.FirstPage()), strings.ToLower(name))
}

// Extractor reads documents from disk.
type Extractor struct{}

func (Extractor) Extract(path string) (Document, error) {
	return Extract(path)
}

// Extract reads the text of every page at path. A file that cannot be opened
// is an error; a readable file with no text layer is an empty Document.
func Extract(path string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed on %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		doc.Pages = append(doc.Pages, pageText(r.Page(i)))
	}

	return doc, nil
}

func pageText(page pdf.Page) string {
	if page.V.IsNull() {
		return ""
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		text, err := page.GetPlainText(nil)
		if err != nil {
			return ""
		}

		return text
	}

	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}

		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
