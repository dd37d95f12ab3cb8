package pdftext_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/pdftext"
)

func TestExtract(t *testing.T) {
	doc, err := pdftext.Extract(filepath.Join("testdata", "statement.pdf"))
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.False(t, doc.Empty())
	assert.True(t, doc.Mentions("chase"))
	assert.True(t, doc.Mentions("CHASE"))
	assert.False(t, doc.Mentions("citi"))

	assert.Contains(t, doc.Pages[0], "12/15 STARBUCKS COFFEE 4.75")
	assert.Contains(t, doc.Pages[0], "11/16/24 - 12/15/24")
	assert.Contains(t, doc.Pages[1], "WHOLE FOODS MARKET")
}

func TestExtract_NoText(t *testing.T) {
	doc, err := pdftext.Extract(filepath.Join("testdata", "blank.pdf"))
	require.NoError(t, err)

	assert.True(t, doc.Empty())
	assert.False(t, doc.Mentions("chase"))
}

func TestExtract_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	_, err := pdftext.Extract(path)
	assert.Error(t, err)

	_, err = pdftext.Extractor{}.Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestDocument(t *testing.T) {
	type testCase struct {
		name      string
		doc       pdftext.Document
		wantEmpty bool
		wantFirst string
	}

	tests := []testCase{
		{name: "NoPages", doc: pdftext.Document{}, wantEmpty: true},
		{name: "WhitespaceOnly", doc: pdftext.Document{Pages: []string{" \n", ""}}, wantEmpty: true, wantFirst: " \n"},
		{name: "Text", doc: pdftext.Document{Pages: []string{"", "12/15 X 1.00"}}, wantEmpty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantEmpty, tt.doc.Empty())
			assert.Equal(t, tt.wantFirst, tt.doc.FirstPage())
		})
	}
}
