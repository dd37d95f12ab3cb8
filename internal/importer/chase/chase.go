// Package chase reads Chase card statements (PDF) and legacy CSV exports.
package chase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/budgetsync/internal/importer"
	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
	"github.com/MrJamesThe3rd/budgetsync/internal/pdftext"
	"github.com/MrJamesThe3rd/budgetsync/internal/statement"
)

const (
	Name        = "chase"
	AccountType = "Chase Card"
	Bank        = "Chase"
)

// CSVProfile is the legacy CSV layout. Chase exports charges as positive
// amounts there and leaves payments without a category.
var CSVProfile = importer.Profile{
	Name:        "chase csv",
	DateCol:     "Transaction Date",
	DescCol:     "Description",
	AmountMode:  importer.AmountSingle,
	AmountCol:   "Amount",
	CategoryCol: "Category",
	Negate:      true,
	CategoryAliases: map[string]string{
		"Food & Drink": "Restaurants",
		"":             "Payment",
	},
}

// StatementProfile interprets rows scanned from statement text. Purchases
// print as positive amounts, payments and credits as negative ones.
var StatementProfile = importer.Profile{
	Name:        "chase statement",
	AmountMode:  importer.AmountSingle,
	DateLayouts: []string{time.DateOnly},
	Negate:      true,
}

type TextExtractor interface {
	Extract(path string) (pdftext.Document, error)
}

type Source struct {
	*importer.CSVSource

	extractor TextExtractor
	now       func() time.Time
}

type Option func(*Source)

func WithExtractor(e TextExtractor) Option {
	return func(s *Source) { s.extractor = e }
}

// WithClock sets the clock used when a statement shows no period.
func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

func New(person string, resolver importer.Resolver, opts ...Option) *Source {
	s := &Source{
		CSVSource: importer.NewCSVSource(Name, []importer.Profile{CSVProfile}, importer.Cleaner{
			AccountType: AccountType,
			Person:      person,
			Resolver:    resolver,
		}),
		extractor: pdftext.Extractor{},
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Read accepts statements and CSV exports in the same batch, by extension.
func (s *Source) Read(ctx context.Context, paths []string) *importer.ReadResult {
	res := &importer.ReadResult{}

	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ".pdf") {
			res.Add(s.readStatement(ctx, p))
			continue
		}

		res.Add(s.ReadFile(ctx, p))
	}

	return res
}

func (s *Source) readStatement(ctx context.Context, path string) (importer.FileOutcome, []importer.RawRow) {
	log := logger.FromContext(ctx).With("file", path)

	doc, err := s.extractor.Extract(path)
	if err != nil {
		log.Warn("skipping statement", "error", err)
		return importer.FileOutcome{Path: path, Status: importer.StatusSkipped, Err: err}, nil
	}

	if doc.Empty() {
		log.Warn("statement has no text layer, treating as no transactions")
		return importer.FileOutcome{Path: path, Status: importer.StatusEmpty}, nil
	}

	if !doc.Mentions(Bank) {
		err := fmt.Errorf("not a %s statement", Bank)
		log.Warn("skipping statement", "error", err)

		return importer.FileOutcome{Path: path, Status: importer.StatusSkipped, Err: err}, nil
	}

	year, found := statement.StatementYear(doc.FirstPage(), s.now())
	if !found {
		log.Warn("statement period not found, assuming current year", "year", year)
	}

	parsed := statement.Parse(doc.Pages, year, Bank)
	for _, rej := range parsed.Rejected {
		log.Debug("skipping statement line", "page", rej.Page, "line", rej.Line, "reason", rej.Reason)
	}

	rows := make([]importer.RawRow, len(parsed.Rows))
	for i, r := range parsed.Rows {
		rows[i] = importer.RawRow{
			File:        path,
			Line:        i + 1,
			Profile:     &StatementProfile,
			Date:        r.Date.Format(time.DateOnly),
			Description: r.Description,
			Amount:      r.Amount.String(),
		}
	}

	return importer.FileOutcome{Path: path, Status: importer.StatusRead}, rows
}
