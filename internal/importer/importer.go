package importer

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
	"github.com/MrJamesThe3rd/budgetsync/internal/transaction"
)

var ErrNoProfile = errors.New("no known column layout found")

// Source is one card issuer's export format.
type Source interface {
	Name() string
	AccountType() string
	Read(ctx context.Context, paths []string) *ReadResult
	Clean(ctx context.Context, rr *ReadResult) []Row
	ToRecords(rows []Row) []transaction.Transaction
}

// Resolver assigns categories during cleaning.
type Resolver interface {
	Resolve(ctx context.Context, merchant, existing string) categorize.Result
}

// Status is what happened to one input file.
type Status string

const (
	StatusRead    Status = "read"
	StatusSkipped Status = "skipped" // unreadable or not this issuer's file
	StatusEmpty   Status = "empty"   // readable but without text to scan
)

type FileOutcome struct {
	Path   string
	Status Status
	Rows   int // rows read
	Parsed int // rows that survived normalization, set by Clean
	Err    error
}

// RawRow is a source row before cleaning. Values are kept as printed.
type RawRow struct {
	File        string
	Line        int
	Profile     *Profile
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Category    string
}

type ReadResult struct {
	Files []FileOutcome
	Rows  []RawRow
}

// Add records the outcome of one file together with the rows it produced.
func (r *ReadResult) Add(outcome FileOutcome, rows []RawRow) {
	outcome.Rows = len(rows)
	r.Files = append(r.Files, outcome)
	r.Rows = append(r.Rows, rows...)
}

// Readable reports whether at least one file was recognised as this
// issuer's, including files that turned out to hold no text.
func (r *ReadResult) Readable() bool {
	for _, f := range r.Files {
		if f.Status != StatusSkipped {
			return true
		}
	}

	return false
}

// Consumed lists the read files with at least one row that survived Clean.
// Only these may be removed once the rows are stored. Rows dropped as
// duplicates still count, their data is stored through the first copy.
// Before Clean runs it is always empty.
func (r *ReadResult) Consumed() []string {
	var paths []string

	for _, f := range r.Files {
		if f.Status == StatusRead && f.Parsed > 0 {
			paths = append(paths, f.Path)
		}
	}

	return paths
}

func (r *ReadResult) setParsed(counts map[string]int) {
	for i := range r.Files {
		r.Files[i].Parsed = counts[r.Files[i].Path]
	}
}

// Row is a cleaned transaction row for one source.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Tier        categorize.Tier
}
