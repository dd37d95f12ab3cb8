// Package ingest runs issuer sources end to end: read, clean, store and
// remove the files that were stored.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer"
	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
	"github.com/MrJamesThe3rd/budgetsync/internal/transaction"
)

var (
	ErrNoReadableFiles = errors.New("no readable files")
	ErrUnknownSource   = errors.New("unknown source")
)

// Inserter stores one batch of records atomically.
type Inserter interface {
	Insert(ctx context.Context, txs []transaction.Transaction) (*transaction.InsertResult, error)
}

// Job names a source and the files to feed it.
type Job struct {
	Source string
	Paths  []string
}

type FileReport struct {
	Path   string          `json:"path"`
	Status importer.Status `json:"status"`
	Rows   int             `json:"rows"`
	Parsed int             `json:"parsed"`
	Error  string          `json:"error,omitempty"`
}

// Report describes one source run.
type Report struct {
	RunID    string                  `json:"run_id"`
	Source   string                  `json:"source"`
	Files    []FileReport            `json:"files"`
	Rows     int                     `json:"rows"`
	Inserted int                     `json:"inserted"`
	Ignored  int                     `json:"ignored"`
	Created  int                     `json:"created"`
	Tiers    map[categorize.Tier]int `json:"tiers"`
	Deleted  []string                `json:"deleted,omitempty"`
}

// Summary collects the reports of a multi-source run. Errors is keyed by
// source name.
type Summary struct {
	Reports []*Report
	Errors  map[string]error
}

func (s Summary) Failed() bool {
	return len(s.Errors) > 0
}

type Runner struct {
	sources   map[string]importer.Source
	store     Inserter
	keepFiles bool
	remove    func(string) error
}

type Option func(*Runner)

// WithKeepFiles leaves input files in place after they are stored.
func WithKeepFiles(keep bool) Option {
	return func(r *Runner) { r.keepFiles = keep }
}

func NewRunner(store Inserter, sources []importer.Source, opts ...Option) *Runner {
	r := &Runner{
		sources: make(map[string]importer.Source, len(sources)),
		store:   store,
		remove:  os.Remove,
	}

	for _, s := range sources {
		r.sources[s.Name()] = s
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Sources returns the registered source names in sorted order.
func (r *Runner) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Run processes every job in order. A failing source is logged and does not
// stop the ones after it.
func (r *Runner) Run(ctx context.Context, jobs []Job) Summary {
	summary := Summary{Errors: make(map[string]error)}

	for _, job := range jobs {
		report, err := r.RunSource(ctx, job)
		if report != nil {
			summary.Reports = append(summary.Reports, report)
		}

		if err != nil {
			logger.FromContext(ctx).Error("source failed", "source", job.Source, "error", err)
			summary.Errors[job.Source] = err
		}
	}

	return summary
}

// RunSource reads, cleans and stores one job. Files are removed only after
// the batch is committed, and only those with rows that parsed. A job whose
// files are all skipped fails with ErrNoReadableFiles. Files without text or
// without a parsable row leave nothing to store and are kept. The report is
// returned alongside any error so callers can see which files were read.
func (r *Runner) RunSource(ctx context.Context, job Job) (*Report, error) {
	src, ok := r.sources[job.Source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, job.Source)
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Source: job.Source,
		Tiers:  make(map[categorize.Tier]int),
	}

	log := logger.FromContext(ctx).With("source", job.Source, "run_id", report.RunID)
	ctx = logger.WithContext(ctx, log)

	if len(job.Paths) == 0 {
		log.Info("no files to ingest")
		return report, nil
	}

	rr := src.Read(ctx, job.Paths)
	if !rr.Readable() {
		report.Files = fileReports(rr)
		return report, fmt.Errorf("%s: %w", job.Source, ErrNoReadableFiles)
	}

	rows := src.Clean(ctx, rr)
	for _, row := range rows {
		report.Tiers[row.Tier]++
	}

	report.Rows = len(rows)
	report.Files = fileReports(rr)

	if len(rows) == 0 {
		log.Warn("no transactions to add after cleaning, keeping files")
		return report, nil
	}

	res, err := r.store.Insert(ctx, src.ToRecords(rows))
	if err != nil {
		return report, fmt.Errorf("store %s: %w", job.Source, err)
	}

	report.Inserted = res.Inserted
	report.Ignored = res.Ignored
	report.Created = res.Created

	log.Info("source stored",
		"rows", report.Rows,
		"inserted", report.Inserted,
		"ignored", report.Ignored,
		"created", report.Created)

	if r.keepFiles {
		return report, nil
	}

	for _, path := range rr.Consumed() {
		if err := r.remove(path); err != nil {
			log.Warn("failed to remove file", "file", path, "error", err)
			continue
		}

		report.Deleted = append(report.Deleted, path)
	}

	return report, nil
}

// Discover expands pattern into a sorted file list. An empty pattern yields
// no files.
func Discover(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	sort.Strings(paths)

	return paths, nil
}

func fileReports(rr *importer.ReadResult) []FileReport {
	out := make([]FileReport, 0, len(rr.Files))

	for _, f := range rr.Files {
		fr := FileReport{Path: f.Path, Status: f.Status, Rows: f.Rows, Parsed: f.Parsed}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}

		out = append(out, fr)
	}

	return out
}
