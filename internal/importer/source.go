package importer

import (
	"context"

	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
)

// CSVSource is a Source for issuers that export CSV files. Profiles are tried
// in order on every file, so one source can accept several layouts.
type CSVSource struct {
	Cleaner

	name     string
	profiles []Profile
}

func NewCSVSource(name string, profiles []Profile, cleaner Cleaner) *CSVSource {
	return &CSVSource{
		Cleaner:  cleaner,
		name:     name,
		profiles: profiles,
	}
}

func (s *CSVSource) Name() string        { return s.name }
func (s *CSVSource) AccountType() string { return s.Cleaner.AccountType }

func (s *CSVSource) Profiles() []Profile {
	return s.profiles
}

// Read reads every file it can. Unreadable files are logged and skipped
// without affecting the others.
func (s *CSVSource) Read(ctx context.Context, paths []string) *ReadResult {
	res := &ReadResult{}

	for _, p := range paths {
		outcome, rows := s.ReadFile(ctx, p)
		res.Add(outcome, rows)
	}

	return res
}

// ReadFile reads a single CSV export.
func (s *CSVSource) ReadFile(ctx context.Context, path string) (FileOutcome, []RawRow) {
	rows, err := ReadCSVFile(path, s.profiles)
	if err != nil {
		logger.FromContext(ctx).Warn("skipping file", "file", path, "error", err)
		return FileOutcome{Path: path, Status: StatusSkipped, Err: err}, nil
	}

	return FileOutcome{Path: path, Status: StatusRead}, rows
}
