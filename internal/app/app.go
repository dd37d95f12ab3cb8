// Package app wires configuration into the services the binaries share.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
	"github.com/MrJamesThe3rd/budgetsync/internal/categorize/ai"
	"github.com/MrJamesThe3rd/budgetsync/internal/config"
	"github.com/MrJamesThe3rd/budgetsync/internal/database"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/amex"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/apple"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/chase"
	"github.com/MrJamesThe3rd/budgetsync/internal/importer/citi"
	"github.com/MrJamesThe3rd/budgetsync/internal/ingest"
	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
	"github.com/MrJamesThe3rd/budgetsync/internal/transaction"
	"github.com/MrJamesThe3rd/budgetsync/internal/transaction/store"
)

type App struct {
	DB           *sql.DB
	Transactions *transaction.Service
	Resolver     *categorize.Resolver
	Runner       *ingest.Runner
}

// New opens the database and builds the ingest pipeline. The resolver's
// known categories are read from the store once, here.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a, err := build(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

func build(ctx context.Context, cfg *config.Config, db *sql.DB) (*App, error) {
	st := store.New(db, store.ForDriver(cfg.DB.Driver, cfg.Schema()))
	if err := st.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	txSvc := transaction.NewService(st)

	stored, err := txSvc.Categories(ctx)
	if err != nil {
		return nil, err
	}

	vendors, err := Vendors(cfg.Ingest.VendorFile)
	if err != nil {
		return nil, err
	}

	classifier, err := NewClassifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resolver := categorize.NewResolver(classifier, vendors, stored,
		categorize.WithTimeout(cfg.Classifier.Timeout))

	logger.FromContext(ctx).Info("category resolver ready",
		"stored_categories", len(stored),
		"vendor_patterns", vendors.Len(),
		"classifier", cfg.Classifier.Provider)

	runner := ingest.NewRunner(txSvc, Sources(cfg.Ingest.Person, resolver),
		ingest.WithKeepFiles(cfg.Ingest.KeepFiles))

	return &App{
		DB:           db,
		Transactions: txSvc,
		Resolver:     resolver,
		Runner:       runner,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// Sources lists every supported issuer in processing order.
func Sources(person string, resolver importer.Resolver) []importer.Source {
	return []importer.Source{
		apple.New(person, resolver),
		chase.New(person, resolver),
		amex.New(person, resolver),
		citi.New(person, resolver),
	}
}

// Jobs expands the configured glob of every source, in processing order.
func Jobs(cfg *config.Config) ([]ingest.Job, error) {
	globs := []struct{ source, pattern string }{
		{apple.Name, cfg.Ingest.AppleGlob},
		{chase.Name, cfg.Ingest.ChaseGlob},
		{amex.Name, cfg.Ingest.AmexGlob},
		{citi.Name, cfg.Ingest.CitiGlob},
	}

	jobs := make([]ingest.Job, 0, len(globs))

	for _, g := range globs {
		paths, err := ingest.Discover(g.pattern)
		if err != nil {
			return nil, fmt.Errorf("%s files: %w", g.source, err)
		}

		jobs = append(jobs, ingest.Job{Source: g.source, Paths: paths})
	}

	return jobs, nil
}

// Vendors returns the built-in vendor table extended with the rules in path,
// if set. File rules are matched after the built-in ones.
func Vendors(path string) (*categorize.Vendors, error) {
	vendors := categorize.DefaultVendors()
	if path == "" {
		return vendors, nil
	}

	rules, err := categorize.LoadVendorFile(path)
	if err != nil {
		return nil, err
	}

	vendors.Append(rules...)

	return vendors, nil
}

// NewClassifier builds the configured classifier, cached and rate limited.
func NewClassifier(ctx context.Context, cfg *config.Config) (categorize.Classifier, error) {
	c := cfg.Classifier

	var base categorize.Classifier

	switch c.Provider {
	case config.ProviderNone, "":
		return categorize.Disabled{}, nil
	case config.ProviderOpenAI:
		if c.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the %s classifier", c.Provider)
		}

		base = ai.NewOpenAI(c.OpenAIKey, c.OpenAIBaseURL, c.OpenAIModel)
	case config.ProviderGemini:
		if c.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the %s classifier", c.Provider)
		}

		g, err := ai.NewGemini(ctx, c.GeminiKey, "", c.GeminiModel)
		if err != nil {
			return nil, err
		}

		base = g
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_PROVIDER %q", c.Provider)
	}

	logger.FromContext(ctx).Debug("classifier configured", "provider", c.Provider, "rate", c.Rate, "burst", c.Burst)

	return ai.WithCache(ai.WithRateLimit(base, c.Rate, c.Burst), c.CacheTTL), nil
}
