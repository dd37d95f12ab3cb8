package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Fallback is the sentinel category for transactions nothing else could place.
const Fallback = "Other"

var ErrInvalidTransaction = errors.New("invalid transaction")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	BeginBatch(ctx context.Context) (Batch, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Batch is one store transaction. Reference rows created through it commit
// or roll back together with the transactions that depend on them.
type Batch interface {
	LoadReferences(ctx context.Context, cache *RefCache) error
	CreateReference(ctx context.Context, kind RefKind, name string) (int64, error)
	InsertTransaction(ctx context.Context, row Row) (bool, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type InsertResult struct {
	Inserted int // new rows written
	Ignored  int // rows already present in the store
	Created  int // reference rows created on first use
}

// Insert persists txs in a single batch. Rows colliding with stored rows are
// ignored, so re-running the same input is a no-op. Any storage error rolls
// back the whole batch, reference rows included.
func (s *Service) Insert(ctx context.Context, txs []Transaction) (*InsertResult, error) {
	if len(txs) == 0 {
		return &InsertResult{}, nil
	}

	for i, t := range txs {
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	txs = Dedupe(txs)

	batch, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer batch.Rollback()

	cache := NewRefCache()
	if err := batch.LoadReferences(ctx, cache); err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	result := &InsertResult{}

	for _, t := range txs {
		row, err := resolveRow(ctx, cache, batch, t)
		if err != nil {
			return nil, err
		}

		inserted, err := batch.InsertTransaction(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("insert %q on %s: %w", t.MerchantName, t.Date.Format("2006-01-02"), err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Ignored++
		}
	}

	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	result.Created = cache.Created()

	return result, nil
}

// Categories lists the category names known to the store.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return names, nil
}

func resolveRow(ctx context.Context, cache *RefCache, batch Batch, t Transaction) (Row, error) {
	category := t.Category
	if strings.TrimSpace(category) == "" {
		category = Fallback
	}

	categoryID, err := cache.Resolve(ctx, batch, RefCategory, category)
	if err != nil {
		return Row{}, err
	}

	personID, err := cache.Resolve(ctx, batch, RefPerson, t.Person)
	if err != nil {
		return Row{}, err
	}

	accountID, err := cache.Resolve(ctx, batch, RefAccountType, t.AccountType)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Date:          Day(t.Date),
		Amount:        t.Amount,
		MerchantName:  t.MerchantName,
		CategoryID:    categoryID,
		PersonID:      personID,
		AccountTypeID: accountID,
	}, nil
}

func validate(t Transaction) error {
	switch {
	case t.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	case strings.TrimSpace(t.MerchantName) == "":
		return fmt.Errorf("%w: missing merchant name", ErrInvalidTransaction)
	case strings.TrimSpace(t.Person) == "":
		return fmt.Errorf("%w: missing person", ErrInvalidTransaction)
	case strings.TrimSpace(t.AccountType) == "":
		return fmt.Errorf("%w: missing account type", ErrInvalidTransaction)
	}

	return nil
}
