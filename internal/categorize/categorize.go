// Package categorize assigns a spending category to every transaction.
//
// Resolution runs as a fixed cascade, first hit wins:
//
//  1. keyword heuristics (refunds, payments)
//  2. a category the source file already carried, if it is a known one
//  3. the vendor pattern table
//  4. an external Classifier
//  5. the "Other" sentinel
//
// Steps 1 and 3 are pure functions of the merchant text.
package categorize

import (
	"context"
	"errors"
)

// Sentinel categories. Neither counts as a resolved category.
const (
	Other         = "Other"
	Uncategorized = "Uncategorized"
)

// Tier records which step of the cascade produced a category.
type Tier string

const (
	TierHeuristic  Tier = "heuristic"
	TierSource     Tier = "source"
	TierVendor     Tier = "vendor"
	TierClassifier Tier = "classifier"
	TierFallback   Tier = "fallback"
)

var (
	ErrClassifierDisabled = errors.New("classifier disabled")
	ErrUnknownCategory    = errors.New("classifier answered with an unknown category")
)

// Result is the outcome of resolving one merchant. Err is set when the
// classifier failed and the fallback was used instead.
type Result struct {
	Category string
	Tier     Tier
	Err      error
}

//go:generate mockgen -source=categorize.go -destination=classifier_mock.go -package=categorize
type Classifier interface {
	// Classify picks one of categories for merchant.
	Classify(ctx context.Context, merchant string, categories []string) (string, error)
}

// Disabled is the Classifier used when no provider is configured.
type Disabled struct{}

func (Disabled) Classify(context.Context, string, []string) (string, error) {
	return "", ErrClassifierDisabled
}

func isSentinel(category string) bool {
	return category == "" || category == Other || category == Uncategorized
}
