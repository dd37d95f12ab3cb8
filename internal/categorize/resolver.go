package categorize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/budgetsync/internal/logger"
)

type Resolver struct {
	classifier Classifier
	vendors    *Vendors
	timeout    time.Duration

	known []string
	index map[string]string // lowercased name -> canonical name
}

type Option func(*Resolver)

// WithTimeout bounds each classifier call. A timed out call resolves to Other.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// NewResolver builds a resolver whose known categories are stored, the
// vendor table's categories, the heuristic categories and Other.
func NewResolver(classifier Classifier, vendors *Vendors, stored []string, opts ...Option) *Resolver {
	if classifier == nil {
		classifier = Disabled{}
	}

	if vendors == nil {
		vendors = DefaultVendors()
	}

	r := &Resolver{
		classifier: classifier,
		vendors:    vendors,
		index:      make(map[string]string),
	}

	for _, group := range [][]string{stored, vendors.Categories(), heuristicCategories(), {Other}} {
		for _, name := range group {
			r.addKnown(name)
		}
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Resolver) addKnown(name string) {
	name = strings.TrimSpace(name)
	if name == "" || name == Uncategorized {
		return
	}

	key := strings.ToLower(name)
	if _, ok := r.index[key]; ok {
		return
	}

	r.index[key] = name
	r.known = append(r.known, name)
}

// Known returns the categories the classifier may choose from.
func (r *Resolver) Known() []string {
	out := make([]string, len(r.known))
	copy(out, r.known)

	return out
}

// Resolve picks the category for merchant. existing is the category the
// source supplied, or "".
func (r *Resolver) Resolve(ctx context.Context, merchant, existing string) Result {
	if c, ok := heuristic(merchant); ok {
		return Result{Category: c, Tier: TierHeuristic}
	}

	if c, ok := r.canonical(existing); ok && !isSentinel(c) {
		return Result{Category: c, Tier: TierSource}
	}

	if c, ok := r.vendors.Match(merchant); ok {
		return Result{Category: c, Tier: TierVendor}
	}

	return r.classify(ctx, merchant)
}

func (r *Resolver) canonical(name string) (string, bool) {
	c, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

func (r *Resolver) classify(ctx context.Context, merchant string) Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	answer, err := r.classifier.Classify(ctx, merchant, r.Known())
	if errors.Is(err, ErrClassifierDisabled) {
		return Result{Category: Other, Tier: TierFallback}
	}

	if err != nil {
		logger.FromContext(ctx).Warn("classifier failed, using fallback",
			"merchant", merchant, "error", err)

		return Result{Category: Other, Tier: TierFallback, Err: err}
	}

	answer = strings.TrimSpace(answer)
	if c, ok := r.canonical(answer); !ok || c != answer {
		err := fmt.Errorf("%w: %q", ErrUnknownCategory, answer)
		logger.FromContext(ctx).Warn("classifier answer rejected",
			"merchant", merchant, "answer", answer)

		return Result{Category: Other, Tier: TierFallback, Err: err}
	}

	return Result{Category: answer, Tier: TierClassifier}
}
