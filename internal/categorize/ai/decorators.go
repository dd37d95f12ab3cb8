package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/budgetsync/internal/categorize"
)

type cached struct {
	next  categorize.Classifier
	store *cache.Cache
}

// WithCache remembers answers per merchant for ttl. Failed calls are not
// remembered, so a later transaction from the same merchant retries.
func WithCache(next categorize.Classifier, ttl time.Duration) categorize.Classifier {
	return &cached{
		next:  next,
		store: cache.New(ttl, 2*ttl),
	}
}

func (c *cached) Classify(ctx context.Context, merchant string, categories []string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(merchant))

	if v, ok := c.store.Get(key); ok {
		return v.(string), nil
	}

	answer, err := c.next.Classify(ctx, merchant, categories)
	if err != nil {
		return "", err
	}

	c.store.Set(key, answer, cache.DefaultExpiration)

	return answer, nil
}

type limited struct {
	next    categorize.Classifier
	limiter *rate.Limiter
}

// WithRateLimit allows at most perSecond calls per second with the given burst.
func WithRateLimit(next categorize.Classifier, perSecond float64, burst int) categorize.Classifier {
	if burst < 1 {
		burst = 1
	}

	return &limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (l *limited) Classify(ctx context.Context, merchant string, categories []string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	return l.next.Classify(ctx, merchant, categories)
}
