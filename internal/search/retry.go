package search

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/assapir/jobflow/internal/scraper"
)

// MaxNavigationRetries caps inline retries. Blocks are never retried: hitting a
// sign-in wall again right away only makes it stick.
const MaxNavigationRetries = 1

// RetryScraper is a decorator that retries *scraper.NavigationError failures
// after a fixed delay before giving up.
type RetryScraper struct {
	inner      scraper.Scraper
	maxRetries int
	delay      time.Duration
}

// NewRetryScraper wraps inner. maxRetries is clamped to [0, MaxNavigationRetries].
func NewRetryScraper(inner scraper.Scraper, maxRetries int, delay time.Duration) *RetryScraper {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxRetries > MaxNavigationRetries {
		maxRetries = MaxNavigationRetries
	}
	return &RetryScraper{
		inner:      inner,
		maxRetries: maxRetries,
		delay:      delay,
	}
}

func (r *RetryScraper) Name() string {
	return r.inner.Name()
}

func (r *RetryScraper) Scrape(ctx context.Context, searchURL string) ([]scraper.JobListing, error) {
	jobs, err := r.inner.Scrape(ctx, searchURL)
	for attempt := 1; attempt <= r.maxRetries && isRetryable(err); attempt++ {
		log.Printf("🔁 Retrying %s after navigation error (attempt %d/%d): %v", r.inner.Name(), attempt, r.maxRetries, err)

		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(r.delay):
		}

		jobs, err = r.inner.Scrape(ctx, searchURL)
	}
	return jobs, err
}

// isRetryable is true only for navigation failures that were not caused by cancellation
func isRetryable(err error) bool {
	if err == nil || !scraper.IsNavigationError(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
