package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assapir/jobflow/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryScraper_RetriesNavigationErrorOnce(t *testing.T) {
	navErr := &scraper.NavigationError{URL: "u", Err: errors.New("net::ERR_TIMED_OUT")}
	fs := &fakeScraper{responses: []response{{err: navErr}, {jobs: someJobs()}}}
	r := NewRetryScraper(fs, 1, time.Millisecond)

	jobs, err := r.Scrape(context.Background(), "u")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, 2, fs.Calls())
}

func TestRetryScraper_GivesUpAfterMax(t *testing.T) {
	navErr := &scraper.NavigationError{URL: "u", Err: errors.New("net::ERR_TIMED_OUT")}
	fs := &fakeScraper{responses: []response{{err: navErr}}}
	//asking for more than the cap still retries only once
	r := NewRetryScraper(fs, 5, time.Millisecond)

	_, err := r.Scrape(context.Background(), "u")
	assert.True(t, scraper.IsNavigationError(err))
	assert.Equal(t, 1+MaxNavigationRetries, fs.Calls())
}

func TestRetryScraper_NeverRetriesBlocksOrMissingListings(t *testing.T) {
	for _, target := range []error{scraper.ErrBlocked, scraper.ErrListingsNotFound} {
		fs := &fakeScraper{responses: []response{{err: target}, {jobs: someJobs()}}}
		r := NewRetryScraper(fs, 1, time.Millisecond)

		_, err := r.Scrape(context.Background(), "u")
		assert.ErrorIs(t, err, target)
		assert.Equal(t, 1, fs.Calls())
	}
}

func TestRetryScraper_ZeroRetries(t *testing.T) {
	navErr := &scraper.NavigationError{URL: "u", Err: errors.New("boom")}
	fs := &fakeScraper{responses: []response{{err: navErr}, {jobs: someJobs()}}}
	r := NewRetryScraper(fs, 0, time.Millisecond)

	_, err := r.Scrape(context.Background(), "u")
	assert.Error(t, err)
	assert.Equal(t, 1, fs.Calls())
}

func TestRetryScraper_StopsWhenContextDone(t *testing.T) {
	navErr := &scraper.NavigationError{URL: "u", Err: errors.New("boom")}
	fs := &fakeScraper{responses: []response{{err: navErr}, {jobs: someJobs()}}}
	r := NewRetryScraper(fs, 1, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Scrape(ctx, "u")
	assert.ErrorIs(t, err, navErr)
	assert.Equal(t, 1, fs.Calls())
}

func TestRetryScraper_CancelledNavigationIsNotRetried(t *testing.T) {
	navErr := &scraper.NavigationError{URL: "u", Err: context.Canceled}
	fs := &fakeScraper{responses: []response{{err: navErr}, {jobs: someJobs()}}}
	r := NewRetryScraper(fs, 1, time.Millisecond)

	_, err := r.Scrape(context.Background(), "u")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fs.Calls())
	assert.Equal(t, "LinkedIn", r.Name())
}
