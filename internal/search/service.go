package search

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/assapir/jobflow/internal/cache"
	"github.com/assapir/jobflow/internal/models"
	"github.com/assapir/jobflow/internal/scraper"
)

const recordTimeout = 5 * time.Second

// ErrEmptyQuery is returned before any work when the query is blank
var ErrEmptyQuery = errors.New("search query is required")

// URLBuilder maps a query and optional location to the page a scraper should load
type URLBuilder func(query, location string) string

// Recorder receives the audit record of every search call
type Recorder interface {
	RecordRun(ctx context.Context, run models.SearchRun) error
}

// Service is the public search entry point. It owns the cache and never
// downgrades scraper errors.
type Service struct {
	scraper   scraper.Scraper
	cache     *cache.ResultCache
	buildURL  URLBuilder
	recorders []Recorder
}

func NewService(s scraper.Scraper, c *cache.ResultCache, buildURL URLBuilder, recorders ...Recorder) *Service {
	return &Service{
		scraper:   s,
		cache:     c,
		buildURL:  buildURL,
		recorders: recorders,
	}
}

// SearchJobs serves from cache when it can, otherwise runs one scraper session.
// Errors from the scraper come back unchanged. A zero-job result is returned but not cached.
func (s *Service) SearchJobs(ctx context.Context, query, location string) (scraper.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return scraper.SearchResult{}, ErrEmptyQuery
	}

	start := time.Now()
	key := cache.Key(query, location)
	if cached, ok := s.cache.Get(key); ok {
		log.Printf("⚡ Cache hit for %q (%d jobs)", key, cached.TotalResults)
		s.record(ctx, query, location, models.OutcomeCached, cached.TotalResults, nil, start)
		return cached, nil
	}

	jobs, err := s.scraper.Scrape(ctx, s.buildURL(query, location))
	if err != nil {
		log.Printf("❌ %s search %q failed: %v", s.scraper.Name(), key, err)
		s.record(ctx, query, location, OutcomeFor(err), 0, err, start)
		return scraper.SearchResult{}, err
	}

	result := scraper.NewSearchResult(jobs)
	if result.TotalResults == 0 {
		log.Printf("ℹ️ No jobs for %q, not caching", key)
		s.record(ctx, query, location, models.OutcomeEmpty, 0, nil, start)
		return result, nil
	}

	s.cache.Put(key, result)
	if removed := s.cache.Sweep(); removed > 0 {
		log.Printf("🧹 Swept %d expired cache entries", removed)
	}
	s.record(ctx, query, location, models.OutcomeOK, result.TotalResults, nil, start)
	return result, nil
}

// ClearCache empties the result cache. Always succeeds.
func (s *Service) ClearCache() {
	s.cache.Clear()
	log.Println("🧹 Search cache cleared")
}

// OutcomeFor maps a scraper error to the outcome recorded for it
func OutcomeFor(err error) models.Outcome {
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.Is(err, scraper.ErrBlocked):
		return models.OutcomeBlocked
	case errors.Is(err, scraper.ErrListingsNotFound):
		return models.OutcomeNotFound
	default:
		return models.OutcomeNavigationError
	}
}

func (s *Service) record(ctx context.Context, query, location string, outcome models.Outcome, count int, err error, start time.Time) {
	if len(s.recorders) == 0 {
		return
	}

	run := models.SearchRun{
		Source:    s.scraper.Name(),
		Query:     query,
		Location:  location,
		Outcome:   outcome,
		JobCount:  count,
		Duration:  time.Since(start),
		CreatedAt: start,
	}
	if err != nil {
		run.Error = err.Error()
	}

	//the caller may already be gone; the audit record should still land
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	for _, r := range s.recorders {
		if err := r.RecordRun(recCtx, run); err != nil {
			log.Printf("⚠️ Failed to record search run: %v", err)
		}
	}
}
