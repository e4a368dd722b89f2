// Shared types for job board scrapers
// Error kinds every scraper must report

package scraper

import (
	"context"
	"errors"
	"fmt"
)

// JobListing is one job card read from a search results page
type JobListing struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	URL        string `json:"url"`
	PostedDate string `json:"postedDate,omitempty"`
}

// SearchResult is what a search call hands back. TotalResults is always len(Jobs).
type SearchResult struct {
	Jobs         []JobListing `json:"jobs"`
	TotalResults int          `json:"totalResults"`
}

// NewSearchResult builds a result with TotalResults derived from jobs
func NewSearchResult(jobs []JobListing) SearchResult {
	if jobs == nil {
		jobs = []JobListing{}
	}
	return SearchResult{Jobs: jobs, TotalResults: len(jobs)}
}

var (
	// ErrBlocked means the board served a login/checkpoint wall instead of results
	ErrBlocked = errors.New("blocked by upstream sign-in wall")
	// ErrListingsNotFound means the results container never appeared and no block was detected
	ErrListingsNotFound = errors.New("job listings not found on page")
)

// NavigationError wraps any browser or network failure while loading the search page
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// IsNavigationError reports whether err carries a *NavigationError
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// PageState is the classification of a loaded results page
type PageState int

const (
	PageReady PageState = iota
	PageBlocked
	PageNotFoundNoBlock
)

func (s PageState) String() string {
	switch s {
	case PageReady:
		return "ready"
	case PageBlocked:
		return "blocked"
	case PageNotFoundNoBlock:
		return "not-found"
	default:
		return fmt.Sprintf("PageState(%d)", int(s))
	}
}

// Err maps a page state to the error a scraper returns for it. PageReady maps to nil.
func (s PageState) Err() error {
	switch s {
	case PageBlocked:
		return ErrBlocked
	case PageNotFoundNoBlock:
		return ErrListingsNotFound
	default:
		return nil
	}
}

//Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape loads searchURL in its own browser session and returns the listings on it
	Scrape(ctx context.Context, searchURL string) ([]JobListing, error)

	//Name is the platform name (LinkedIn, ...)
	Name() string
}
