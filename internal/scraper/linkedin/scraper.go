package linkedin

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/assapir/jobflow/internal/browser"
	"github.com/assapir/jobflow/internal/scraper"
	"github.com/assapir/jobflow/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	cardFieldTimeout = 2 * time.Second
	bodyTextTimeout  = 2 * time.Second
)

// Options bounds every step of a session independently
type Options struct {
	UserAgent        string
	Cookies          []playwright.OptionalCookie
	LoadTimeout      time.Duration
	SelectorTimeout  time.Duration
	ScrollIterations int
	ScrollPause      time.Duration
}

func DefaultOptions() Options {
	return Options{
		UserAgent:        DefaultUserAgent,
		LoadTimeout:      15 * time.Second,
		SelectorTimeout:  15 * time.Second,
		ScrollIterations: 3,
		ScrollPause:      2 * time.Second,
	}
}

// SessionFactory opens an isolated browser context. *browser.PlaywrightManager implements it.
type SessionFactory interface {
	NewContext(opts browser.ContextOptions) (playwright.BrowserContext, error)
}

type LinkedInScraper struct {
	sessions SessionFactory
	opts     Options
	debugger *utils.ScreenShotDebugger
}

// NewLinkedInScraper builds the scraper; debugger may be nil
func NewLinkedInScraper(sessions SessionFactory, opts Options, debugger *utils.ScreenShotDebugger) *LinkedInScraper {
	return &LinkedInScraper{
		sessions: sessions,
		opts:     opts,
		debugger: debugger,
	}
}

func (s *LinkedInScraper) Name() string {
	return "LinkedIn"
}

// Scrape drives one browser session against searchURL. Errors are scraper.ErrBlocked,
// scraper.ErrListingsNotFound or *scraper.NavigationError.
func (s *LinkedInScraper) Scrape(ctx context.Context, searchURL string) ([]scraper.JobListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, &scraper.NavigationError{URL: searchURL, Err: err}
	}
	log.Printf("💼 Searching LinkedIn Jobs: %s", searchURL)

	browserCtx, err := s.sessions.NewContext(browser.ContextOptions{
		UserAgent: s.opts.UserAgent,
		Headers: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
		Cookies: s.opts.Cookies,
	})
	if err != nil {
		return nil, &scraper.NavigationError{URL: searchURL, Err: err}
	}
	//always close the session
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, &scraper.NavigationError{URL: searchURL, Err: err}
	}

	if err := s.load(page, searchURL); err != nil {
		return nil, err
	}

	state, err := s.waitForResults(page)
	if err != nil {
		return nil, &scraper.NavigationError{URL: searchURL, Err: err}
	}
	if state != scraper.PageReady {
		s.captureFailure(page, state)
		return nil, state.Err()
	}

	//LinkedIn lazy-loads more cards as the list scrolls
	if err := browser.LazyScroll(page, resultsContainer, s.opts.ScrollIterations, s.opts.ScrollPause); err != nil {
		log.Printf("    ⚠️ Lazy-load scroll failed, extracting what is loaded: %v", err)
	}

	cards, err := locatorCards(page, millis(cardFieldTimeout))
	if err != nil {
		return nil, &scraper.NavigationError{URL: searchURL, Err: err}
	}
	log.Printf("    📄 Found %d job cards.", len(cards))

	jobs := Extract(cards)
	log.Printf("    ✅ Extracted %d jobs.", len(jobs))
	return jobs, nil
}

// load navigates and waits for network idle. Hitting the idle ceiling is not fatal:
// the results list often renders before the network settles.
func (s *LinkedInScraper) load(page playwright.Page, searchURL string) error {
	_, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(millis(s.opts.LoadTimeout)),
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		log.Printf("    ⏳ Network not idle after %v, continuing", s.opts.LoadTimeout)
		return nil
	}
	return &scraper.NavigationError{URL: searchURL, Err: err}
}

// waitForResults waits for the results container. When it never shows up the page is
// classified before anything fails, since a missing list is either a block or a markup change.
func (s *LinkedInScraper) waitForResults(page playwright.Page) (scraper.PageState, error) {
	_, err := page.WaitForSelector(resultsContainer, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(millis(s.opts.SelectorTimeout)),
	})
	if err == nil {
		return scraper.PageReady, nil
	}
	if !errors.Is(err, playwright.ErrTimeout) {
		return scraper.PageReady, err
	}

	log.Println("    ⚠️ Job results list not found, checking for sign-in wall...")
	return classifyPage(page), nil
}

func classifyPage(page playwright.Page) scraper.PageState {
	markup, err := page.Content()
	if err != nil {
		log.Printf("    ⚠️ Could not read page markup: %v", err)
	}
	bodyText, err := page.Locator("body").InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(millis(bodyTextTimeout)),
	})
	if err != nil {
		log.Printf("    ⚠️ Could not read body text: %v", err)
	}

	signals := ReadSignals(markup, bodyText, page.URL())
	state := Classify(signals)
	log.Printf("    🔎 Page classified as %s (signals: %+v)", state, signals)
	return state
}

func (s *LinkedInScraper) captureFailure(page playwright.Page, state scraper.PageState) {
	if s.debugger == nil {
		return
	}
	name := "linkedin-" + state.String()
	switch state {
	case scraper.PageBlocked:
		s.debugger.CaptureAndLog(page, name, "🚨 LinkedIn: Sign-in wall detected")
	default:
		s.debugger.CaptureAndLog(page, name, "🚨 LinkedIn: Results list missing without sign-in wall")
	}
	if _, err := s.debugger.SaveHTML(page, name); err != nil {
		log.Printf("⚠️ %v", err)
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
