package linkedin

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// Public (guest) job search markup
const (
	resultsContainer = ".jobs-search__results-list"
	resultItems      = ".jobs-search__results-list > li"
	titleSelector    = ".base-search-card__title"
	companySelector  = ".base-search-card__subtitle"
	locationSelector = ".job-search-card__location"
	linkSelector     = "a.base-card__full-link"
	dateSelector     = "time"
)

// Card is one result element. A missing sub-element reads as "" with a nil error;
// an error means the card itself could not be read.
type Card interface {
	Text(selector string) (string, error)
	Attr(selector, name string) (string, error)
}

// locatorCard reads fields from the live page
type locatorCard struct {
	loc     playwright.Locator
	timeout float64 //ms
}

func (c locatorCard) Text(selector string) (string, error) {
	el := c.loc.Locator(selector).First()
	count, err := el.Count()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}
	return el.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(c.timeout),
	})
}

func (c locatorCard) Attr(selector, name string) (string, error) {
	el := c.loc.Locator(selector).First()
	count, err := el.Count()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}
	return el.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(c.timeout),
	})
}

// locatorCards wraps every result item currently in the DOM
func locatorCards(page playwright.Page, timeout float64) ([]Card, error) {
	items, err := page.Locator(resultItems).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list result items: %w", err)
	}
	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = locatorCard{loc: item, timeout: timeout}
	}
	return cards, nil
}

// htmlCard reads fields from a parsed HTML snapshot
type htmlCard struct {
	sel *goquery.Selection
}

func (c htmlCard) Text(selector string) (string, error) {
	return c.sel.Find(selector).First().Text(), nil
}

func (c htmlCard) Attr(selector, name string) (string, error) {
	val, _ := c.sel.Find(selector).First().Attr(name)
	return val, nil
}

// CardsFromHTML parses a saved results page. It returns no cards (and no error) when the
// results container is absent.
func CardsFromHTML(r io.Reader) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	var cards []Card
	doc.Find(resultItems).Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, htmlCard{sel: s})
	})
	return cards, nil
}
