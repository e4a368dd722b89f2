package linkedin

import (
	"fmt"
	"log"
	"strings"

	"github.com/assapir/jobflow/internal/scraper"
	"golang.org/x/text/unicode/norm"
)

// MaxResults caps how many cards are read per page
const MaxResults = 25

// Extract turns result cards into listings, in document order. A card that fails to
// read is skipped; it never costs the rest of the page.
func Extract(cards []Card) []scraper.JobListing {
	if len(cards) > MaxResults {
		cards = cards[:MaxResults]
	}

	jobs := make([]scraper.JobListing, 0, len(cards))
	for i, card := range cards {
		job, err := readCard(card)
		if err != nil {
			log.Printf("      ⚠️ Failed to extract job card #%d: %v", i+1, err)
			continue
		}
		if job == nil {
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs
}

// readCard returns nil, nil for a card without title or company
func readCard(card Card) (*scraper.JobListing, error) {
	title, err := card.Text(titleSelector)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	company, err := card.Text(companySelector)
	if err != nil {
		return nil, fmt.Errorf("company: %w", err)
	}
	location, err := card.Text(locationSelector)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	href, err := card.Attr(linkSelector, "href")
	if err != nil {
		return nil, fmt.Errorf("link: %w", err)
	}
	posted, err := card.Attr(dateSelector, "datetime")
	if err != nil {
		return nil, fmt.Errorf("posted date: %w", err)
	}

	title = cleanText(title)
	company = cleanText(company)
	if title == "" || company == "" {
		return nil, nil
	}

	return &scraper.JobListing{
		Title:      title,
		Company:    company,
		Location:   cleanText(location),
		URL:        stripQuery(strings.TrimSpace(href)),
		PostedDate: strings.TrimSpace(posted),
	}, nil
}

// cleanText composes unicode and collapses the whitespace LinkedIn pads card text with
func cleanText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
