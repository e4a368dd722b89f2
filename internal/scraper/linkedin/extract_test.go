package linkedin

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/assapir/jobflow/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCard serves fields from a map keyed by selector; attributes use "selector@name"
type fakeCard struct {
	fields map[string]string
	err    error
}

func (c fakeCard) Text(selector string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.fields[selector], nil
}

func (c fakeCard) Attr(selector, name string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.fields[selector+"@"+name], nil
}

func newFakeCard(title, company string) fakeCard {
	return fakeCard{fields: map[string]string{
		titleSelector:          title,
		companySelector:        company,
		locationSelector:       "Remote",
		linkSelector + "@href": "https://www.linkedin.com/jobs/view/" + strings.ReplaceAll(title, " ", "-") + "?refId=1",
	}}
}

func TestExtract_Fields(t *testing.T) {
	card := fakeCard{fields: map[string]string{
		titleSelector:              "\n   Senior   Go Engineer \n",
		companySelector:            " Acme Corp ",
		locationSelector:           "Tel Aviv,\n  Israel",
		linkSelector + "@href":     " https://www.linkedin.com/jobs/view/42?trackingId=t&refId=r ",
		dateSelector + "@datetime": "2026-10-01",
	}}

	jobs := Extract([]Card{card})

	require.Len(t, jobs, 1)
	assert.Equal(t, scraper.JobListing{
		Title:      "Senior Go Engineer",
		Company:    "Acme Corp",
		Location:   "Tel Aviv, Israel",
		URL:        "https://www.linkedin.com/jobs/view/42",
		PostedDate: "2026-10-01",
	}, jobs[0])
}

func TestExtract_NormalizesUnicode(t *testing.T) {
	//"e" followed by a combining acute accent composes to "é"
	card := newFakeCard("Cafe\u0301 Developer", "Acme")

	jobs := Extract([]Card{card})

	require.Len(t, jobs, 1)
	assert.Equal(t, "Caf\u00e9 Developer", jobs[0].Title)
}

func TestExtract_RequiresTitleAndCompany(t *testing.T) {
	cards := []Card{
		newFakeCard("Go Developer", ""),
		newFakeCard("", "Acme"),
		newFakeCard("   ", "Acme"),
		newFakeCard("Go Developer", "Acme"),
	}

	jobs := Extract(cards)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
}

func TestExtract_OptionalFieldsMayBeEmpty(t *testing.T) {
	card := fakeCard{fields: map[string]string{
		titleSelector:   "Go Developer",
		companySelector: "Acme",
	}}

	jobs := Extract([]Card{card})

	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].Location)
	assert.Empty(t, jobs[0].URL)
	assert.Empty(t, jobs[0].PostedDate)
}

func TestExtract_SkipsFailingCard(t *testing.T) {
	cards := make([]Card, 0, 5)
	for i := 1; i <= 5; i++ {
		if i == 3 {
			cards = append(cards, fakeCard{err: errors.New("element detached")})
			continue
		}
		cards = append(cards, newFakeCard(fmt.Sprintf("Job %d", i), "Acme"))
	}

	jobs := Extract(cards)

	require.Len(t, jobs, 4)
	titles := make([]string, len(jobs))
	for i, j := range jobs {
		titles[i] = j.Title
	}
	assert.Equal(t, []string{"Job 1", "Job 2", "Job 4", "Job 5"}, titles)
}

func TestExtract_CapsAtMaxResults(t *testing.T) {
	cards := make([]Card, 0, 40)
	for i := 1; i <= 40; i++ {
		cards = append(cards, newFakeCard(fmt.Sprintf("Job %d", i), "Acme"))
	}

	jobs := Extract(cards)

	require.Len(t, jobs, MaxResults)
	assert.Equal(t, "Job 1", jobs[0].Title)
	assert.Equal(t, "Job 25", jobs[MaxResults-1].Title)
}

func TestExtract_CapCountsRejectedCards(t *testing.T) {
	//only the first 25 cards are read, even when some of them are rejected
	cards := make([]Card, 0, 30)
	for i := 1; i <= 30; i++ {
		company := "Acme"
		if i <= 5 {
			company = ""
		}
		cards = append(cards, newFakeCard(fmt.Sprintf("Job %d", i), company))
	}

	jobs := Extract(cards)

	assert.Len(t, jobs, 20)
}

func TestExtract_EmptyInput(t *testing.T) {
	jobs := Extract(nil)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestCardsFromHTML(t *testing.T) {
	f, err := os.Open("testdata/results.html")
	require.NoError(t, err)
	defer f.Close()

	cards, err := CardsFromHTML(f)
	require.NoError(t, err)
	require.Len(t, cards, 4)

	jobs := Extract(cards)

	expected := []scraper.JobListing{
		{
			Title:      "Golang Developer",
			Company:    "Acme Corp",
			Location:   "Tel Aviv, Israel",
			URL:        "https://www.linkedin.com/jobs/view/golang-developer-at-acme-4001",
			PostedDate: "2026-10-15",
		},
		{
			Title:    "Backend Engineer",
			Company:  "Globex",
			Location: "Remote",
			URL:      "https://www.linkedin.com/jobs/view/backend-engineer-at-globex-4002",
		},
		{
			Title:      "Site Reliability Engineer",
			Company:    "Initech",
			PostedDate: "2026-10-16",
		},
	}
	assert.Equal(t, expected, jobs)
}

func TestCardsFromHTML_NoResultsList(t *testing.T) {
	f, err := os.Open("testdata/signin.html")
	require.NoError(t, err)
	defer f.Close()

	cards, err := CardsFromHTML(f)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
