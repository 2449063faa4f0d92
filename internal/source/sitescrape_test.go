package source

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/scrape"
)

type pageFetcher struct {
	page *scrape.Page
	err  error
}

func (p *pageFetcher) Name() string    { return "stub" }
func (p *pageFetcher) Available() bool { return true }

func (p *pageFetcher) Fetch(_ context.Context, _ string) (*scrape.Page, error) {
	return p.page, p.err
}

func TestSiteScrape_ExtractsCandidateFromPage(t *testing.T) {
	fetcher := &pageFetcher{page: &scrape.Page{
		URL:   "https://joescafe.ie",
		Title: "Joe's Cafe | Contact",
		Text: "Welcome to Joe's Cafe. Reach us at info@joescafe.ie or call +353 1 234 5678. " +
			"We are open every day from early morning until late evening, serving coffee and food.",
		Channel: "stub",
	}}
	a := NewSiteScrapeAdapter(scrape.NewChain(10, fetcher), "https://joescafe.ie")

	candidates, err := a.Search(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Joe's Cafe", candidates[0].Name)
	assert.Equal(t, "info@joescafe.ie", candidates[0].Email)
	assert.NotEmpty(t, candidates[0].Phone)
	assert.Equal(t, "https://joescafe.ie", candidates[0].Website)
	assert.Equal(t, "site_scrape", candidates[0].SourceLabel)
	assert.NotEmpty(t, candidates[0].RawContent)
}

func TestSiteScrape_FetchFailure(t *testing.T) {
	fetcher := &pageFetcher{err: eris.New("unreachable")}
	a := NewSiteScrapeAdapter(scrape.NewChain(10, fetcher), "https://down.ie")

	candidates, err := a.Search(context.Background(), nil)

	assert.Error(t, err)
	assert.Empty(t, candidates)
}

func TestSiteScrape_FallsBackToURLForName(t *testing.T) {
	fetcher := &pageFetcher{page: &scrape.Page{
		URL:     "https://untitled.ie",
		Text:    "A page with no title element but enough text content to be considered usable by the chain.",
		Channel: "stub",
	}}
	a := NewSiteScrapeAdapter(scrape.NewChain(10, fetcher), "https://untitled.ie")

	candidates, err := a.Search(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://untitled.ie", candidates[0].Name)
}
