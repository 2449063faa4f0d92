package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scrape"
)

// SiteScrapeAdapter turns a single seed URL (e.g. a directory page the
// caller already knows about) into candidates by fetching it through the
// shared channel chain and extracting contact fields from its text.
type SiteScrapeAdapter struct {
	chain *scrape.Chain
	url   string
}

// NewSiteScrapeAdapter creates a SiteScrapeAdapter for one seed URL.
func NewSiteScrapeAdapter(chain *scrape.Chain, url string) *SiteScrapeAdapter {
	return &SiteScrapeAdapter{chain: chain, url: url}
}

func (a *SiteScrapeAdapter) Name() string { return "site_scrape" }

// Search fetches the seed URL and yields at most one candidate carrying
// whatever the extractor recovered plus the raw text for later passes.
func (a *SiteScrapeAdapter) Search(ctx context.Context, _ *model.SearchSession) ([]model.Candidate, error) {
	page, err := a.chain.Fetch(ctx, a.url)
	if err != nil {
		return nil, eris.Wrap(err, "sitescrape adapter: fetch")
	}

	ex := extract.Extract(page.Text)
	name := page.Title
	if name == "" {
		name = a.url
	}

	return []model.Candidate{{
		Name:        cleanTitle(name),
		Email:       ex.Email,
		Phone:       ex.Phone,
		Website:     orDefault(ex.Website, page.URL),
		Address:     ex.Address,
		SourceLabel: a.Name(),
		RawContent:  page.Text,
	}}, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
