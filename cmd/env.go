package main

import (
	"time"

	"github.com/sells-group/leadscout/internal/access"
	"github.com/sells-group/leadscout/internal/enrich"
	"github.com/sells-group/leadscout/internal/pipeline"
	"github.com/sells-group/leadscout/internal/score"
	"github.com/sells-group/leadscout/internal/scrape"
	"github.com/sells-group/leadscout/internal/source"
	"github.com/sells-group/leadscout/pkg/jina"
	"github.com/sells-group/leadscout/pkg/places"
)

// searchEnv bundles the wired pipeline and its collaborators.
type searchEnv struct {
	Pipeline     *pipeline.Pipeline
	Entitlements *access.Entitlements
}

// initSearchEnv wires clients, scrape chain, adapters, and pipeline from
// config. seedURL, when non-empty, adds a site-scrape source for that URL.
func initSearchEnv(seedURL string) *searchEnv {
	placesClient := places.NewClient(cfg.Places.Key,
		places.WithBaseURL(cfg.Places.BaseURL),
		places.WithRateLimit(cfg.Places.RateLimit),
	)
	jinaClient := jina.NewClient(cfg.Jina.Key,
		jina.WithBaseURL(cfg.Jina.BaseURL),
		jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL),
	)

	chain := scrape.NewChain(cfg.Scrape.MinContentLen,
		scrape.NewLocalFetcher(time.Duration(cfg.Scrape.TimeoutSecs)*time.Second, cfg.Scrape.MaxContentKB),
		scrape.NewReaderFetcher(jinaClient, cfg.Scrape.BreakerTrips, time.Duration(cfg.Scrape.BreakerCoolSec)*time.Second),
	)

	adapters := []source.Adapter{
		source.NewPlacesAdapter(placesClient, cfg.Places.MaxPages, time.Duration(cfg.Places.PageDelaySecs)*time.Second),
		source.NewWebSearchAdapter(jinaClient, cfg.Search),
	}
	if seedURL != "" {
		adapters = append(adapters, source.NewSiteScrapeAdapter(chain, seedURL))
	}

	return &searchEnv{
		Pipeline: pipeline.New(
			adapters,
			enrich.New(chain, cfg.Enrich),
			score.New(cfg.Scorer),
			access.NewLimiter(cfg.Limiter),
			cfg.Search,
		),
		Entitlements: access.NewEntitlements(cfg.Quota.FreeDailySearches),
	}
}
