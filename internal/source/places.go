package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/places"
)

// PlacesAdapter lists candidates via Google Places text search. Results are
// paginated; the API requires a short delay before a continuation token
// becomes valid, so the adapter waits between pages.
type PlacesAdapter struct {
	client    places.Client
	maxPages  int
	pageDelay time.Duration
}

// NewPlacesAdapter creates a PlacesAdapter. maxPages bounds pagination;
// pageDelay is the mandatory wait before reusing a continuation token.
func NewPlacesAdapter(client places.Client, maxPages int, pageDelay time.Duration) *PlacesAdapter {
	if maxPages <= 0 {
		maxPages = 3
	}
	if pageDelay <= 0 {
		pageDelay = 2 * time.Second
	}
	return &PlacesAdapter{
		client:    client,
		maxPages:  maxPages,
		pageDelay: pageDelay,
	}
}

func (a *PlacesAdapter) Name() string { return "google_places" }

// Search runs one paginated text search built from the session's primary
// keyword and location.
func (a *PlacesAdapter) Search(ctx context.Context, session *model.SearchSession) ([]model.Candidate, error) {
	query := fmt.Sprintf("%s in %s", session.BusinessTypeKeywords[0], session.Location)

	var candidates []model.Candidate
	pageToken := ""
	for page := 0; page < a.maxPages; page++ {
		if pageToken != "" {
			// Continuation tokens are not valid immediately.
			select {
			case <-ctx.Done():
				return candidates, eris.Wrap(ctx.Err(), "places adapter: cancelled between pages")
			case <-time.After(a.pageDelay):
			}
		}

		resp, err := a.client.TextSearch(ctx, query, pageToken)
		if err != nil {
			if len(candidates) > 0 {
				// Keep what earlier pages returned.
				zap.L().Warn("places adapter: page fetch failed, keeping partial results",
					zap.Int("page", page),
					zap.Error(err),
				)
				return candidates, nil
			}
			return nil, eris.Wrap(err, "places adapter: text search")
		}

		for _, p := range resp.Places {
			if p.DisplayName.Text == "" {
				continue
			}
			candidates = append(candidates, model.Candidate{
				Name:        p.DisplayName.Text,
				Address:     p.FormattedAddress,
				Phone:       p.Phone(),
				Website:     p.WebsiteURI,
				Rating:      p.Rating,
				Category:    p.PrimaryType,
				Latitude:    p.Location.Latitude,
				Longitude:   p.Location.Longitude,
				ProviderID:  p.ID,
				SourceLabel: a.Name(),
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
		if session.MaxResults > 0 && len(candidates) >= session.MaxResults {
			break
		}
	}

	zap.L().Debug("places adapter: search complete",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}
