package source

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/jina"
)

// WebSearchAdapter lists candidates via a generic web-search provider.
// It issues a bounded set of query variations and pre-fills contact fields
// by running the extractor over result snippets.
type WebSearchAdapter struct {
	client jina.Client
	cfg    config.SearchConfig
}

// NewWebSearchAdapter creates a WebSearchAdapter.
func NewWebSearchAdapter(client jina.Client, cfg config.SearchConfig) *WebSearchAdapter {
	return &WebSearchAdapter{client: client, cfg: cfg}
}

func (a *WebSearchAdapter) Name() string { return "web_search" }

// Search runs every query variation, tolerating per-query failures. The
// adapter errors only when every variation failed.
func (a *WebSearchAdapter) Search(ctx context.Context, session *model.SearchSession) ([]model.Candidate, error) {
	queries := BuildQueryVariations(
		session.BusinessTypeKeywords,
		session.LocationTerms,
		a.cfg.MaxKeywords,
		a.cfg.MaxLocationTerms,
		a.cfg.MaxVariations,
	)

	var (
		candidates []model.Candidate
		seenURL    = make(map[string]struct{})
		failures   int
		lastErr    error
	)

	for _, q := range queries {
		resp, err := a.client.Search(ctx, q)
		if err != nil {
			failures++
			lastErr = err
			zap.L().Debug("websearch adapter: query failed",
				zap.String("query", q),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		for _, r := range resp.Data {
			if r.Title == "" || r.URL == "" {
				continue
			}
			if _, dup := seenURL[r.URL]; dup {
				continue
			}
			seenURL[r.URL] = struct{}{}

			raw := r.Content
			if r.Description != "" {
				raw = r.Description + "\n" + raw
			}
			ex := extract.Extract(raw)

			candidates = append(candidates, model.Candidate{
				Name:        cleanTitle(r.Title),
				Website:     r.URL,
				Email:       ex.Email,
				Phone:       ex.Phone,
				Address:     ex.Address,
				SourceLabel: a.Name(),
				RawContent:  raw,
			})
		}
	}

	if len(candidates) == 0 && failures == len(queries) && lastErr != nil {
		return nil, eris.Wrap(lastErr, "websearch adapter: all queries failed")
	}

	zap.L().Debug("websearch adapter: search complete",
		zap.Int("queries", len(queries)),
		zap.Int("failed_queries", failures),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// cleanTitle strips common result-title suffixes ("Joe's Cafe | Home").
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " – ", " - ", " — " } {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return strings.TrimSpace(title)
}
