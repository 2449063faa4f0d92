package scrape

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Chain tries fetch channels in priority order, returning the first usable
// result. It is the single fallback executor shared by every component that
// needs page content; adapters never carry their own retry loops.
type Chain struct {
	fetchers      []Fetcher
	minContentLen int
}

// NewChain creates a Chain. Fetchers are tried in order; a result counts as
// usable only if its text meets minContentLen after trimming.
func NewChain(minContentLen int, fetchers ...Fetcher) *Chain {
	if minContentLen <= 0 {
		minContentLen = 100
	}
	return &Chain{
		fetchers:      fetchers,
		minContentLen: minContentLen,
	}
}

// Fetch walks the channel list for one URL. Empty or too-short content is
// treated the same as a channel error: fall through to the next channel.
// All channels failing is reported as an error; callers treat it as "this
// page produced nothing usable", never as a pipeline failure.
func (c *Chain) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if !strings.HasPrefix(targetURL, "http://") && !strings.HasPrefix(targetURL, "https://") {
		targetURL = "https://" + targetURL
	}

	var lastErr error
	for _, f := range c.fetchers {
		if !f.Available() {
			continue
		}
		page, err := f.Fetch(ctx, targetURL)
		if err != nil {
			zap.L().Debug("scrape: channel failed, trying next",
				zap.String("channel", f.Name()),
				zap.String("url", targetURL),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if page == nil || len(strings.TrimSpace(page.Text)) < c.minContentLen {
			zap.L().Debug("scrape: channel returned thin content, trying next",
				zap.String("channel", f.Name()),
				zap.String("url", targetURL),
			)
			continue
		}
		return page, nil
	}

	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "scrape: all channels failed")
	}
	return nil, eris.Errorf("scrape: no usable content for url: %s", targetURL)
}
