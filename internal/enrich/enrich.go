// Package enrich fills missing contact fields on merged leads by fetching
// each business's website and extracting from its text, under batch
// concurrency, per-item deadlines, and inter-batch delays.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/merge"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scrape"
)

// Report carries the enriched lead list plus audit counts. The list always
// has the same length and order as the input; no lead is ever dropped.
type Report struct {
	Leads     []model.Lead
	Eligible  int // leads matching the selection rule
	Attempted int // eligible leads actually fetched (capped)
	Improved  int // leads where a contact field flipped empty to set
	Skipped   int // eligible leads beyond the per-invocation cap
}

// Orchestrator runs the enrichment pass over a lead list.
type Orchestrator struct {
	chain       *scrape.Chain
	maxLeads    int
	batchSize   int
	itemTimeout time.Duration
	batchDelay  time.Duration
}

// New creates an Orchestrator using the shared fetch chain.
func New(chain *scrape.Chain, cfg config.EnrichConfig) *Orchestrator {
	o := &Orchestrator{
		chain:       chain,
		maxLeads:    cfg.MaxLeads,
		batchSize:   cfg.BatchSize,
		itemTimeout: time.Duration(cfg.ItemTimeoutSecs) * time.Second,
		batchDelay:  time.Duration(cfg.BatchDelayMs) * time.Millisecond,
	}
	if o.maxLeads <= 0 {
		o.maxLeads = 5
	}
	if o.batchSize <= 0 {
		o.batchSize = 3
	}
	if o.itemTimeout <= 0 {
		o.itemTimeout = 8 * time.Second
	}
	if o.batchDelay < 0 {
		o.batchDelay = 0
	}
	return o
}

// eligible reports whether a lead is worth an enrichment fetch: it has a
// website to fetch and is still missing email or phone.
func eligible(l model.Lead) bool {
	return l.Website != "" && (l.Email == "" || l.Phone == "")
}

// Enrich processes eligible leads in fixed-size batches. Each item carries
// an independent deadline; expiry resolves that item to its original,
// unenriched value and never fails the batch. A fixed delay between
// batches respects provider rate limits.
func (o *Orchestrator) Enrich(ctx context.Context, leads []model.Lead) Report {
	report := Report{Leads: leads}
	if len(leads) == 0 {
		return report
	}

	var targets []int // indexes into leads
	for i, l := range leads {
		if !eligible(l) {
			continue
		}
		report.Eligible++
		if len(targets) < o.maxLeads {
			targets = append(targets, i)
		} else {
			report.Skipped++
		}
	}
	if len(targets) == 0 {
		return report
	}

	extractions := make(map[int]extract.Extraction, len(targets))

	for start := 0; start < len(targets); start += o.batchSize {
		if ctx.Err() != nil {
			break
		}

		end := min(start+o.batchSize, len(targets))
		batch := targets[start:end]

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(o.batchSize)

		results := make([]extract.Extraction, len(batch))
		for bi, li := range batch {
			bi := bi
			lead := leads[li]
			g.Go(func() error {
				results[bi] = o.enrichOne(gCtx, lead)
				return nil
			})
		}
		_ = g.Wait()

		for bi, li := range batch {
			extractions[li] = results[bi]
		}
		report.Attempted += len(batch)

		// Inter-batch delay, skipped after the final batch.
		if end < len(targets) && o.batchDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(o.batchDelay):
			}
		}
	}

	for li, ex := range extractions {
		if ex.IsZero() {
			continue
		}
		if merge.FillFromExtraction(&report.Leads[li], ex) {
			report.Improved++
		}
	}

	zap.L().Info("enrich: pass complete",
		zap.Int("leads", len(leads)),
		zap.Int("eligible", report.Eligible),
		zap.Int("attempted", report.Attempted),
		zap.Int("improved", report.Improved),
		zap.Int("skipped", report.Skipped),
	)
	return report
}

// enrichOne fetches one lead's website under its own deadline and extracts
// contact fields. Every failure mode resolves to an empty extraction; the
// lead passes through unchanged.
func (o *Orchestrator) enrichOne(ctx context.Context, lead model.Lead) extract.Extraction {
	ictx, cancel := context.WithTimeout(ctx, o.itemTimeout)
	defer cancel()

	page, err := o.chain.Fetch(ictx, lead.Website)
	if err != nil {
		zap.L().Debug("enrich: fetch produced nothing usable",
			zap.String("lead", lead.Name),
			zap.String("website", lead.Website),
			zap.Error(err),
		)
		return extract.Extraction{}
	}

	return extract.Extract(page.Text)
}
