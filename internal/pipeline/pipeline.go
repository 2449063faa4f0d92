// Package pipeline orchestrates one lead search end to end: source
// adapters, merge, enrichment, scoring, and tier limiting.
package pipeline

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/access"
	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/enrich"
	"github.com/sells-group/leadscout/internal/merge"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/score"
	"github.com/sells-group/leadscout/internal/source"
)

// Pipeline runs searches. Each invocation operates on its own candidate
// and lead lists; the only state shared between invocations is the
// external providers behind the adapters.
type Pipeline struct {
	adapters []source.Adapter
	enricher *enrich.Orchestrator
	scorer   *score.Scorer
	limiter  *access.Limiter

	targetResults int
	expandMargin  int
}

// New creates a Pipeline. Adapter order is significant: merged leads keep
// first-seen order by adapter registration, so earlier adapters win ties.
func New(
	adapters []source.Adapter,
	enricher *enrich.Orchestrator,
	scorer *score.Scorer,
	limiter *access.Limiter,
	cfg config.SearchConfig,
) *Pipeline {
	p := &Pipeline{
		adapters:      adapters,
		enricher:      enricher,
		scorer:        scorer,
		limiter:       limiter,
		targetResults: cfg.TargetResults,
		expandMargin:  cfg.ExpandMargin,
	}
	if p.targetResults <= 0 {
		p.targetResults = 50
	}
	if p.expandMargin <= 0 {
		p.expandMargin = 5
	}
	return p
}

// Run executes a full search for the session. The result is always a
// well-formed SearchResult; individual source failures are absorbed, and
// only invalid input or every source failing with no data produce
// Success == false.
func (p *Pipeline) Run(ctx context.Context, session *model.SearchSession) model.SearchResult {
	if err := session.Validate(); err != nil {
		return model.SearchResult{Success: false, Error: err.Error()}
	}

	log := zap.L().With(
		zap.String("session_id", session.ID),
		zap.String("location", session.Location),
		zap.String("business_type", session.BusinessType),
	)
	start := time.Now()
	log.Info("pipeline: starting lead search")

	candidates, sourceErrs := p.collect(ctx, session, log)

	leads := merge.Merge(candidates)
	log.Info("pipeline: merged candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("leads", len(leads)),
	)

	if len(leads) == 0 {
		if len(sourceErrs) > 0 && len(sourceErrs) == len(p.adapters) {
			// Every source threw and nothing came back.
			return model.SearchResult{
				Success: false,
				Leads:   []model.Lead{},
				Error:   "all sources failed: " + strings.Join(sourceErrs, "; "),
			}
		}
		// Sources worked but genuinely found nothing.
		return model.SearchResult{Success: true, Leads: []model.Lead{}}
	}

	report := p.enricher.Enrich(ctx, leads)
	leads = report.Leads

	for i := range leads {
		q := p.scorer.Score(leads[i], session.Location)
		leads[i].QualityScore = q.Score
		leads[i].QualityCategory = q.Category
	}

	// Stable sort keeps first-seen order for equal scores, so identical
	// input always yields identical output order.
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].QualityScore > leads[j].QualityScore
	})

	totalFound := len(leads)
	visible := p.limiter.Limit(leads, session.IsPremium)

	result := model.SearchResult{
		Success:         true,
		Leads:           visible,
		TotalFound:      totalFound,
		ReturnedCount:   len(visible),
		IsLimited:       len(visible) < totalFound,
		HiddenCount:     totalFound - len(visible),
		CanExpandSearch: totalFound >= p.targetResults-p.expandMargin,
		Eligible:        report.Eligible,
		Enriched:        report.Attempted,
		Improved:        report.Improved,
	}

	log.Info("pipeline: search complete",
		zap.Int("total_found", result.TotalFound),
		zap.Int("returned", result.ReturnedCount),
		zap.Bool("limited", result.IsLimited),
		zap.Int("improved", result.Improved),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result
}

// collect runs every adapter concurrently and concatenates their
// candidates in registration order. A failing adapter contributes an
// error string instead of aborting the search.
func (p *Pipeline) collect(ctx context.Context, session *model.SearchSession, log *zap.Logger) ([]model.Candidate, []string) {
	perAdapter := make([][]model.Candidate, len(p.adapters))

	var mu sync.Mutex
	var sourceErrs []string

	g, gCtx := errgroup.WithContext(ctx)
	for i, adapter := range p.adapters {
		i, adapter := i, adapter
		g.Go(func() error {
			found, err := adapter.Search(gCtx, session)
			if err != nil {
				log.Warn("pipeline: source failed",
					zap.String("source", adapter.Name()),
					zap.Error(err),
				)
				mu.Lock()
				sourceErrs = append(sourceErrs, adapter.Name()+": "+err.Error())
				mu.Unlock()
				return nil
			}
			log.Info("pipeline: source returned",
				zap.String("source", adapter.Name()),
				zap.Int("candidates", len(found)),
			)
			perAdapter[i] = found
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures are collected above

	var candidates []model.Candidate
	for _, found := range perAdapter {
		candidates = append(candidates, found...)
	}
	return candidates, sourceErrs
}
