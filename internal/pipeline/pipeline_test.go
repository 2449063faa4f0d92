package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/access"
	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/enrich"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/score"
	"github.com/sells-group/leadscout/internal/scrape"
	"github.com/sells-group/leadscout/internal/source"
)

// stubAdapter returns canned candidates or a canned error.
type stubAdapter struct {
	name       string
	candidates []model.Candidate
	err        error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Search(_ context.Context, _ *model.SearchSession) ([]model.Candidate, error) {
	return s.candidates, s.err
}

// deadFetcher fails every enrichment fetch so tests stay offline.
type deadFetcher struct{}

func (deadFetcher) Name() string    { return "dead" }
func (deadFetcher) Available() bool { return true }
func (deadFetcher) Fetch(_ context.Context, url string) (*scrape.Page, error) {
	return nil, eris.Errorf("dead: no content for %s", url)
}

func testPipeline(adapters ...source.Adapter) *Pipeline {
	enricher := enrich.New(scrape.NewChain(50, deadFetcher{}), config.EnrichConfig{
		MaxLeads:        5,
		BatchSize:       3,
		ItemTimeoutSecs: 1,
		BatchDelayMs:    1,
	})
	return New(
		adapters,
		enricher,
		score.New(config.ScorerConfig{}),
		access.NewLimiter(config.LimiterConfig{}),
		config.SearchConfig{TargetResults: 50, ExpandMargin: 5},
	)
}

func testSession(premium bool) *model.SearchSession {
	return model.NewSearchSession("Dublin", "cafe", nil, nil, 0, premium)
}

func namedCandidates(prefix string, n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{
			Name:        fmt.Sprintf("%s %d", prefix, i),
			SourceLabel: prefix,
		}
	}
	return out
}

func TestRun_InvalidInput(t *testing.T) {
	p := testPipeline(&stubAdapter{name: "places"})

	result := p.Run(context.Background(), &model.SearchSession{})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestRun_MergesAcrossSources(t *testing.T) {
	places := &stubAdapter{name: "places", candidates: []model.Candidate{
		{Name: "Joe's Cafe", Phone: "01 234 5678", Address: "12 Main Street, Dublin", SourceLabel: "places"},
	}}
	web := &stubAdapter{name: "websearch", candidates: []model.Candidate{
		{Name: "Joe's Cafe", Email: "info@joescafe.ie", Website: "https://joescafe.ie", SourceLabel: "websearch"},
		{Name: "Other Cafe", SourceLabel: "websearch"},
	}}
	p := testPipeline(places, web)

	result := p.Run(context.Background(), testSession(true))

	require.True(t, result.Success)
	assert.Equal(t, 2, result.TotalFound)

	var joe *model.Lead
	for i := range result.Leads {
		if result.Leads[i].Name == "Joe's Cafe" {
			joe = &result.Leads[i]
		}
	}
	require.NotNil(t, joe)
	assert.Equal(t, "01 234 5678", joe.Phone)
	assert.Equal(t, "info@joescafe.ie", joe.Email)
	assert.Equal(t, "places+websearch", joe.Source)
}

func TestRun_SourceFailureIsIsolated(t *testing.T) {
	good := &stubAdapter{name: "places", candidates: namedCandidates("Shop", 3)}
	bad := &stubAdapter{name: "websearch", err: eris.New("upstream 500")}
	p := testPipeline(good, bad)

	result := p.Run(context.Background(), testSession(true))

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalFound)
	assert.Empty(t, result.Error)
}

func TestRun_NoDataIsSuccess(t *testing.T) {
	p := testPipeline(
		&stubAdapter{name: "places"},
		&stubAdapter{name: "websearch"},
	)

	result := p.Run(context.Background(), testSession(true))

	assert.True(t, result.Success)
	assert.Empty(t, result.Leads)
	assert.Equal(t, 0, result.TotalFound)
}

func TestRun_AllSourcesErroredIsFailure(t *testing.T) {
	p := testPipeline(
		&stubAdapter{name: "places", err: eris.New("quota exceeded")},
		&stubAdapter{name: "websearch", err: eris.New("timeout")},
	)

	result := p.Run(context.Background(), testSession(true))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "all sources failed")
	assert.Contains(t, result.Error, "places")
	assert.Contains(t, result.Error, "websearch")
}

func TestRun_SortsByScoreDescending(t *testing.T) {
	adapter := &stubAdapter{name: "places", candidates: []model.Candidate{
		{Name: "Bare Listing", SourceLabel: "places"},
		{
			Name:        "Complete Cafe",
			Email:       "hello@completecafe.ie",
			Phone:       "+353 1 234 5678",
			Website:     "https://completecafe.ie",
			Address:     "5 Main Street, Dublin",
			SourceLabel: "places",
		},
	}}
	p := testPipeline(adapter)

	result := p.Run(context.Background(), testSession(true))

	require.Len(t, result.Leads, 2)
	assert.Equal(t, "Complete Cafe", result.Leads[0].Name)
	assert.GreaterOrEqual(t, result.Leads[0].QualityScore, result.Leads[1].QualityScore)
	assert.NotEmpty(t, result.Leads[0].QualityCategory)
}

func TestRun_EqualScoresKeepFirstSeenOrder(t *testing.T) {
	adapter := &stubAdapter{name: "places", candidates: namedCandidates("Twin", 4)}
	p := testPipeline(adapter)

	first := p.Run(context.Background(), testSession(true))
	second := p.Run(context.Background(), testSession(true))

	require.Len(t, first.Leads, 4)
	for i := range first.Leads {
		assert.Equal(t, fmt.Sprintf("Twin %d", i), first.Leads[i].Name)
	}
	assert.Equal(t, first.Leads, second.Leads)
}

func TestRun_FreeTierIsLimited(t *testing.T) {
	adapter := &stubAdapter{name: "places", candidates: namedCandidates("Shop", 60)}
	p := testPipeline(adapter)

	result := p.Run(context.Background(), testSession(false))

	assert.Equal(t, 60, result.TotalFound)
	// ceil(60*0.1) = 6, within [5, 25].
	assert.Equal(t, 6, result.ReturnedCount)
	assert.Len(t, result.Leads, 6)
	assert.True(t, result.IsLimited)
	assert.Equal(t, 54, result.HiddenCount)
}

func TestRun_PremiumIsNotLimited(t *testing.T) {
	adapter := &stubAdapter{name: "places", candidates: namedCandidates("Shop", 60)}
	p := testPipeline(adapter)

	result := p.Run(context.Background(), testSession(true))

	assert.Equal(t, 60, result.ReturnedCount)
	assert.False(t, result.IsLimited)
	assert.Equal(t, 0, result.HiddenCount)
}

func TestRun_CanExpandNearTarget(t *testing.T) {
	near := testPipeline(&stubAdapter{name: "places", candidates: namedCandidates("Shop", 47)})
	far := testPipeline(&stubAdapter{name: "places", candidates: namedCandidates("Shop", 10)})

	assert.True(t, near.Run(context.Background(), testSession(true)).CanExpandSearch)
	assert.False(t, far.Run(context.Background(), testSession(true)).CanExpandSearch)
}

func TestRun_EnrichmentCountsSurface(t *testing.T) {
	adapter := &stubAdapter{name: "places", candidates: []model.Candidate{
		{Name: "Gappy", Website: "http://gappy.ie", SourceLabel: "places"},
		{Name: "Done", Website: "http://done.ie", Email: "x@done.ie", Phone: "01 555 0100", SourceLabel: "places"},
	}}
	p := testPipeline(adapter)

	result := p.Run(context.Background(), testSession(true))

	assert.Equal(t, 1, result.Eligible)
	assert.Equal(t, 1, result.Enriched)
	assert.Equal(t, 0, result.Improved)
}
