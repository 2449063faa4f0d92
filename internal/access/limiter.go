// Package access enforces entitlement tiers: result-set truncation for
// free callers and the daily search quota.
package access

import (
	"math"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

// Limiter truncates a sorted lead list according to the caller's tier.
// The policy is one canonical, configurable set of bounds for every call
// site, so the visible/hidden boundary is deterministic.
type Limiter struct {
	fraction   float64
	minVisible int
	maxVisible int
}

// NewLimiter creates a Limiter from config, applying defaults for unset
// values (fraction 0.1, bounds 5..25).
func NewLimiter(cfg config.LimiterConfig) *Limiter {
	l := &Limiter{
		fraction:   cfg.VisibleFraction,
		minVisible: cfg.MinVisible,
		maxVisible: cfg.MaxVisible,
	}
	if l.fraction <= 0 {
		l.fraction = 0.1
	}
	if l.minVisible <= 0 {
		l.minVisible = 5
	}
	if l.maxVisible < l.minVisible {
		l.maxVisible = 25
	}
	return l
}

// Limit returns the visible prefix of sortedLeads for the caller's tier.
// Premium callers receive the full list unmodified. Free callers receive
// the top clamp(ceil(n*fraction), min, max) leads; because the input is
// already sorted by score, the same input always yields the same prefix
// and the caller can compute how many leads were hidden without re-running
// the pipeline.
func (l *Limiter) Limit(sortedLeads []model.Lead, isPremium bool) []model.Lead {
	if isPremium {
		return sortedLeads
	}

	n := len(sortedLeads)
	if n == 0 {
		return sortedLeads
	}

	visible := int(math.Ceil(float64(n) * l.fraction))
	if visible < l.minVisible {
		visible = l.minVisible
	}
	if visible > l.maxVisible {
		visible = l.maxVisible
	}
	if visible > n {
		visible = n
	}

	return sortedLeads[:visible]
}

// VisibleCount reports how many of n sorted leads a tier may see.
func (l *Limiter) VisibleCount(n int, isPremium bool) int {
	if isPremium || n == 0 {
		return n
	}
	return len(l.Limit(make([]model.Lead, n), false))
}
