// Package model defines the core data types shared across the lead pipeline.
package model

// Candidate is a raw, provider-specific business record. Candidates live
// only for the duration of one search and are never returned to the caller;
// the merger collapses them into canonical Leads.
type Candidate struct {
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Website     string  `json:"website,omitempty"`
	Email       string  `json:"email,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Category    string  `json:"category,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	ProviderID  string  `json:"provider_id,omitempty"`
	SourceLabel string  `json:"source_label"`
	RawContent  string  `json:"-"` // free text for the extractor, never serialized
}

// QualityCategory buckets a lead's composite score.
type QualityCategory string

const (
	QualityExcellent QualityCategory = "excellent"
	QualityOkay      QualityCategory = "okay"
	QualityPoor      QualityCategory = "poor"
)

// Lead is the canonical merged record for one business. Once a field is
// populated it is never overwritten by a lower-confidence value; enrichment
// only fills gaps.
type Lead struct {
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Website         string          `json:"website,omitempty"`
	Address         string          `json:"address,omitempty"`
	Description     string          `json:"description,omitempty"`
	Instagram       string          `json:"instagram,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
	Source          string          `json:"source"`
	QualityScore    int             `json:"quality_score,omitempty"`
	QualityCategory QualityCategory `json:"quality_category,omitempty"`
}

// HasContactGap reports whether the lead is still missing a direct
// contact field worth enriching.
func (l Lead) HasContactGap() bool {
	return l.Email == "" || l.Phone == ""
}

// QualityReport explains how a lead was scored. Reasons are human-readable
// audit strings, one per scoring rule fired; they never drive control flow.
type QualityReport struct {
	Score               int             `json:"score"`
	Category            QualityCategory `json:"category"`
	Reasons             []string        `json:"reasons"`
	ContactCompleteness int             `json:"contact_completeness"`
	LocationRelevance   int             `json:"location_relevance"`
}

// SearchResult is the caller-facing outcome of one pipeline invocation.
type SearchResult struct {
	Success         bool   `json:"success"`
	Leads           []Lead `json:"leads"`
	TotalFound      int    `json:"total_found"`
	ReturnedCount   int    `json:"returned_count"`
	IsLimited       bool   `json:"is_limited"`
	HiddenCount     int    `json:"hidden_count"`
	CanExpandSearch bool   `json:"can_expand_search"`
	Eligible        int    `json:"eligible_for_enrichment"`
	Enriched        int    `json:"enriched_count"`
	Improved        int    `json:"improved_count"`
	RequiresUpgrade bool   `json:"requires_upgrade,omitempty"`
	Error           string `json:"error,omitempty"`
}
