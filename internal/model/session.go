package model

import (
	"strings"

	"github.com/google/uuid"
)

// SearchSession carries one search invocation's parameters through every
// pipeline stage. It is ephemeral: created per invocation, discarded after
// the response is returned. Persistence, if any, is the caller's job.
type SearchSession struct {
	ID                   string   `json:"id"`
	Location             string   `json:"location"`
	BusinessType         string   `json:"business_type"`
	BusinessTypeKeywords []string `json:"business_type_keywords"`
	LocationTerms        []string `json:"location_terms"`
	MaxResults           int      `json:"max_results"`
	IsPremium            bool     `json:"is_premium"`
}

// NewSearchSession builds a session with a fresh ID. Empty keyword or
// location-term lists fall back to the business type and location strings.
func NewSearchSession(location, businessType string, keywords, locationTerms []string, maxResults int, isPremium bool) *SearchSession {
	if len(keywords) == 0 && businessType != "" {
		keywords = []string{businessType}
	}
	if len(locationTerms) == 0 && location != "" {
		locationTerms = []string{location}
	}
	return &SearchSession{
		ID:                   uuid.NewString(),
		Location:             location,
		BusinessType:         businessType,
		BusinessTypeKeywords: keywords,
		LocationTerms:        locationTerms,
		MaxResults:           maxResults,
		IsPremium:            isPremium,
	}
}

// Validate checks the minimum inputs a search needs.
func (s *SearchSession) Validate() error {
	if strings.TrimSpace(s.Location) == "" {
		return ErrMissingLocation
	}
	if len(s.BusinessTypeKeywords) == 0 {
		return ErrMissingBusinessType
	}
	return nil
}
