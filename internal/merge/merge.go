// Package merge collapses raw candidates from one or more source adapters
// into a canonical lead list keyed by business identity.
package merge

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/model"
)

// Merge collapses candidates into Leads in first-seen order. Candidates
// with the same normalized name collapse into one lead unless their
// contact discriminators (email, phone, website host) actively conflict —
// that keeps two same-named franchises apart while still merging a record
// that only carries an email with one that only carries a phone. On a
// merge the first non-empty value observed per field wins, in input
// (adapter-priority) order. O(n) via a name index; no network or disk
// access.
func Merge(candidates []model.Candidate) []model.Lead {
	byName := make(map[string][]int, len(candidates))
	leads := make([]model.Lead, 0, len(candidates))

	for _, c := range candidates {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		name := NormalizeName(c.Name)

		merged := false
		for _, i := range byName[name] {
			if compatible(leads[i], c) {
				fillFromCandidate(&leads[i], c)
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		lead := model.Lead{
			Name:    strings.TrimSpace(c.Name),
			Email:   strings.ToLower(strings.TrimSpace(c.Email)),
			Phone:   strings.TrimSpace(c.Phone),
			Website: strings.TrimSpace(c.Website),
			Address: strings.TrimSpace(c.Address),
			Rating:  c.Rating,
			Source:  c.SourceLabel,
		}
		byName[name] = append(byName[name], len(leads))
		leads = append(leads, lead)
	}

	return leads
}

// compatible reports whether a candidate can merge into a lead: every
// contact discriminator present on both sides must agree.
func compatible(l model.Lead, c model.Candidate) bool {
	if l.Email != "" && c.Email != "" &&
		l.Email != strings.ToLower(strings.TrimSpace(c.Email)) {
		return false
	}
	if l.Phone != "" && c.Phone != "" &&
		digitsOnly(l.Phone) != digitsOnly(c.Phone) {
		return false
	}
	if l.Website != "" && c.Website != "" &&
		websiteHost(l.Website) != websiteHost(c.Website) {
		return false
	}
	return true
}

// fillFromCandidate copies fields the lead is still missing. Populated
// fields are never overwritten.
func fillFromCandidate(l *model.Lead, c model.Candidate) {
	if l.Email == "" {
		l.Email = strings.ToLower(strings.TrimSpace(c.Email))
	}
	if l.Phone == "" {
		l.Phone = strings.TrimSpace(c.Phone)
	}
	if l.Website == "" {
		l.Website = strings.TrimSpace(c.Website)
	}
	if l.Address == "" {
		l.Address = strings.TrimSpace(c.Address)
	}
	if l.Rating == 0 {
		l.Rating = c.Rating
	}
	if c.SourceLabel != "" && l.Source != "" && !strings.Contains(l.Source, c.SourceLabel) {
		l.Source += "+" + c.SourceLabel
	}
}

// FillFromExtraction merges extracted page fields into a lead using the
// same fill-empty-only rule, so enrichment can never reduce data quality.
// It reports whether a contact field (email, phone, website, address)
// flipped from empty to populated.
func FillFromExtraction(l *model.Lead, ex extract.Extraction) bool {
	improved := false
	if l.Email == "" && ex.Email != "" {
		l.Email = ex.Email
		improved = true
	}
	if l.Phone == "" && ex.Phone != "" {
		l.Phone = ex.Phone
		improved = true
	}
	if l.Website == "" && ex.Website != "" {
		l.Website = ex.Website
		improved = true
	}
	if l.Address == "" && ex.Address != "" {
		l.Address = ex.Address
		improved = true
	}
	if l.Description == "" {
		l.Description = ex.Description
	}
	if l.Instagram == "" {
		l.Instagram = ex.Instagram
	}
	return improved
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases, strips accents and punctuation, and collapses
// whitespace so name variants produce the same key.
func NormalizeName(name string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(name))
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// websiteHost extracts the lowercased host, dropping scheme and www.
func websiteHost(site string) string {
	site = strings.TrimSpace(site)
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return strings.ToLower(site)
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
