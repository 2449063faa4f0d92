// Package extract pulls contact fields out of arbitrary unstructured text
// using ordered pattern-rule tables. Extraction is pure and never panics:
// malformed input yields a zero Extraction.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extraction holds the fields recovered from one text blob. Empty string
// means the field was not found.
type Extraction struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
}

// IsZero reports whether nothing was extracted.
func (e Extraction) IsZero() bool {
	return e == Extraction{}
}

const maxDescriptionLen = 200

// Extract runs every field's rule table over text. First matching rule
// family wins per field; fields with no match stay empty.
func Extract(text string) Extraction {
	if strings.TrimSpace(text) == "" {
		return Extraction{}
	}

	var ex Extraction
	ex.Email = firstMatch(emailRules, text)
	ex.Phone = firstMatch(phoneRules, text)
	ex.Website = firstMatch(websiteRules, text)
	ex.Address = firstMatch(addressRules, text)
	ex.Instagram = firstMatch(instagramRules, text)
	ex.Description = extractDescription(text)
	return ex
}

// firstMatch walks an ordered rule table and returns the first accepted
// value. First-match-wins, not best-match.
func firstMatch(rules []rule, text string) string {
	for _, r := range rules {
		if v, ok := r.apply(text); ok {
			return v
		}
	}
	return ""
}

var metaDescRe = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)

// extractDescription prefers an HTML meta description, then falls back to
// the first paragraph-like text block. Results are truncated to 200 chars.
func extractDescription(text string) string {
	// Meta tag via goquery when the input parses as HTML.
	if strings.Contains(text, "<meta") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
				if d := truncate(strings.TrimSpace(content)); d != "" {
					return d
				}
			}
		}
		// Regex fallback for fragments goquery normalizes away.
		if m := metaDescRe.FindStringSubmatch(text); len(m) > 1 {
			if d := truncate(strings.TrimSpace(m[1])); d != "" {
				return d
			}
		}
	}

	return truncate(firstParagraph(text))
}

// firstParagraph returns the first block of plain prose: at least 40 chars,
// not dominated by markup or URLs.
func firstParagraph(text string) string {
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if len(block) < 40 {
			continue
		}
		if strings.HasPrefix(block, "<") || strings.HasPrefix(block, "http") {
			continue
		}
		return strings.Join(strings.Fields(block), " ")
	}
	return ""
}

func truncate(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	return s[:maxDescriptionLen]
}
