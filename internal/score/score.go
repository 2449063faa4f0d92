// Package score rates each lead for contact completeness and geographic
// relevance to the searched location. Scoring is deterministic and pure;
// the weights and thresholds are tunable configuration.
package score

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

// Scorer computes quality reports for leads.
type Scorer struct {
	cfg config.ScorerConfig
}

// New creates a Scorer, applying defaults for unset policy knobs.
func New(cfg config.ScorerConfig) *Scorer {
	if cfg.ContactWeight <= 0 {
		cfg.ContactWeight = 0.7
	}
	if cfg.LocationWeight <= 0 {
		cfg.LocationWeight = 0.3
	}
	if cfg.ExcellentThreshold <= 0 {
		cfg.ExcellentThreshold = 80
	}
	if cfg.OkayThreshold <= 0 {
		cfg.OkayThreshold = 50
	}
	if len(cfg.GenericDomains) == 0 {
		cfg.GenericDomains = []string{
			"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "icloud.com",
		}
	}
	return &Scorer{cfg: cfg}
}

// Score rates one lead against the searched location. Every rule that
// fires appends one human-readable reason; reasons are audit strings and
// never drive control flow.
func (s *Scorer) Score(lead model.Lead, location string) model.QualityReport {
	report := model.QualityReport{}

	contact := s.contactScore(lead, &report)
	loc := s.locationScore(lead, location, &report)

	report.ContactCompleteness = contact
	report.LocationRelevance = loc

	composite := s.cfg.ContactWeight*float64(contact) + s.cfg.LocationWeight*float64(loc)
	report.Score = clamp(int(math.Round(composite)), 0, 100)

	switch {
	case report.Score >= s.cfg.ExcellentThreshold:
		report.Category = model.QualityExcellent
	case report.Score >= s.cfg.OkayThreshold:
		report.Category = model.QualityOkay
	default:
		report.Category = model.QualityPoor
	}

	return report
}

var emailSyntaxRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Well-formatted phone shapes: "(NNN) NNN-NNNN" or a spaced international
// number. Loose digit runs still earn base points, just not the bonus.
var formattedPhoneRes = []*regexp.Regexp{
	regexp.MustCompile(`^\(\d{3}\)\s?\d{3}[\s\-]\d{4}$`),
	regexp.MustCompile(`^\+\d{1,3}(?:[\s\-]\d{1,4}){2,4}$`),
}

// contactScore applies the completeness point table, clamped to [0,100].
func (s *Scorer) contactScore(lead model.Lead, report *model.QualityReport) int {
	points := 0

	if emailSyntaxRe.MatchString(lead.Email) {
		points += 35
		report.Reasons = append(report.Reasons, "email present and syntactically valid (+35)")
		if !s.genericDomain(lead.Email) {
			points += 5
			report.Reasons = append(report.Reasons, "email on a business domain (+5)")
		}
	}

	digits := digitCount(lead.Phone)
	if digits >= 10 && digits <= 15 {
		points += 30
		report.Reasons = append(report.Reasons, "phone present with plausible length (+30)")
		if wellFormattedPhone(lead.Phone) {
			points += 5
			report.Reasons = append(report.Reasons, "phone is well formatted (+5)")
		}
	}

	if u, err := url.Parse(lead.Website); err == nil && u.Host != "" {
		points += 25
		report.Reasons = append(report.Reasons, "website parses as a URL (+25)")
		if u.Scheme == "https" {
			points += 3
			report.Reasons = append(report.Reasons, "website uses https (+3)")
		}
	}

	if len(lead.Address) > 10 {
		points += 10
		report.Reasons = append(report.Reasons, "address present (+10)")
	}

	if lead.Instagram != "" {
		points += 5
		report.Reasons = append(report.Reasons, "social handle present (+5)")
	}

	return clamp(points, 0, 100)
}

// locationScore rates how well the lead's address matches the searched
// location, starting from a neutral base of 50.
func (s *Scorer) locationScore(lead model.Lead, location string, report *model.QualityReport) int {
	if strings.TrimSpace(lead.Address) == "" {
		report.Reasons = append(report.Reasons, "no address: location relevance unverifiable (fixed 30)")
		return 30
	}

	addr := strings.ToLower(lead.Address)
	city := cityToken(location)
	points := 50

	switch {
	case city != "" && containsWord(addr, city):
		points += 30
		report.Reasons = append(report.Reasons, fmt.Sprintf("address mentions searched city %q (+30)", city))
		if sub := s.matchToken(addr, s.cfg.SubAreas[city]); sub != "" {
			points += 20
			report.Reasons = append(report.Reasons, fmt.Sprintf("address mentions target sub-area %q (+20)", sub))
		}
	case city != "":
		if near := s.matchToken(addr, s.cfg.NearbyAreas[city]); near != "" {
			points += 10
			report.Reasons = append(report.Reasons, fmt.Sprintf("address in known nearby area %q (+10)", near))
		} else {
			points -= 20
			report.Reasons = append(report.Reasons, "address matches neither city nor nearby areas (-20)")
		}
	}

	if s.cfg.CountryToken != "" && containsWord(addr, strings.ToLower(s.cfg.CountryToken)) {
		points += 10
		report.Reasons = append(report.Reasons, "address mentions target country (+10)")
	}

	return clamp(points, 0, 100)
}

// matchToken returns the first token contained in addr as a whole word.
func (s *Scorer) matchToken(addr string, tokens []string) string {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if containsWord(addr, strings.ToLower(t)) {
			return t
		}
	}
	return ""
}

func (s *Scorer) genericDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, g := range s.cfg.GenericDomains {
		if domain == strings.ToLower(g) {
			return true
		}
	}
	return false
}

func wellFormattedPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	for _, re := range formattedPhoneRes {
		if re.MatchString(phone) {
			return true
		}
	}
	return false
}

// cityToken extracts the primary locality token from the searched
// location ("Dublin 2, Ireland" yields "dublin").
func cityToken(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	if idx := strings.IndexAny(location, ","); idx >= 0 {
		location = location[:idx]
	}
	fields := strings.Fields(location)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// containsWord checks if text contains needle as a whole word (bounded by
// non-alphanumeric characters or string boundaries). Both arguments should
// already be lowercased.
func containsWord(text, needle string) bool {
	if needle == "" || text == "" {
		return false
	}
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		absIdx := start + idx
		endIdx := absIdx + len(needle)

		leftOK := absIdx == 0 || !isAlphaNum(text[absIdx-1])
		rightOK := endIdx == len(text) || !isAlphaNum(text[endIdx])

		if leftOK && rightOK {
			return true
		}
		start = absIdx + 1
	}
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
