package extract

import (
	"regexp"
	"strings"
)

// rule pairs a pattern with its acceptance check and normalizer. Rules for
// a field are tried in priority order; the first rule producing an accepted
// match wins the field. The extraction policy is this table, not code.
type rule struct {
	name      string
	re        *regexp.Regexp
	group     int // submatch index to take; 0 = whole match
	validate  func(string) bool
	normalize func(string) string
}

// apply runs the rule against text and returns the accepted value, if any.
func (r rule) apply(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil || r.group >= len(m) {
		return "", false
	}
	v := strings.TrimSpace(m[r.group])
	if r.normalize != nil {
		v = r.normalize(v)
	}
	if v == "" {
		return "", false
	}
	if r.validate != nil && !r.validate(v) {
		return "", false
	}
	return v, true
}

const emailAtom = `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`

// validEmail accepts values that look like a deliverable address: must
// contain "@" and ".", must not contain whitespace.
func validEmail(v string) bool {
	return strings.Contains(v, "@") && strings.Contains(v, ".") &&
		!strings.ContainsAny(v, " \t\n\r")
}

var emailRules = []rule{
	{
		name:      "bare",
		re:        regexp.MustCompile(emailAtom),
		validate:  validEmail,
		normalize: strings.ToLower,
	},
	{
		name:      "mailto",
		re:        regexp.MustCompile(`(?i)mailto:(` + emailAtom + `)`),
		group:     1,
		validate:  validEmail,
		normalize: strings.ToLower,
	},
	{
		name:      "labelled",
		re:        regexp.MustCompile(`(?i)(?:email|contact|info|enquiries|bookings)[\s:：\-]+(` + emailAtom + `)`),
		group:     1,
		validate:  validEmail,
		normalize: strings.ToLower,
	},
	{
		name:      "quoted",
		re:        regexp.MustCompile(`["'\[\(<](` + emailAtom + `)["'\]\)>]`),
		group:     1,
		validate:  validEmail,
		normalize: strings.ToLower,
	},
}

// validPhone accepts 10–20 characters after trimming, so well-formed
// numbers pass and short digit fragments do not.
func validPhone(v string) bool {
	return len(v) >= 10 && len(v) <= 20
}

// Region-aware patterns come first so well-formatted international numbers
// win over loosely matched digit runs.
var phoneRules = []rule{
	{
		name:     "intl_prefix",
		re:       regexp.MustCompile(`\+\d{1,3}[\s\-.]?\(?\d{1,4}\)?[\s\-.]?\d{3,4}[\s\-.]?\d{3,5}`),
		validate: validPhone,
	},
	{
		name:     "national",
		re:       regexp.MustCompile(`\(?0\d{1,3}\)?[\s\-.]?\d{3,4}[\s\-.]?\d{3,5}`),
		validate: validPhone,
	},
	{
		name:     "digit_run",
		re:       regexp.MustCompile(`[\d][\d\s\-.()]{8,18}[\d]`),
		validate: validPhone,
	},
}

// validWebsite accepts plausible URL lengths only.
func validWebsite(v string) bool {
	return len(v) >= 10 && len(v) <= 200
}

// ensureScheme prepends https:// to scheme-less matches.
func ensureScheme(v string) string {
	v = strings.TrimRight(v, `.,;)"'`)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return "https://" + v
}

var websiteRules = []rule{
	{
		name:      "url",
		re:        regexp.MustCompile(`https?://[^\s"'<>\)]+`),
		validate:  validWebsite,
		normalize: ensureScheme,
	},
	{
		name:      "bare_www",
		re:        regexp.MustCompile(`(?i)\bwww\.[a-z0-9\-]+\.[a-z]{2,}(?:/[^\s"'<>]*)?`),
		validate:  validWebsite,
		normalize: ensureScheme,
	},
	{
		name:      "labelled",
		re:        regexp.MustCompile(`(?i)website[\s:：\-]+([a-z0-9\-./:]+\.[a-z]{2,}[^\s"'<>]*)`),
		group:     1,
		validate:  validWebsite,
		normalize: ensureScheme,
	},
}

var addressRules = []rule{
	{
		// Street suffix followed by a postal code somewhere on the line.
		name: "street_postal",
		re: regexp.MustCompile(`(?i)\d+[\w\s,.\-]{2,60}?\b(?:street|st\.|avenue|ave\.?|road|rd\.?|boulevard|blvd\.?|lane|ln\.?|drive|dr\.?|way|place|pl\.?|court|ct\.?|quay|terrace|square)\b[\w\s,.\-]{0,60}\b\d{5}(?:-\d{4})?\b`),
	},
	{
		// Generic "text, XX 12345" fallback.
		name: "region_code",
		re:   regexp.MustCompile(`[A-Za-z0-9][\w\s.\-]{3,60},\s*[A-Z]{2}[,\s]+\d{5}(?:-\d{4})?`),
	},
}

// validHandle enforces Instagram's 1–29 character handle limit.
func validHandle(v string) bool {
	return len(v) >= 1 && len(v) <= 29
}

func trimHandle(v string) string {
	return strings.TrimRight(strings.TrimPrefix(v, "@"), "/")
}

var instagramRules = []rule{
	{
		name:      "url",
		re:        regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/([a-zA-Z0-9._]+)`),
		group:     1,
		validate:  validHandle,
		normalize: trimHandle,
	},
	{
		name:      "bare",
		re:        regexp.MustCompile(`(?i)instagram\.com/([a-zA-Z0-9._]+)`),
		group:     1,
		validate:  validHandle,
		normalize: trimHandle,
	},
	{
		name:      "mention",
		re:        regexp.MustCompile(`(?i)@([a-zA-Z0-9._]+)[^\n]{0,40}instagram`),
		group:     1,
		validate:  validHandle,
		normalize: trimHandle,
	},
}
