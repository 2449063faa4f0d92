package source

import (
	"fmt"
	"strings"
)

// BuildQueryVariations constructs the search-engine query set for a search:
// the cross product of up to maxKeywords business keywords and
// maxLocationTerms location terms, five phrasings per pair, de-duplicated
// and capped at maxVariations so external-call volume stays predictable
// regardless of input size.
func BuildQueryVariations(keywords, locationTerms []string, maxKeywords, maxLocationTerms, maxVariations int) []string {
	if maxKeywords <= 0 {
		maxKeywords = 3
	}
	if maxLocationTerms <= 0 {
		maxLocationTerms = 3
	}
	if maxVariations <= 0 {
		maxVariations = 20
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	if len(locationTerms) > maxLocationTerms {
		locationTerms = locationTerms[:maxLocationTerms]
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}

	for _, kw := range keywords {
		for _, loc := range locationTerms {
			add(fmt.Sprintf("%s in %s", kw, loc))
			add(fmt.Sprintf("%s %s", kw, loc))
			add(fmt.Sprintf("%s near %s", kw, loc))
			add(fmt.Sprintf("best %s in %s", kw, loc))
			add(fmt.Sprintf("%s in %s", pluralize(kw), loc))
			if len(out) >= maxVariations {
				return out[:maxVariations]
			}
		}
	}
	return out
}

// pluralize applies naive English pluralization; queries only need to look
// like what a person would type, not be grammatically perfect.
func pluralize(word string) string {
	word = strings.TrimSpace(word)
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "ch"), strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ies"
	default:
		return word + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
