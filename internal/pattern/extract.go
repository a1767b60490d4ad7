// internal/pattern/extract.go
//
// Shared field extractors for campaign text. Every call site in the ingestion
// and aggregation pipeline uses these functions; there is deliberately no
// second copy of any of these rules anywhere else in the codebase.
package pattern

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tokenRe     = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	productIDRe = regexp.MustCompile(`\b\d{5,6}\b`)
	discountRe  = regexp.MustCompile(`(\d+)%\s*(?i:off)`)
	promoRe     = regexp.MustCompile(`(?i:code)[:\s]+([A-Z0-9]+)`)
	digitRunRe  = regexp.MustCompile(`\d+`)
)

// Options control the promo-code fallback. Personalization tokens such as
// USERNAME or DAY look like promo codes (short, upper-case) but never are;
// exclusions filter them out of the fallback scan.
type Options struct {
	PromoCodeExclusions []string
}

// DefaultPromoCodeExclusions covers the tokens seen in the historical sheets.
var DefaultPromoCodeExclusions = []string{"USERNAME", "NAME", "DAY"}

// Tokens returns every {{...}} personalization token in order of appearance,
// case preserved, duplicates included. Callers deduplicate at merge time.
func Tokens(text string) []string {
	matches := tokenRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

// ProductIDs returns the deduplicated set of maximal 5-6 digit runs in text,
// in order of first appearance.
func ProductIDs(text string) []string {
	matches := productIDRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	ids := make([]string, 0, len(matches))
	for _, id := range matches {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Discount returns the digit string of the first "<digits>% off" occurrence
// (case-insensitive "off"), or "" when absent. "40% discount" is not a match.
func Discount(text string) string {
	m := discountRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// PromoCode returns the first code introduced by the word "code" (any case,
// followed by colon/space). When that pattern is absent it falls back to the
// first personalization token that is at most 10 characters, fully upper-case,
// and not excluded by opts.
func PromoCode(text string, opts Options) string {
	if m := promoRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, token := range Tokens(text) {
		if len(token) > 10 || !isUpper(token) {
			continue
		}
		if containsAny(token, opts.PromoCodeExclusions) {
			continue
		}
		return token
	}
	return ""
}

// ContactNumber returns the first maximal run of exactly 10 digits in text.
// Runs of any other length, including 9 and 11 digits, do not match.
func ContactNumber(text string) string {
	for _, run := range digitRunRe.FindAllString(text, -1) {
		if len(run) == 10 {
			return run
		}
	}
	return ""
}

// isUpper reports whether s contains at least one letter and no lower-case
// letters. Digits and punctuation are allowed, so "SSC40" counts.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
