// Package normalizers provides text canonicalization for entity matching
package normalizers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CountryRule parameterizes the phone country-code rewrite so locale
// adaptation does not require code changes.
type CountryRule struct {
	CountryCode string // international prefix, e.g. "33"
	TrunkPrefix string // local dialing prefix, e.g. "0"
}

// Config holds the normalization tables
type Config struct {
	LegalSuffixes []string
	Phone         CountryRule
}

// DefaultConfig returns the built-in legal-suffix set and the French phone
// rewrite rule.
func DefaultConfig() Config {
	return Config{
		LegalSuffixes: []string{
			"inc", "corp", "ltd", "llc", "sarl", "sa", "sas", "gmbh", "plc",
			"pty", "ag", "nv", "bv", "eurl", "srl", "snc", "co",
			"limited", "corporation", "company", "incorporated",
		},
		Phone: CountryRule{CountryCode: "33", TrunkPrefix: "0"},
	}
}

// Normalizer applies the configured canonicalization rules. It is read-only
// after construction and safe for concurrent use.
type Normalizer struct {
	suffixes map[string]struct{}
	phone    CountryRule
}

// New creates a Normalizer from the given config
func New(cfg Config) *Normalizer {
	suffixes := make(map[string]struct{}, len(cfg.LegalSuffixes))
	for _, s := range cfg.LegalSuffixes {
		suffixes[strings.ToLower(s)] = struct{}{}
	}
	return &Normalizer{
		suffixes: suffixes,
		phone:    cfg.Phone,
	}
}

// stripMarks decomposes to NFD and drops nonspacing combining marks,
// turning "é" into "e".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, strips combining diacritics, collapses whitespace
// runs to single spaces and trims. Idempotent.
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return collapseWhitespace(s)
}

// NormalizeCompanyName normalizes, replaces punctuation with spaces and drops
// legal-suffix tokens (inc, sarl, gmbh, ...). Dotted abbreviations are matched
// against the suffix set in collapsed form, so "s.a.s." drops like "sas". If
// every token is a legal suffix, the plain normalized string is returned
// instead of an empty one.
func (n *Normalizer) NormalizeCompanyName(s string) string {
	normalized := n.Normalize(s)

	kept := make([]string, 0, 4)
	for _, token := range strings.Fields(normalized) {
		collapsed := strings.Map(dropPunct, token)
		if _, isSuffix := n.suffixes[collapsed]; isSuffix {
			continue
		}
		for _, sub := range strings.Fields(strings.Map(spacePunct, token)) {
			if _, isSuffix := n.suffixes[sub]; !isSuffix {
				kept = append(kept, sub)
			}
		}
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}

func dropPunct(r rune) rune {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return -1
	}
	return r
}

func spacePunct(r rune) rune {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return ' '
	}
	return r
}

// NormalizePhone keeps digits only and rewrites a leading country code to the
// local trunk-prefixed form ("+33 6 12 34 56 78" -> "0612345678").
func (n *Normalizer) NormalizePhone(s string) string {
	digits := DigitsOnly(s)
	cc := n.phone.CountryCode
	if cc != "" && strings.HasPrefix(digits, cc) && len(digits) > len(cc) {
		return n.phone.TrunkPrefix + digits[len(cc):]
	}
	return digits
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DigitsOnly keeps only digit characters
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseWhitespace reduces internal whitespace runs to single spaces and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
