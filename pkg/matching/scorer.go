// Package matching implements entity similarity scoring and candidate
// resolution for duplicate detection.
package matching

import (
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

// Scorer computes multi-algorithm string similarity. Inputs are expected to
// be normalized already; the scorer itself is stateless and safe for
// concurrent use.
type Scorer struct {
	weights models.Weights
}

// NewScorer creates a Scorer with the given aggregation weights. A zero
// Weights value falls back to the defaults.
func NewScorer(weights models.Weights) *Scorer {
	if weights.Total() == 0 {
		weights = models.DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Score compares two normalized strings with all five algorithms and returns
// the weighted aggregate. Empty input on either side short-circuits to a zero
// score with ConfidenceNone.
func (s *Scorer) Score(a, b string, usePhonetic bool) models.SimilarityScore {
	if a == "" || b == "" {
		return models.SimilarityScore{Confidence: models.ConfidenceNone}
	}

	algs := models.AlgorithmScores{
		Levenshtein: levenshteinRatio(a, b),
		JaroWinkler: matchr.JaroWinkler(a, b, false),
		TokenSort:   levenshteinRatio(sortTokens(a), sortTokens(b)),
		TokenSet:    tokenSetRatio(a, b),
	}

	phoneticUnavailable := false
	if usePhonetic {
		algs.Phonetic, phoneticUnavailable = phoneticScore(a, b)
	}

	w := s.weights
	total := w.Total()
	sum := w.Levenshtein*algs.Levenshtein +
		w.JaroWinkler*algs.JaroWinkler +
		w.TokenSort*algs.TokenSort +
		w.TokenSet*algs.TokenSet +
		w.Phonetic*algs.Phonetic

	// When no phonetic code exists for either input, the slot is unavailable
	// rather than a mismatch: its weight is excluded and the rest renormalized.
	if usePhonetic && phoneticUnavailable && total > w.Phonetic {
		sum = sum / (total - w.Phonetic)
	} else if total > 0 {
		sum = sum / total
	}

	return models.SimilarityScore{
		Algorithms:          algs,
		WeightedAverage:     sum,
		Confidence:          models.ConfidenceFor(sum),
		PhoneticUnavailable: usePhonetic && phoneticUnavailable,
	}
}

// levenshteinRatio converts edit distance to a similarity in [0,1]
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := matchr.Levenshtein(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// sortTokens rejoins the whitespace tokens of s in alphabetical order, making
// word order irrelevant to the subsequent ratio.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// tokenSetRatio scores word-multiset overlap. It compares the sorted token
// intersection against each side's full token set and keeps the best ratio,
// so a query fully contained in a candidate ("gerard" in "gerard dupont")
// scores 1.0.
func tokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var intersection, onlyA, onlyB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection = append(intersection, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(intersection)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(intersection, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	if base == "" {
		return levenshteinRatio(full1, full2)
	}

	best := levenshteinRatio(base, full1)
	if r := levenshteinRatio(base, full2); r > best {
		best = r
	}
	if r := levenshteinRatio(full1, full2); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

// phoneticScore compares phonetic encodings: equal Metaphone codes score 1.0,
// equal Soundex codes 0.8, anything else 0.0. The second return is true when
// no code could be computed for either input (e.g. digits only), which the
// aggregate treats as weight-zero instead of a mismatch.
func phoneticScore(a, b string) (float64, bool) {
	if !hasLetters(a) || !hasLetters(b) {
		return 0.0, true
	}

	primaryA, _ := matchr.DoubleMetaphone(a)
	primaryB, _ := matchr.DoubleMetaphone(b)
	if primaryA != "" && primaryA == primaryB {
		return 1.0, false
	}

	if matchr.Soundex(a) == matchr.Soundex(b) {
		return 0.8, false
	}
	return 0.0, false
}

func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
