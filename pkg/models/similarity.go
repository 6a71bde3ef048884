package models

// Confidence is a discretized bucket derived from a weighted similarity score
type Confidence string

const (
	ConfidenceNone     Confidence = "none"
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

// ConfidenceFor buckets a weighted average into a confidence tier. Tiers are
// closed intervals with no gaps or overlaps; ConfidenceNone is reserved for
// the empty-input short-circuit and is never produced here.
func ConfidenceFor(weighted float64) Confidence {
	switch {
	case weighted >= 0.90:
		return ConfidenceVeryHigh
	case weighted >= 0.75:
		return ConfidenceHigh
	case weighted >= 0.60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// AlgorithmScores holds the per-algorithm similarity values, each in [0,1]
type AlgorithmScores struct {
	Levenshtein float64 `json:"levenshtein"`
	JaroWinkler float64 `json:"jaro_winkler"`
	TokenSort   float64 `json:"token_sort"`
	TokenSet    float64 `json:"token_set"`
	Phonetic    float64 `json:"phonetic"`
}

// SimilarityScore is the result of one scored comparison. WeightedAverage is
// always recomputed per call, never stored across calls.
type SimilarityScore struct {
	Algorithms      AlgorithmScores `json:"algorithms"`
	WeightedAverage float64         `json:"weighted_average"`
	Confidence      Confidence      `json:"confidence"`

	// PhoneticUnavailable is set when no phonetic code could be computed for
	// either input. The aggregate then excludes the phonetic weight entirely
	// instead of counting a mismatch.
	PhoneticUnavailable bool `json:"phonetic_unavailable,omitempty"`
}

// Weights are the fixed per-algorithm aggregation weights, summing to 1.0
type Weights struct {
	Levenshtein float64 `json:"levenshtein"`
	JaroWinkler float64 `json:"jaro_winkler"`
	TokenSort   float64 `json:"token_sort"`
	TokenSet    float64 `json:"token_set"`
	Phonetic    float64 `json:"phonetic"`
}

// DefaultWeights returns the production aggregation weights
func DefaultWeights() Weights {
	return Weights{
		Levenshtein: 0.25,
		JaroWinkler: 0.20,
		TokenSort:   0.25,
		TokenSet:    0.15,
		Phonetic:    0.15,
	}
}

// Total returns the sum of all weights
func (w Weights) Total() float64 {
	return w.Levenshtein + w.JaroWinkler + w.TokenSort + w.TokenSet + w.Phonetic
}
