package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(models.DefaultWeights())

	t.Run("identical strings score 1.0 very_high", func(t *testing.T) {
		score := scorer.Score("acme corporation", "acme corporation", true)
		assert.Equal(t, 1.0, score.WeightedAverage)
		assert.Equal(t, models.ConfidenceVeryHigh, score.Confidence)
		assert.Equal(t, 1.0, score.Algorithms.Levenshtein)
		assert.Equal(t, 1.0, score.Algorithms.TokenSet)
	})

	t.Run("empty input short-circuits to none", func(t *testing.T) {
		for _, pair := range [][2]string{{"", "acme"}, {"acme", ""}, {"", ""}} {
			score := scorer.Score(pair[0], pair[1], true)
			assert.Equal(t, 0.0, score.WeightedAverage)
			assert.Equal(t, models.ConfidenceNone, score.Confidence)
		}
	})

	t.Run("word order does not hurt token sort", func(t *testing.T) {
		score := scorer.Score("jean dupont", "dupont jean", true)
		assert.Equal(t, 1.0, score.Algorithms.TokenSort)
		assert.Equal(t, 1.0, score.Algorithms.TokenSet)
	})

	t.Run("containment keeps a partial name above the search threshold", func(t *testing.T) {
		score := scorer.Score("gerard", "gerard dupont", true)
		assert.Equal(t, 1.0, score.Algorithms.TokenSet)
		assert.GreaterOrEqual(t, score.WeightedAverage, 0.50)
	})

	t.Run("unrelated strings stay low", func(t *testing.T) {
		score := scorer.Score("boulangerie martin", "xyz industrial supplies", true)
		assert.Less(t, score.WeightedAverage, 0.50)
		assert.Equal(t, models.ConfidenceLow, score.Confidence)
	})

	t.Run("weighted average stays in range", func(t *testing.T) {
		pairs := [][2]string{
			{"acme", "acme corp"},
			{"dupont", "dupond"},
			{"a", "zzzzzzzz"},
			{"martin boulangerie", "boulangerie martin paris"},
		}
		for _, pair := range pairs {
			score := scorer.Score(pair[0], pair[1], true)
			assert.GreaterOrEqual(t, score.WeightedAverage, 0.0, "pair %v", pair)
			assert.LessOrEqual(t, score.WeightedAverage, 1.0, "pair %v", pair)
		}
	})

	t.Run("digit-only inputs renormalize around the phonetic slot", func(t *testing.T) {
		score := scorer.Score("0612345678", "0612345678", true)
		assert.True(t, score.PhoneticUnavailable)
		assert.InDelta(t, 1.0, score.WeightedAverage, 1e-9)
	})

	t.Run("phonetic disabled leaves the slot at zero weight", func(t *testing.T) {
		with := scorer.Score("dupont", "dupont", true)
		without := scorer.Score("dupont", "dupont", false)
		assert.Equal(t, 1.0, with.WeightedAverage)
		assert.False(t, without.PhoneticUnavailable)
		assert.Equal(t, 0.0, without.Algorithms.Phonetic)
	})

	t.Run("close misspelling scores near-equal phonetics", func(t *testing.T) {
		score := scorer.Score("dupont", "dupond", true)
		assert.GreaterOrEqual(t, score.Algorithms.Phonetic, 0.8)
		assert.GreaterOrEqual(t, score.WeightedAverage, 0.75)
	})
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinRatio("abc", "abc"))
	assert.Equal(t, 0.0, levenshteinRatio("abc", "xyz"))
	assert.InDelta(t, 0.75, levenshteinRatio("abcd", "abcx"), 1e-9)
}

func TestTokenSetRatio(t *testing.T) {
	t.Run("full containment", func(t *testing.T) {
		assert.Equal(t, 1.0, tokenSetRatio("gerard", "gerard dupont"))
	})

	t.Run("no overlap falls back to a plain ratio", func(t *testing.T) {
		assert.Less(t, tokenSetRatio("alpha", "omega"), 0.5)
	})

	t.Run("duplicate tokens collapse", func(t *testing.T) {
		assert.Equal(t, 1.0, tokenSetRatio("acme acme corp", "corp acme"))
	})
}
