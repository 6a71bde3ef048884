package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/sorrel/pkg/matching"
)

func TestConfig_Matching(t *testing.T) {
	t.Run("keeps the default guard pattern when enabled", func(t *testing.T) {
		cfg := Config{SuffixGuardEnabled: true}
		assert.Equal(t, matching.DefaultSuffixGuardPattern, cfg.Matching().SuffixGuardPattern)
	})

	t.Run("custom pattern overrides the default", func(t *testing.T) {
		cfg := Config{SuffixGuardEnabled: true, SuffixGuardPattern: `^(.+)-(\d{2})$`}
		assert.Equal(t, `^(.+)-(\d{2})$`, cfg.Matching().SuffixGuardPattern)
	})

	t.Run("disable switch clears the pattern", func(t *testing.T) {
		cfg := Config{SuffixGuardEnabled: false, SuffixGuardPattern: matching.DefaultSuffixGuardPattern}
		assert.Empty(t, cfg.Matching().SuffixGuardPattern)
	})

	t.Run("thresholds fall back to defaults when unset", func(t *testing.T) {
		cfg := Config{SuffixGuardEnabled: true}
		built := cfg.Matching()
		assert.Equal(t, matching.DefaultConfig().Threshold, built.Threshold)
		assert.Equal(t, matching.DefaultConfig().SearchThreshold, built.SearchThreshold)
	})
}
