package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		weighted float64
		want     Confidence
	}{
		{1.0, ConfidenceVeryHigh},
		{0.90, ConfidenceVeryHigh},
		{0.89, ConfidenceHigh},
		{0.75, ConfidenceHigh},
		{0.74, ConfidenceMedium},
		{0.60, ConfidenceMedium},
		{0.59, ConfidenceLow},
		{0.0, ConfidenceLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceFor(tt.weighted), "weighted %v", tt.weighted)
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Total(), 1e-9)
}
