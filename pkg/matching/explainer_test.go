package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

func TestFormatReason(t *testing.T) {
	tests := []struct {
		name   string
		detail models.MatchDetail
		want   string
	}{
		{
			name: "email wins over everything",
			detail: models.MatchDetail{
				MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy, models.MatchReasonEmailExact},
				Scores:    map[string]float64{"name": 0.82, "email": 1.0},
			},
			want: "email identique",
		},
		{
			name: "phone before reference",
			detail: models.MatchDetail{
				MatchedOn: []models.MatchReason{models.MatchReasonReferenceExact, models.MatchReasonPhoneExact},
			},
			want: "téléphone identique",
		},
		{
			name:   "reference",
			detail: models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonReferenceExact}},
			want:   "référence identique",
		},
		{
			name:   "barcode",
			detail: models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonBarcodeExact}},
			want:   "code-barres identique",
		},
		{
			name:   "exact name",
			detail: models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonNameExact}},
			want:   "nom identique",
		},
		{
			name: "fuzzy name carries its percentage",
			detail: models.MatchDetail{
				MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy},
				Scores:    map[string]float64{"name": 0.87},
			},
			want: "nom similaire à 87%",
		},
		{
			name: "fuzzy company carries its percentage",
			detail: models.MatchDetail{
				MatchedOn: []models.MatchReason{models.MatchReasonCompanyFuzzy},
				Scores:    map[string]float64{"company": 0.75},
			},
			want: "raison sociale similaire à 75%",
		},
		{
			name:   "fallback",
			detail: models.MatchDetail{},
			want:   "correspondance partielle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReason(tt.detail))
		})
	}
}

func TestSimilarEntities(t *testing.T) {
	matches := []models.RankedMatch{
		{
			Entity:    models.CandidateEntity{ID: "e1", Name: "Acme Corp", Email: ptr("contact@acme.fr")},
			BestScore: 0.953,
			Detail:    models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy}, Scores: map[string]float64{"name": 0.953}},
		},
		{
			Entity:    models.CandidateEntity{ID: "e2", Name: "Acme Industries"},
			BestScore: 0.75,
			Detail:    models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy}, Scores: map[string]float64{"name": 0.75}},
		},
		{
			Entity:    models.CandidateEntity{ID: "e3", Name: "Acme SARL"},
			BestScore: 0.70,
		},
		{
			Entity:    models.CandidateEntity{ID: "e4", Name: "Acme GmbH"},
			BestScore: 0.70,
		},
	}

	t.Run("caps at the limit with integer percentages", func(t *testing.T) {
		entities := SimilarEntities(matches, 3)
		require.Len(t, entities, 3)
		assert.Equal(t, "e1", entities[0].ID)
		assert.Equal(t, 95, entities[0].Similarity)
		assert.Equal(t, 75, entities[1].Similarity)
	})

	t.Run("zero limit returns everything", func(t *testing.T) {
		assert.Len(t, SimilarEntities(matches, 0), 4)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SimilarEntities(nil, 3))
	})
}

func TestSimilarityMessage(t *testing.T) {
	matches := []models.RankedMatch{
		{
			Entity:    models.CandidateEntity{ID: "e1", Name: "Acme Corp", Email: ptr("contact@acme.fr"), Phone: ptr("0612345678")},
			BestScore: 0.953,
			Detail:    models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy}, Scores: map[string]float64{"name": 0.953}},
		},
		{
			Entity:    models.CandidateEntity{ID: "e2", Name: "Acme Industries"},
			BestScore: 0.72,
			Detail:    models.MatchDetail{MatchedOn: []models.MatchReason{models.MatchReasonNameFuzzy}, Scores: map[string]float64{"name": 0.72}},
		},
	}

	t.Run("renders the suggestions and the prompt", func(t *testing.T) {
		msg := SimilarityMessage(models.EntityKindSupplier, matches, 3)
		assert.Contains(t, msg, "fournisseur")
		assert.Contains(t, msg, "1. Acme Corp")
		assert.Contains(t, msg, "contact@acme.fr")
		assert.Contains(t, msg, "95%")
		assert.Contains(t, msg, "2. Acme Industries")
		assert.Contains(t, msg, "« 1 »")
		assert.Contains(t, msg, "« 2 »")
		assert.Contains(t, msg, "« 3 »")
	})

	t.Run("limit bounds the rendered matches", func(t *testing.T) {
		msg := SimilarityMessage(models.EntityKindClient, matches, 1)
		assert.Contains(t, msg, "1. Acme Corp")
		assert.NotContains(t, msg, "2. Acme Industries")
		assert.Equal(t, 1, strings.Count(msg, "Acme"))
	})

	t.Run("no matches yields no message", func(t *testing.T) {
		assert.Equal(t, "", SimilarityMessage(models.EntityKindClient, nil, 3))
	})
}
