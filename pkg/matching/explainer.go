package matching

import (
	"fmt"
	"strings"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

// FormatReason renders a match detail as a user-facing reason string with
// fixed precedence: exact identity fields first, then fuzzy name/company
// with their percentage, then a generic fallback.
func FormatReason(detail models.MatchDetail) string {
	switch {
	case detail.HasReason(models.MatchReasonEmailExact):
		return "email identique"
	case detail.HasReason(models.MatchReasonPhoneExact):
		return "téléphone identique"
	case detail.HasReason(models.MatchReasonReferenceExact):
		return "référence identique"
	case detail.HasReason(models.MatchReasonBarcodeExact):
		return "code-barres identique"
	case detail.HasReason(models.MatchReasonNameExact):
		return "nom identique"
	case detail.HasReason(models.MatchReasonNameFuzzy):
		return fmt.Sprintf("nom similaire à %d%%", Percentage(detail.Scores["name"]))
	case detail.HasReason(models.MatchReasonCompanyFuzzy):
		return fmt.Sprintf("raison sociale similaire à %d%%", Percentage(detail.Scores["company"]))
	default:
		return "correspondance partielle"
	}
}

// Percentage converts a [0,1] score to the integer 0..100 used at the
// dispatcher boundary.
func Percentage(score float64) int {
	return int(score * 100)
}

// SimilarEntities converts ranked matches into the boundary payload,
// capped at limit entries.
func SimilarEntities(matches []models.RankedMatch, limit int) []models.SimilarEntity {
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}
	entities := make([]models.SimilarEntity, 0, limit)
	for _, match := range matches[:limit] {
		entities = append(entities, models.SimilarEntity{
			ID:         match.Entity.ID,
			Name:       match.Entity.Name,
			Email:      match.Entity.Email,
			Phone:      match.Entity.Phone,
			Similarity: Percentage(match.BestScore),
			Reason:     FormatReason(match.Detail),
		})
	}
	return entities
}

// entityLabels translate entity kinds for the conversational surface
var entityLabels = map[models.EntityKind]string{
	models.EntityKindClient:   "client",
	models.EntityKindSupplier: "fournisseur",
	models.EntityKindProduct:  "produit",
}

// SimilarityMessage renders the duplicate suggestions as display text: at
// most limit matches with name, contact details, rounded percentage and
// reason, followed by the three-way prompt.
func SimilarityMessage(kind models.EntityKind, matches []models.RankedMatch, limit int) string {
	if len(matches) == 0 {
		return ""
	}
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}

	label := entityLabels[kind]
	if label == "" {
		label = string(kind)
	}

	var b strings.Builder
	if limit == 1 {
		fmt.Fprintf(&b, "J'ai trouvé un %s similaire :\n", label)
	} else {
		fmt.Fprintf(&b, "J'ai trouvé %d %ss similaires :\n", limit, label)
	}

	for i, match := range matches[:limit] {
		fmt.Fprintf(&b, "%d. %s", i+1, match.Entity.Name)
		contacts := make([]string, 0, 2)
		if match.Entity.Email != nil && *match.Entity.Email != "" {
			contacts = append(contacts, *match.Entity.Email)
		}
		if match.Entity.Phone != nil && *match.Entity.Phone != "" {
			contacts = append(contacts, *match.Entity.Phone)
		}
		if len(contacts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(contacts, ", "))
		}
		fmt.Fprintf(&b, " - %d%% (%s)\n", Percentage(match.BestScore), FormatReason(match.Detail))
	}

	fmt.Fprintf(&b, "Répondez « 1 » pour utiliser le premier, « 2 » pour créer quand même, ou « 3 » pour annuler.")
	return b.String()
}
