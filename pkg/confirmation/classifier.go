package confirmation

import (
	"strings"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

// Keyword sets scanned against lower-cased free-text replies. Short entries
// (two characters or fewer) only match as whole tokens so "1" in "100 units"
// or "no" in "nouveau produit" cannot misfire; longer entries match as
// substrings. Evaluation order is fixed: use_existing, then force_create,
// then cancel, first set with a hit wins.
type Classifier struct {
	useExisting []string
	forceCreate []string
	cancel      []string
}

func NewClassifier() *Classifier {
	return &Classifier{
		useExisting: []string{"utilise", "utiliser", "existant", "premier", "1", "recommandé", "ok", "oui", "yes"},
		forceCreate: []string{"créer", "créé", "nouveau", "new", "force", "2", "quand même"},
		cancel:      []string{"annuler", "annule", "cancel", "non", "no", "3", "stop"},
	}
}

// Classify maps a free-text reply onto one of the three confirmation
// choices. The second return is false when the message matches no keyword
// set, which signals that the message is not a confirmation reply at all.
func (c *Classifier) Classify(message string) (models.ConfirmationChoice, bool) {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if lowered == "" {
		return "", false
	}
	tokens := strings.Fields(lowered)

	if matchesAny(lowered, tokens, c.useExisting) {
		return models.ChoiceUseExisting, true
	}
	if matchesAny(lowered, tokens, c.forceCreate) {
		return models.ChoiceForceCreate, true
	}
	if matchesAny(lowered, tokens, c.cancel) {
		return models.ChoiceCancel, true
	}
	return "", false
}

func matchesAny(lowered string, tokens []string, keywords []string) bool {
	for _, keyword := range keywords {
		if len([]rune(keyword)) <= 2 {
			for _, token := range tokens {
				if strings.Trim(token, ".,!?;:«»()\"'") == keyword {
					return true
				}
			}
			continue
		}
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
