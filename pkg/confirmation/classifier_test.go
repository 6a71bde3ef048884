package confirmation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/sorrel/pkg/models"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	t.Run("use existing keywords", func(t *testing.T) {
		for _, msg := range []string{
			"utilise le premier",
			"Oui, le client existant",
			"1",
			"« 1 »",
			"ok pour le recommandé",
			"yes",
		} {
			choice, classified := c.Classify(msg)
			assert.True(t, classified, "message %q", msg)
			assert.Equal(t, models.ChoiceUseExisting, choice, "message %q", msg)
		}
	})

	t.Run("force create keywords", func(t *testing.T) {
		for _, msg := range []string{
			"créer quand même",
			"non, un nouveau client",
			"2",
			"force la création",
		} {
			choice, classified := c.Classify(msg)
			assert.True(t, classified, "message %q", msg)
			assert.Equal(t, models.ChoiceForceCreate, choice, "message %q", msg)
		}
	})

	t.Run("cancel keywords", func(t *testing.T) {
		for _, msg := range []string{
			"annuler",
			"on annule tout",
			"cancel",
			"3",
			"stop",
		} {
			choice, classified := c.Classify(msg)
			assert.True(t, classified, "message %q", msg)
			assert.Equal(t, models.ChoiceCancel, choice, "message %q", msg)
		}
	})

	t.Run("use existing wins when sets overlap", func(t *testing.T) {
		choice, classified := c.Classify("oui, utilise l'existant, pas un nouveau")
		assert.True(t, classified)
		assert.Equal(t, models.ChoiceUseExisting, choice)
	})

	t.Run("unrelated message does not classify", func(t *testing.T) {
		for _, msg := range []string{
			"quel est le chiffre d'affaires du mois ?",
			"ajoute une facture de 100 euros",
			"",
			"   ",
		} {
			_, classified := c.Classify(msg)
			assert.False(t, classified, "message %q", msg)
		}
	})

	t.Run("short keywords only match whole tokens", func(t *testing.T) {
		// "1" inside "100" and "no" inside "notre" must not fire
		_, classified := c.Classify("facture de 100 euros pour notre agence")
		assert.False(t, classified)
	})
}
