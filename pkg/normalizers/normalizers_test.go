package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New(DefaultConfig())

	t.Run("lowercases and strips diacritics", func(t *testing.T) {
		assert.Equal(t, "societe generale", n.Normalize("Société GÉNÉRALE"))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "jean claude dupont", n.Normalize("  Jean\t Claude   Dupont "))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", n.Normalize(""))
		assert.Equal(t, "", n.Normalize("   "))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"Société GÉNÉRALE", "  ACME  Corp ", "déjà vu", "Müller & Söhne"}
		for _, input := range inputs {
			once := n.Normalize(input)
			assert.Equal(t, once, n.Normalize(once), "input %q", input)
		}
	})
}

func TestNormalizeCompanyName(t *testing.T) {
	n := New(DefaultConfig())

	t.Run("drops legal suffixes", func(t *testing.T) {
		assert.Equal(t, "acme", n.NormalizeCompanyName("ACME Inc."))
		assert.Equal(t, "acme", n.NormalizeCompanyName("Acme SARL"))
		assert.Equal(t, "dupont", n.NormalizeCompanyName("Dupont S.A.S."))
		assert.Equal(t, "martin", n.NormalizeCompanyName("Martin S.A.R.L."))
	})

	t.Run("replaces punctuation with spaces", func(t *testing.T) {
		assert.Equal(t, "smith jones", n.NormalizeCompanyName("Smith & Jones"))
		assert.Equal(t, "a b c", n.NormalizeCompanyName("A.B.C."))
	})

	t.Run("falls back when every token is a suffix", func(t *testing.T) {
		assert.Equal(t, "sa", n.NormalizeCompanyName("SA"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"ACME Inc.", "Smith & Jones Ltd", "Café de la Paix SARL"}
		for _, input := range inputs {
			once := n.NormalizeCompanyName(input)
			assert.Equal(t, once, n.NormalizeCompanyName(once), "input %q", input)
		}
	})
}

func TestNormalizePhone(t *testing.T) {
	n := New(DefaultConfig())

	t.Run("keeps digits only", func(t *testing.T) {
		assert.Equal(t, "0612345678", n.NormalizePhone("06 12 34 56 78"))
		assert.Equal(t, "0612345678", n.NormalizePhone("06.12.34.56.78"))
	})

	t.Run("rewrites international prefix to trunk form", func(t *testing.T) {
		assert.Equal(t, "0612345678", n.NormalizePhone("+33 6 12 34 56 78"))
		assert.Equal(t, "0612345678", n.NormalizePhone("33612345678"))
	})

	t.Run("same number in both notations normalizes identically", func(t *testing.T) {
		assert.Equal(t, n.NormalizePhone("+33612345678"), n.NormalizePhone("06 12 34 56 78"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", n.NormalizePhone(""))
		assert.Equal(t, "", n.NormalizePhone("abc"))
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jean.dupont@example.com", NormalizeEmail("  Jean.Dupont@Example.COM "))
	assert.Equal(t, "", NormalizeEmail(""))
}
