package lookup_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/catalog"
	"github.com/speaknative/verbgen/internal/conjugate"
	"github.com/speaknative/verbgen/internal/generator"
	"github.com/speaknative/verbgen/internal/lookup"
	"github.com/speaknative/verbgen/internal/models"
)

func newIndex(t *testing.T) *lookup.Index {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	res, err := generator.New(assemble.DefaultDialects(), slog.New(slog.NewTextHandler(io.Discard, nil))).Generate(cat)
	require.NoError(t, err)
	return lookup.NewIndex(res.Records, lookup.DefaultAggregates())
}

func TestIndex_ByID(t *testing.T) {
	idx := newIndex(t)
	assert.Equal(t, 50, idx.Len())
	assert.Equal(t, 50*3*models.CellCount, idx.Cells())

	rec, err := idx.ByID("tener")
	require.NoError(t, err)
	assert.Equal(t, "to have", rec.Infinitive["us-ca"])

	_, err = idx.ByID("nadar")
	assert.ErrorIs(t, err, lookup.ErrNotFound)
}

func TestIndex_ConjugationResolvesAggregates(t *testing.T) {
	idx := newIndex(t)

	table, tag, err := idx.Conjugation("tener", "co")
	require.NoError(t, err)
	assert.Equal(t, "co-cartagena", tag)
	assert.Equal(t, "tengo", table.Get(models.TensePresent, models.PersonFirstSingular))

	_, tag, err = idx.Conjugation("tener", "co-medellin")
	require.NoError(t, err)
	assert.Equal(t, "co-medellin", tag)

	_, tag, err = idx.Conjugation("tener", "us")
	require.NoError(t, err)
	assert.Equal(t, "us-ca", tag)

	_, _, err = idx.Conjugation("tener", "fr")
	assert.ErrorIs(t, err, lookup.ErrNotFound)
	_, _, err = idx.Conjugation("nadar", "co")
	assert.ErrorIs(t, err, lookup.ErrNotFound)
}

func TestIndex_ForLocales(t *testing.T) {
	idx := newIndex(t)

	verbs := idx.ForLocales("co", "us")
	require.Len(t, verbs, 50)
	assert.Equal(t, "ser", verbs[0].ID)
	assert.Equal(t, "to be", verbs[0].Infinitive)
	assert.Equal(t, "ser", verbs[0].Translation)
	assert.Equal(t, "is", verbs[0].Conjugation.Get(models.TensePresent, models.PersonThirdSingular))
	assert.Equal(t, "es", verbs[0].TranslationConjugation.Get(models.TensePresent, models.PersonThirdSingular))

	reversed := idx.ForLocales("us-ca", "co-medellin")
	assert.Equal(t, "ser", reversed[0].Infinitive)
	assert.Equal(t, "to be", reversed[0].Translation)

	unknown := idx.ForLocales("fr", "us")
	assert.Empty(t, unknown[0].Translation)
	assert.Nil(t, unknown[0].TranslationConjugation)

	b, err := json.Marshal(unknown[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"translation_conjugation":{}`)
}

func TestIndex_FindForm(t *testing.T) {
	idx := newIndex(t)

	matches := idx.FindForm("TENDRA")
	require.Len(t, matches, 2)
	assert.Equal(t, lookup.FormMatch{
		ID: "tener", Locale: "co-cartagena", Tense: models.TenseFuture, Person: models.PersonThirdSingular, Form: "tendrá",
	}, matches[0])
	assert.Equal(t, "co-medellin", matches[1].Locale)

	// "fui" is shared by ser and ir, ser comes first in the manifest.
	fui := idx.FindForm("fui")
	require.NotEmpty(t, fui)
	assert.Equal(t, "ser", fui[0].ID)
	assert.Equal(t, "ir", fui[len(fui)-1].ID)

	assert.Empty(t, idx.FindForm("nadamos"))
}

func TestIndex_Locales(t *testing.T) {
	idx := newIndex(t)
	assert.Equal(t, []string{"co-cartagena", "co-medellin", "us-ca"}, idx.Locales())
}

func TestIndex_NilAggregates(t *testing.T) {
	idx := lookup.NewIndex(newIndex(t).Records(), nil)
	_, _, err := idx.Conjugation("ser", "co")
	assert.ErrorIs(t, err, lookup.ErrNotFound)
}

func TestIndex_CellsMixedLocales(t *testing.T) {
	table, err := conjugate.Regular("hablar", models.LanguageSource, nil)
	require.NoError(t, err)
	records := []models.VerbRecord{
		{
			ID:           "a",
			Infinitive:   map[string]string{"x": "hablar", "y": "hablar"},
			Conjugations: map[string]models.ConjugationTable{"x": table, "y": table},
		},
		{
			ID:           "b",
			Infinitive:   map[string]string{"z": "hablar"},
			Conjugations: map[string]models.ConjugationTable{"z": table},
		},
	}

	idx := lookup.NewIndex(records, nil)
	assert.Equal(t, 3*models.CellCount, idx.Cells())
	assert.Equal(t, []string{"x", "y", "z"}, idx.Locales())
}
