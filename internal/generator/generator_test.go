package generator_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/catalog"
	"github.com/speaknative/verbgen/internal/conjugate"
	"github.com/speaknative/verbgen/internal/generator"
	"github.com/speaknative/verbgen/internal/models"
)

func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generateDefault(t *testing.T) *generator.Result {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	res, err := generator.New(assemble.DefaultDialects(), newTestLogger(t)).Generate(cat)
	require.NoError(t, err)
	return res
}

func recordByID(t *testing.T, res *generator.Result, id string) models.VerbRecord {
	t.Helper()
	for _, rec := range res.Records {
		if rec.ID == id {
			return rec
		}
	}
	t.Fatalf("record %q not found", id)
	return models.VerbRecord{}
}

func TestGenerate_Tener(t *testing.T) {
	res := generateDefault(t)
	rec := recordByID(t, res, "tener")

	es := rec.Conjugations["co-cartagena"]
	assert.Equal(t, "tengo", es.Get(models.TensePresent, models.PersonFirstSingular))
	assert.Equal(t, "tuvimos", es.Get(models.TensePast, models.PersonFirstPlural))
	assert.Equal(t, "tendrá", es.Get(models.TenseFuture, models.PersonThirdSingular))

	en := rec.Conjugations["us-ca"]
	assert.Equal(t, "has", en.Get(models.TensePresent, models.PersonThirdSingular))
	assert.Equal(t, "have", en.Get(models.TensePresent, models.PersonFirstSingular))
	assert.Equal(t, "will have", en.Get(models.TenseFuture, models.PersonFirstSingular))

	assert.Equal(t, "tener", rec.Infinitive["co-medellin"])
	assert.Equal(t, "to have", rec.Infinitive["us-ca"])
}

func TestGenerate_HacerPartialPatchInheritsRegularCells(t *testing.T) {
	res := generateDefault(t)
	es := recordByID(t, res, "hacer").Conjugations["co-medellin"]

	assert.Equal(t, "hago", es.Get(models.TensePresent, models.PersonFirstSingular))
	assert.Equal(t, "hacemos", es.Get(models.TensePresent, models.PersonFirstPlural))
	assert.Equal(t, "hacen", es.Get(models.TensePresent, models.PersonThirdPlural))
}

func TestGenerate_RegularVerbVivir(t *testing.T) {
	res := generateDefault(t)
	rec := recordByID(t, res, "vivir")

	en := rec.Conjugations["us-ca"]
	past := en.Get(models.TensePast, models.PersonFirstSingular)
	assert.Equal(t, "lived", past)
	for _, p := range models.ValidPersons {
		assert.Equal(t, past, en.Get(models.TensePast, p))
	}

	es := rec.Conjugations["co-cartagena"]
	assert.Equal(t, "viví", es.Get(models.TensePast, models.PersonFirstSingular))
}

func TestGenerate_EstarFutureStaysRegular(t *testing.T) {
	res := generateDefault(t)
	es := recordByID(t, res, "estar").Conjugations["co-cartagena"]

	assert.Equal(t, "estuve", es.Get(models.TensePast, models.PersonFirstSingular))
	assert.Equal(t, "estaré", es.Get(models.TenseFuture, models.PersonFirstSingular))
}

func TestGenerate_CompletenessAndOrder(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	res := generateDefault(t)

	require.Len(t, res.Records, len(cat.Verbs))
	assert.NotEmpty(t, res.RunID)
	for i, rec := range res.Records {
		assert.Equal(t, cat.Verbs[i].ID, rec.ID)
		assert.Len(t, rec.Conjugations, 3)
		for _, tag := range rec.Locales() {
			table := rec.Conjugations[tag]
			count := 0
			for _, row := range table {
				for _, form := range row {
					assert.NotEmpty(t, form)
					count++
				}
			}
			assert.Equal(t, models.CellCount, count, "%s/%s", rec.ID, tag)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first := generateDefault(t)
	second := generateDefault(t)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Records, second.Records)
}

func TestGenerate_UnknownVerbClassAbortsRun(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
verbs:
  - {id: hablar, source: hablar, target: to speak}
  - {id: reir, source: reír, target: to laugh}
`))
	require.NoError(t, err)

	res, err := generator.New(assemble.DefaultDialects(), newTestLogger(t)).Generate(cat)
	assert.ErrorIs(t, err, conjugate.ErrUnknownVerbClass)
	assert.Contains(t, err.Error(), `"reir"`)
	assert.Nil(t, res)
}

func TestGenerate_ClassOverride(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
verbs:
  - {id: reir, source: reír, target: to laugh, class: ir}
`))
	require.NoError(t, err)

	res, err := generator.New(assemble.DefaultDialects(), newTestLogger(t)).Generate(cat)
	require.NoError(t, err)
	assert.Equal(t, "reimos", res.Records[0].Conjugations["co-cartagena"].Get(models.TensePresent, models.PersonFirstPlural))
	assert.Equal(t, "laughed", res.Records[0].Conjugations["us-ca"].Get(models.TensePast, models.PersonThirdPlural))
}

func TestGenerate_EmptyPatchFormIsIncomplete(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
verbs:
  - {id: tener, source: tener, target: to have}
irregulars:
  target:
    tener:
      present: {3s: ""}
`))
	require.NoError(t, err)

	_, err = generator.New(assemble.DefaultDialects(), newTestLogger(t)).Generate(cat)
	assert.ErrorIs(t, err, assemble.ErrIncompleteConjugation)
}

func TestGenerate_InvalidDialects(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	_, err = generator.New(assemble.Dialects{Source: []string{"co-cartagena"}}, newTestLogger(t)).Generate(cat)
	assert.Error(t, err)
}

func TestGenerate_NormalizesDecomposedAccents(t *testing.T) {
	// The patch spells the form with a combining acute accent (U+0301).
	cat, err := catalog.Parse([]byte("verbs:\n  - {id: tener, source: tener, target: to have}\nirregulars:\n  source:\n    tener:\n      future: {1s: \"tendre\u0301\"}\n"))
	require.NoError(t, err)

	res, err := generator.New(assemble.DefaultDialects(), newTestLogger(t)).Generate(cat)
	require.NoError(t, err)
	assert.Equal(t, "tendr\u00e9", res.Records[0].Conjugations["co-cartagena"].Get(models.TenseFuture, models.PersonFirstSingular))
}
