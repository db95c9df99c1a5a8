// Package lookup indexes generated verb records for the read side: the HTTP
// API, the MCP server and the CLI.
package lookup

import (
	"errors"
	"sort"

	"github.com/speaknative/verbgen/internal/models"
	"github.com/speaknative/verbgen/pkg/fold"
)

// ErrNotFound is returned when a verb id or locale is not in the index.
var ErrNotFound = errors.New("not found")

// DefaultAggregates maps country-level locales to the concrete dialect tags
// that can answer for them, in preference order.
func DefaultAggregates() map[string][]string {
	return map[string][]string{
		"us": {"us-ca"},
		"co": {"co-cartagena", "co-medellin"},
	}
}

// Verb is a record flattened for one learner: forms to learn in the target
// locale and reference forms in the learner's own locale.
type Verb struct {
	ID                     string                  `json:"id"`
	Infinitive             string                  `json:"infinitive"`
	Translation            string                  `json:"translation"`
	Conjugation            models.ConjugationTable `json:"conjugation"`
	TranslationConjugation models.ConjugationTable `json:"translation_conjugation"`
}

// FormMatch locates one conjugated form.
type FormMatch struct {
	ID     string        `json:"id"`
	Locale string        `json:"locale"`
	Tense  models.Tense  `json:"tense"`
	Person models.Person `json:"person"`
	Form   string        `json:"form"`
}

// Index is a read-only view over a generated manifest.
type Index struct {
	records    []models.VerbRecord
	byID       map[string]int
	byForm     map[string][]FormMatch
	aggregates map[string][]string
	cells      int
}

// NewIndex builds an index over records. aggregates may be nil.
func NewIndex(records []models.VerbRecord, aggregates map[string][]string) *Index {
	idx := &Index{
		records:    records,
		byID:       make(map[string]int, len(records)),
		byForm:     make(map[string][]FormMatch),
		aggregates: aggregates,
	}
	for i, rec := range records {
		idx.byID[rec.ID] = i
		for _, tag := range rec.Locales() {
			table := rec.Conjugations[tag]
			for _, tense := range models.ValidTenses {
				for _, p := range models.ValidPersons {
					form := table.Get(tense, p)
					if form == "" {
						continue
					}
					idx.cells++
					key := fold.Key(form)
					idx.byForm[key] = append(idx.byForm[key], FormMatch{
						ID: rec.ID, Locale: tag, Tense: tense, Person: p, Form: form,
					})
				}
			}
		}
	}
	return idx
}

// Len returns the number of indexed verbs.
func (idx *Index) Len() int { return len(idx.records) }

// Cells returns the number of non-empty forms across every record and locale.
func (idx *Index) Cells() int { return idx.cells }

// Records returns the indexed records in manifest order.
func (idx *Index) Records() []models.VerbRecord { return idx.records }

// ByID returns the record with the given id.
func (idx *Index) ByID(id string) (models.VerbRecord, error) {
	i, ok := idx.byID[id]
	if !ok {
		return models.VerbRecord{}, ErrNotFound
	}
	return idx.records[i], nil
}

// Resolve maps a concrete or aggregate locale to a tag present in rec.
// A concrete tag wins over an aggregate of the same name.
func (idx *Index) Resolve(rec models.VerbRecord, locale string) (string, bool) {
	if _, ok := rec.Conjugations[locale]; ok {
		return locale, true
	}
	for _, tag := range idx.aggregates[locale] {
		if _, ok := rec.Conjugations[tag]; ok {
			return tag, true
		}
	}
	return "", false
}

// Conjugation returns the table of verb id for a concrete or aggregate locale.
func (idx *Index) Conjugation(id, locale string) (models.ConjugationTable, string, error) {
	rec, err := idx.ByID(id)
	if err != nil {
		return nil, "", err
	}
	tag, ok := idx.Resolve(rec, locale)
	if !ok {
		return nil, "", ErrNotFound
	}
	return rec.Conjugations[tag], tag, nil
}

// ForLocales flattens every verb for a learner whose own language is
// sourceLocale and who is learning targetLocale. An unresolvable locale
// leaves the infinitive empty and the table nil, which encodes as {}; the
// verb is never dropped.
func (idx *Index) ForLocales(sourceLocale, targetLocale string) []Verb {
	out := make([]Verb, 0, len(idx.records))
	for _, rec := range idx.records {
		v := Verb{ID: rec.ID}
		if tag, ok := idx.Resolve(rec, targetLocale); ok {
			v.Infinitive = rec.Infinitive[tag]
			v.Conjugation = rec.Conjugations[tag]
		}
		if tag, ok := idx.Resolve(rec, sourceLocale); ok {
			v.Translation = rec.Infinitive[tag]
			v.TranslationConjugation = rec.Conjugations[tag]
		}
		out = append(out, v)
	}
	return out
}

// FindForm returns every cell whose form equals form ignoring case and
// accents, ordered by manifest position, locale, tense and person.
func (idx *Index) FindForm(form string) []FormMatch {
	matches := append([]FormMatch(nil), idx.byForm[fold.Key(form)]...)
	sort.SliceStable(matches, func(i, j int) bool {
		return idx.byID[matches[i].ID] < idx.byID[matches[j].ID]
	})
	return matches
}

// Locales returns every concrete locale tag present in the index, sorted.
func (idx *Index) Locales() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, rec := range idx.records {
		for tag := range rec.Conjugations {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
