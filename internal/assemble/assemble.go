// Package assemble packages the two language tables of a verb into a
// manifest record and enforces that the record is complete.
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speaknative/verbgen/internal/models"
)

// ErrIncompleteConjugation is returned when an assembled record has an empty
// infinitive or an empty (locale, tense, person) cell.
var ErrIncompleteConjugation = errors.New("incomplete conjugation")

// Dialects names the locale tags that carry each language. Every source tag
// receives the same source-language table; per-dialect divergence would be
// introduced here.
type Dialects struct {
	Source []string `mapstructure:"source"`
	Target []string `mapstructure:"target"`
}

// DefaultDialects returns the Colombian/Californian layout of the manifest.
func DefaultDialects() Dialects {
	return Dialects{
		Source: []string{"co-cartagena", "co-medellin"},
		Target: []string{"us-ca"},
	}
}

// Validate checks that each language has at least one tag and that no tag
// is blank or shared between languages.
func (d Dialects) Validate() error {
	if len(d.Source) == 0 {
		return fmt.Errorf("dialects: at least one source locale is required")
	}
	if len(d.Target) == 0 {
		return fmt.Errorf("dialects: at least one target locale is required")
	}
	seen := make(map[string]bool, len(d.Source)+len(d.Target))
	for _, tag := range append(append([]string{}, d.Source...), d.Target...) {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("dialects: locale tag must not be blank")
		}
		if seen[tag] {
			return fmt.Errorf("dialects: locale tag %q listed more than once", tag)
		}
		seen[tag] = true
	}
	return nil
}

// Tags returns every locale tag, source tags first.
func (d Dialects) Tags() []string {
	return append(append([]string{}, d.Source...), d.Target...)
}

// Assemble builds the record for one verb, replicating each language's
// infinitive and table under that language's locale tags.
func Assemble(id, sourceInf, targetInf string, sourceTable, targetTable models.ConjugationTable, dialects Dialects) (models.VerbRecord, error) {
	if err := dialects.Validate(); err != nil {
		return models.VerbRecord{}, err
	}

	rec := models.VerbRecord{
		ID:           id,
		Infinitive:   make(map[string]string, len(dialects.Source)+len(dialects.Target)),
		Conjugations: make(map[string]models.ConjugationTable, len(dialects.Source)+len(dialects.Target)),
	}
	for _, tag := range dialects.Source {
		rec.Infinitive[tag] = sourceInf
		rec.Conjugations[tag] = sourceTable.Clone()
	}
	for _, tag := range dialects.Target {
		rec.Infinitive[tag] = targetInf
		rec.Conjugations[tag] = targetTable.Clone()
	}

	if err := CheckComplete(rec); err != nil {
		return models.VerbRecord{}, err
	}
	return rec, nil
}

// CheckComplete verifies that every locale of rec has an infinitive and a
// non-empty form for every tense and person.
func CheckComplete(rec models.VerbRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record has no id", ErrIncompleteConjugation)
	}
	if len(rec.Conjugations) == 0 {
		return fmt.Errorf("%w: %s: no locales", ErrIncompleteConjugation, rec.ID)
	}
	for _, tag := range rec.Locales() {
		if rec.Infinitive[tag] == "" {
			return fmt.Errorf("%w: %s: locale %s has no infinitive", ErrIncompleteConjugation, rec.ID, tag)
		}
		table := rec.Conjugations[tag]
		for _, tense := range models.ValidTenses {
			for _, p := range models.ValidPersons {
				if table.Get(tense, p) == "" {
					return fmt.Errorf("%w: %s: locale %s is missing %s/%s", ErrIncompleteConjugation, rec.ID, tag, tense, p)
				}
			}
		}
	}
	for tag := range rec.Infinitive {
		if _, ok := rec.Conjugations[tag]; !ok {
			return fmt.Errorf("%w: %s: locale %s has an infinitive but no table", ErrIncompleteConjugation, rec.ID, tag)
		}
	}
	return nil
}
