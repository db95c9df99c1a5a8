// Package conjugate produces regular conjugation tables from an infinitive.
package conjugate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speaknative/verbgen/internal/models"
)

// ErrUnknownVerbClass is returned when a source-language infinitive ends in
// none of the known class endings and no override is given.
var ErrUnknownVerbClass = errors.New("unknown verb class")

// classEndingLen is the length, in characters, of a source-language class ending.
const classEndingLen = 2

// ClassOf derives the verb class from the last two characters of a
// source-language infinitive.
func ClassOf(infinitive string) (models.VerbClass, error) {
	runes := []rune(infinitive)
	if len(runes) < classEndingLen {
		return "", fmt.Errorf("%w: %q", ErrUnknownVerbClass, infinitive)
	}
	vc := models.VerbClass(string(runes[len(runes)-classEndingLen:]))
	if !vc.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVerbClass, infinitive)
	}
	return vc, nil
}

// Regular returns the complete regular table for infinitive in lang.
// classOverride is only consulted for the source language.
func Regular(infinitive string, lang models.Language, classOverride *models.VerbClass) (models.ConjugationTable, error) {
	switch lang {
	case models.LanguageSource:
		return regularSource(infinitive, classOverride)
	case models.LanguageTarget:
		return regularTarget(infinitive), nil
	default:
		return nil, fmt.Errorf("conjugate: unsupported language %q", lang)
	}
}

func regularSource(infinitive string, classOverride *models.VerbClass) (models.ConjugationTable, error) {
	var vc models.VerbClass
	if classOverride != nil {
		if !classOverride.IsValid() {
			return nil, fmt.Errorf("%w: override %q for %q", ErrUnknownVerbClass, *classOverride, infinitive)
		}
		vc = *classOverride
	} else {
		var err error
		vc, err = ClassOf(infinitive)
		if err != nil {
			return nil, err
		}
	}

	runes := []rune(infinitive)
	if len(runes) < classEndingLen {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerbClass, infinitive)
	}
	stem := string(runes[:len(runes)-classEndingLen])

	suffixes := sourceSuffixes[vc]
	table := make(models.ConjugationTable, len(models.ValidTenses))
	for _, tense := range models.ValidTenses {
		for _, p := range models.ValidPersons {
			table.Set(tense, p, stem+suffixes[tense][p])
		}
	}
	return table, nil
}

func regularTarget(infinitive string) models.ConjugationTable {
	verb := Bare(infinitive)

	past := verb + pastSuffix
	if strings.HasSuffix(verb, pastSuffix[:1]) {
		past = verb + pastSuffix[1:]
	}
	future := futureModal + verb

	table := make(models.ConjugationTable, len(models.ValidTenses))
	for _, p := range models.ValidPersons {
		present := verb
		if p == models.PersonThirdSingular {
			present = verb + thirdSingularMarker
		}
		table.Set(models.TensePresent, p, present)
		table.Set(models.TensePast, p, past)
		table.Set(models.TenseFuture, p, future)
	}
	return table
}

// Bare strips the target-language infinitive marker ("to walk" → "walk").
func Bare(infinitive string) string {
	return strings.TrimPrefix(infinitive, infinitiveMarker)
}
