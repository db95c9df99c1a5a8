// Package catalog holds the curated verb list and the irregular patch tables.
// The data is embedded in the binary and parsed once into read-only state.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/speaknative/verbgen/internal/models"
)

//go:embed verbs.yaml
var embedded []byte

// ErrInvalidCatalog is returned when catalog data is internally inconsistent.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the static input of a generation run.
type Catalog struct {
	Verbs []models.CuratedVerb `yaml:"verbs"`
	// Irregulars maps language → verb id → patch.
	Irregulars map[models.Language]map[string]models.IrregularPatch `yaml:"irregulars"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embedded)
})

// Default returns the embedded catalog. It is parsed on first use and shared
// afterwards; callers must not modify it.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Parse decodes and validates a YAML catalog document. Unknown fields are
// rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Patch returns the irregular patch for id in lang, or nil when the verb is
// fully regular in that language.
func (c *Catalog) Patch(lang models.Language, id string) models.IrregularPatch {
	return c.Irregulars[lang][id]
}

// Validate checks ids, infinitives, class overrides and patch keys.
// Whether an infinitive has a known class ending is left to the conjugator.
func (c *Catalog) Validate() error {
	if len(c.Verbs) == 0 {
		return fmt.Errorf("%w: no verbs", ErrInvalidCatalog)
	}

	ids := make(map[string]bool, len(c.Verbs))
	for i, v := range c.Verbs {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("%w: verb #%d has no id", ErrInvalidCatalog, i+1)
		}
		if ids[v.ID] {
			return fmt.Errorf("%w: duplicate verb id %q", ErrInvalidCatalog, v.ID)
		}
		ids[v.ID] = true
		if v.Source == "" || v.Target == "" {
			return fmt.Errorf("%w: verb %q must have both infinitives", ErrInvalidCatalog, v.ID)
		}
		if v.Class != "" && !v.Class.IsValid() {
			return fmt.Errorf("%w: verb %q has unknown class override %q", ErrInvalidCatalog, v.ID, v.Class)
		}
	}

	for lang, patches := range c.Irregulars {
		if !lang.IsValid() {
			return fmt.Errorf("%w: unknown language %q in irregulars", ErrInvalidCatalog, lang)
		}
		for id, patch := range patches {
			if !ids[id] {
				return fmt.Errorf("%w: %s patch for unknown verb %q", ErrInvalidCatalog, lang, id)
			}
			if patch.Cells() == 0 {
				return fmt.Errorf("%w: %s patch for %q names no forms", ErrInvalidCatalog, lang, id)
			}
			for tense, row := range patch {
				if !tense.IsValid() {
					return fmt.Errorf("%w: %s patch for %q has unknown tense %q", ErrInvalidCatalog, lang, id, tense)
				}
				for p := range row {
					if !p.IsValid() {
						return fmt.Errorf("%w: %s patch for %q has unknown person %q", ErrInvalidCatalog, lang, id, p)
					}
				}
			}
		}
	}
	return nil
}

// IrregularIDs returns the ids with a patch in either language, in curated order.
func (c *Catalog) IrregularIDs() []string {
	var out []string
	for _, v := range c.Verbs {
		if c.Patch(models.LanguageSource, v.ID) != nil || c.Patch(models.LanguageTarget, v.ID) != nil {
			out = append(out, v.ID)
		}
	}
	return out
}
