package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Language identifies which side of the language pair a form belongs to.
type Language string

const (
	// LanguageSource is the Romance language the curated list is authored in.
	LanguageSource Language = "source"
	// LanguageTarget is the language learners are being taught (English).
	LanguageTarget Language = "target"
)

// ValidLanguages is the set of all valid languages.
var ValidLanguages = []Language{LanguageSource, LanguageTarget}

// IsValid returns true if the language is recognized.
func (l Language) IsValid() bool {
	for _, v := range ValidLanguages {
		if l == v {
			return true
		}
	}
	return false
}

// VerbClass is a source-language regular conjugation family, named by its
// infinitive ending.
type VerbClass string

const (
	ClassAR VerbClass = "ar"
	ClassER VerbClass = "er"
	ClassIR VerbClass = "ir"
)

// ValidVerbClasses is the set of all valid verb classes.
var ValidVerbClasses = []VerbClass{ClassAR, ClassER, ClassIR}

// IsValid returns true if the verb class is recognized.
func (vc VerbClass) IsValid() bool {
	for _, v := range ValidVerbClasses {
		if vc == v {
			return true
		}
	}
	return false
}

// Tense is a grammatical time category.
type Tense string

const (
	TensePresent Tense = "present"
	TensePast    Tense = "past"
	TenseFuture  Tense = "future"
)

// ValidTenses lists every tense in canonical output order.
var ValidTenses = []Tense{TensePresent, TensePast, TenseFuture}

// IsValid returns true if the tense is recognized.
func (t Tense) IsValid() bool {
	for _, v := range ValidTenses {
		if t == v {
			return true
		}
	}
	return false
}

// Person is a grammatical subject category. Second person plural is not
// modelled; PersonThirdPlural covers both "they" senses.
type Person string

const (
	PersonFirstSingular  Person = "1s"
	PersonSecondSingular Person = "2s"
	PersonThirdSingular  Person = "3s"
	PersonFirstPlural    Person = "1p"
	PersonThirdPlural    Person = "3p"
)

// ValidPersons lists every person in canonical output order.
var ValidPersons = []Person{
	PersonFirstSingular,
	PersonSecondSingular,
	PersonThirdSingular,
	PersonFirstPlural,
	PersonThirdPlural,
}

// IsValid returns true if the person is recognized.
func (p Person) IsValid() bool {
	for _, v := range ValidPersons {
		if p == v {
			return true
		}
	}
	return false
}

// CellCount is the number of (tense, person) cells in a complete table.
var CellCount = len(ValidTenses) * len(ValidPersons)

// Cell addresses one form in a conjugation table.
type Cell struct {
	Tense  Tense  `json:"tense"`
	Person Person `json:"person"`
}

// ConjugationTable maps tense → person → conjugated form.
type ConjugationTable map[Tense]map[Person]string

// Get returns the form at (tense, person), or "" when absent.
func (t ConjugationTable) Get(tense Tense, person Person) string {
	return t[tense][person]
}

// Set stores form at (tense, person), allocating the tense row if needed.
func (t ConjugationTable) Set(tense Tense, person Person, form string) {
	row, ok := t[tense]
	if !ok {
		row = make(map[Person]string, len(ValidPersons))
		t[tense] = row
	}
	row[person] = form
}

// Clone returns a deep copy of the table.
func (t ConjugationTable) Clone() ConjugationTable {
	out := make(ConjugationTable, len(t))
	for tense, row := range t {
		cp := make(map[Person]string, len(row))
		for p, form := range row {
			cp[p] = form
		}
		out[tense] = cp
	}
	return out
}

// Equal reports whether both tables hold exactly the same cells.
func (t ConjugationTable) Equal(other ConjugationTable) bool {
	if len(t) != len(other) {
		return false
	}
	for tense, row := range t {
		otherRow, ok := other[tense]
		if !ok || len(row) != len(otherRow) {
			return false
		}
		for p, form := range row {
			if f, ok := otherRow[p]; !ok || f != form {
				return false
			}
		}
	}
	return true
}

// MarshalJSON writes tenses and persons in canonical enum order so that
// generated manifests diff cleanly between runs. Keys outside the enums are
// appended in sorted order.
func (t ConjugationTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, tense := range orderedKeys(t, ValidTenses) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKey(&buf, string(tense)); err != nil {
			return nil, err
		}
		row := t[tense]
		buf.WriteByte('{')
		for i, p := range orderedKeys(row, ValidPersons) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, string(p)); err != nil {
				return nil, err
			}
			v, err := json.Marshal(row[p])
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

// orderedKeys returns the keys of m, canonical ones first in the given order.
func orderedKeys[K ~string, V any](m map[K]V, canonical []K) []K {
	keys := make([]K, 0, len(m))
	known := make(map[K]bool, len(canonical))
	for _, k := range canonical {
		known[k] = true
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []K
	for k := range m {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(keys, extra...)
}

// IrregularPatch is a sparse, hand-authored set of forms that replace
// regularly generated cells for one verb.
type IrregularPatch map[Tense]map[Person]string

// Cells returns the number of cells the patch overrides.
func (p IrregularPatch) Cells() int {
	n := 0
	for _, row := range p {
		n += len(row)
	}
	return n
}

// CuratedVerb is one entry of the curated vocabulary list.
type CuratedVerb struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	// Class forces the source-language verb class instead of deriving it
	// from the infinitive ending.
	Class VerbClass `json:"class,omitempty" yaml:"class,omitempty"`
}

// VerbRecord is one entry of the generated manifest.
type VerbRecord struct {
	ID           string                      `json:"id"`
	Infinitive   map[string]string           `json:"infinitive"`
	Conjugations map[string]ConjugationTable `json:"data"`
}

// Locales returns the record's locale tags in sorted order.
func (r VerbRecord) Locales() []string {
	tags := make([]string, 0, len(r.Conjugations))
	for tag := range r.Conjugations {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
