// Package override layers hand-authored irregular forms on top of a
// regularly generated conjugation table.
package override

import "github.com/speaknative/verbgen/internal/models"

// Apply returns a copy of base with every cell named in patch replaced by the
// patch's form. Cells the patch does not name keep their base value. base is
// never modified; applying the same patch twice yields the same table.
func Apply(base models.ConjugationTable, patch models.IrregularPatch) models.ConjugationTable {
	out := base.Clone()
	for tense, row := range patch {
		for p, form := range row {
			out.Set(tense, p, form)
		}
	}
	return out
}

// Diff lists the cells whose form differs between base and merged, in
// canonical tense/person order.
func Diff(base, merged models.ConjugationTable) []models.Cell {
	var cells []models.Cell
	for _, tense := range models.ValidTenses {
		for _, p := range models.ValidPersons {
			if base.Get(tense, p) != merged.Get(tense, p) {
				cells = append(cells, models.Cell{Tense: tense, Person: p})
			}
		}
	}
	return cells
}
