// Package generator runs the conjugation pipeline over the curated catalog.
package generator

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/speaknative/verbgen/internal/assemble"
	"github.com/speaknative/verbgen/internal/catalog"
	"github.com/speaknative/verbgen/internal/conjugate"
	"github.com/speaknative/verbgen/internal/metrics"
	"github.com/speaknative/verbgen/internal/models"
	"github.com/speaknative/verbgen/internal/override"
)

// Result is the output of one generation run.
type Result struct {
	RunID   string              `json:"run_id"`
	Records []models.VerbRecord `json:"records"`
}

// Generator conjugates every curated verb and assembles its record.
type Generator struct {
	dialects assemble.Dialects
	logger   *slog.Logger
}

// New creates a Generator that lays records out according to dialects.
func New(dialects assemble.Dialects, logger *slog.Logger) *Generator {
	return &Generator{dialects: dialects, logger: logger}
}

// Generate builds one record per curated verb, in catalog order. The first
// failing verb aborts the run and no records are returned.
func (g *Generator) Generate(cat *catalog.Catalog) (*Result, error) {
	metrics.Inc(metrics.RunsTotal)
	res := &Result{
		RunID:   uuid.NewString(),
		Records: make([]models.VerbRecord, 0, len(cat.Verbs)),
	}
	logger := g.logger.With("run_id", res.RunID)

	if err := g.dialects.Validate(); err != nil {
		metrics.Inc(metrics.RunsFailed)
		return nil, fmt.Errorf("generate: %w", err)
	}

	for _, v := range cat.Verbs {
		rec, err := g.Verb(cat, v)
		if err != nil {
			metrics.Inc(metrics.RunsFailed)
			logger.Error("generation aborted", "verb", v.ID, "error", err)
			return nil, fmt.Errorf("generate: verb %q: %w", v.ID, err)
		}
		res.Records = append(res.Records, rec)
		metrics.Inc(metrics.VerbsGenerated)
	}

	logger.Info("generation complete", "verbs", len(res.Records), "locales", len(g.dialects.Tags()))
	return res, nil
}

// Verb conjugates, patches and assembles a single curated verb.
func (g *Generator) Verb(cat *catalog.Catalog, v models.CuratedVerb) (models.VerbRecord, error) {
	var classOverride *models.VerbClass
	if v.Class != "" {
		vc := v.Class
		classOverride = &vc
	}

	source, err := g.table(cat, v, models.LanguageSource, v.Source, classOverride)
	if err != nil {
		return models.VerbRecord{}, err
	}
	target, err := g.table(cat, v, models.LanguageTarget, v.Target, nil)
	if err != nil {
		return models.VerbRecord{}, err
	}

	return assemble.Assemble(v.ID, normalize(v.Source), normalize(v.Target), source, target, g.dialects)
}

func (g *Generator) table(cat *catalog.Catalog, v models.CuratedVerb, lang models.Language, infinitive string, classOverride *models.VerbClass) (models.ConjugationTable, error) {
	base, err := conjugate.Regular(normalize(infinitive), lang, classOverride)
	if err != nil {
		return nil, err
	}

	merged := base
	if patch := cat.Patch(lang, v.ID); patch != nil {
		merged = override.Apply(base, patch)
		changed := override.Diff(base, merged)
		metrics.Inc(metrics.PatchesApplied)
		metrics.CellsOverridden.Add(int64(len(changed)))
		g.logger.Debug("applied irregular patch", "verb", v.ID, "language", lang, "cells", patch.Cells(), "changed", len(changed))
	}

	for _, row := range merged {
		for p, form := range row {
			row[p] = normalize(form)
		}
	}
	return merged, nil
}

// normalize composes accented characters so the same form always has the
// same byte representation regardless of how the source data was typed.
func normalize(s string) string {
	return norm.NFC.String(s)
}
