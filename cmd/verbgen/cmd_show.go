package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/conjugate"
	"github.com/speaknative/verbgen/internal/models"
	"github.com/speaknative/verbgen/internal/override"
)

func showCmd() *cobra.Command {
	var (
		catalogPath string
		outputJSON  bool
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "show [verb-id]",
		Short: "Show the conjugation tables of one verb",
		Long:  "Prints both language tables of a curated verb. Cells taken from an irregular patch instead of the regular rules are highlighted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			if noColor {
				color.NoColor = true
			}

			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}

			var verb *models.CuratedVerb
			for i := range cat.Verbs {
				if cat.Verbs[i].ID == args[0] {
					verb = &cat.Verbs[i]
					break
				}
			}
			if verb == nil {
				return fmt.Errorf("show: verb %q is not in the curated list", args[0])
			}

			rec, err := generatorFor(logger).Verb(cat, *verb)
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				b, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("show: marshaling JSON: %w", err)
				}
				fmt.Fprintln(out, string(b))
				return nil
			}

			var classOverride *models.VerbClass
			if verb.Class != "" {
				classOverride = &verb.Class
			}
			dialects := cfg.Locales.Dialects()
			sides := []struct {
				lang       models.Language
				infinitive string
				tag        string
				override   *models.VerbClass
			}{
				{models.LanguageSource, verb.Source, dialects.Source[0], classOverride},
				{models.LanguageTarget, verb.Target, dialects.Target[0], nil},
			}
			for _, side := range sides {
				base, err := conjugate.Regular(side.infinitive, side.lang, side.override)
				if err != nil {
					return fmt.Errorf("show: %w", err)
				}
				printTable(out, side.infinitive, side.tag, rec.Conjugations[side.tag], override.Diff(base, rec.Conjugations[side.tag]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog to use instead of the embedded one")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output the manifest record as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func printTable(w io.Writer, infinitive, tag string, table models.ConjugationTable, irregular []models.Cell) {
	header := color.New(color.FgCyan, color.Bold)
	highlight := color.New(color.FgYellow, color.Bold)

	marked := make(map[models.Cell]bool, len(irregular))
	for _, c := range irregular {
		marked[c] = true
	}

	header.Fprintf(w, "%s (%s)\n", infinitive, tag)
	fmt.Fprintf(w, "%-4s", "")
	for _, tense := range models.ValidTenses {
		header.Fprintf(w, "%-16s", tense)
	}
	fmt.Fprintln(w)

	for _, p := range models.ValidPersons {
		fmt.Fprintf(w, "%-4s", p)
		for _, tense := range models.ValidTenses {
			form := fmt.Sprintf("%-16s", table.Get(tense, p))
			if marked[models.Cell{Tense: tense, Person: p}] {
				highlight.Fprint(w, form)
				continue
			}
			fmt.Fprint(w, form)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
