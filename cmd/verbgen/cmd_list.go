package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/conjugate"
	"github.com/speaknative/verbgen/internal/models"
)

func listCmd() *cobra.Command {
	var (
		catalogPath   string
		irregularOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the curated verbs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}

			var irregular map[string]bool
			if irregularOnly {
				irregular = make(map[string]bool)
				for _, id := range cat.IrregularIDs() {
					irregular[id] = true
				}
			}

			out := cmd.OutOrStdout()
			shown := 0
			for i, v := range cat.Verbs {
				if irregularOnly && !irregular[v.ID] {
					continue
				}
				srcPatch := cat.Patch(models.LanguageSource, v.ID)
				tgtPatch := cat.Patch(models.LanguageTarget, v.ID)

				class := v.Class
				if class == "" {
					if vc, classErr := conjugate.ClassOf(v.Source); classErr == nil {
						class = vc
					} else {
						class = "?"
					}
				}
				fmt.Fprintf(out, "[%d] %-10s %-10s %-16s class=%s irregular=%d/%d\n",
					i+1, v.ID, v.Source, v.Target, class, srcPatch.Cells(), tgtPatch.Cells())
				shown++
			}

			if shown == 0 {
				fmt.Fprintln(out, "No verbs found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog to use instead of the embedded one")
	cmd.Flags().BoolVar(&irregularOnly, "irregular", false, "only list verbs with irregular patches")
	return cmd
}
