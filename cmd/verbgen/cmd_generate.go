package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/manifest"
)

func generateCmd() *cobra.Command {
	var (
		output      string
		catalogPath string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the verbs manifest",
		Long: `Conjugates every curated verb in both languages, applies the irregular
patches and writes the manifest as indented UTF-8 JSON.

Any verb with an unknown class ending or an incomplete table aborts the run
and nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			_, res, err := runGenerator(catalogPath, logger)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(os.Stderr, "Generated %d verbs (dry run, nothing written).\n", len(res.Records))
				return nil
			}

			if output == "" {
				output = cfg.Output.Path
			}
			if output == "-" {
				return manifest.Encode(cmd.OutOrStdout(), res.Records, cfg.Output.Indent)
			}

			if err := manifest.WriteFile(output, res.Records, cfg.Output.Indent); err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			logger.Info("manifest written", "path", output, "verbs", len(res.Records), "run_id", res.RunID)
			fmt.Fprintf(os.Stderr, "Successfully wrote %d verbs to %s.\n", len(res.Records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (- for stdout; default from output.path)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog to use instead of the embedded one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate and check without writing")
	return cmd
}
