package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/manifest"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest-path]",
		Short: "Check a manifest against the schema and the completeness rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Output.Path
			if len(args) == 1 {
				path = args[0]
			}

			records, err := manifest.ReadFile(path)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d verbs)\n", path, len(records))
			return nil
		},
	}
}
