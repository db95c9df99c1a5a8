package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/catalog"
	"github.com/speaknative/verbgen/internal/config"
	"github.com/speaknative/verbgen/internal/generator"
	"github.com/speaknative/verbgen/internal/lookup"
	"github.com/speaknative/verbgen/internal/manifest"
)

const version = "0.1.0"

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "verbgen",
		Short:   "verbgen — bilingual verb conjugation manifest generator",
		Long:    "verbgen conjugates a curated list of verbs in both languages, layers irregular forms over the regular rules and writes the manifest consumed by the learning app.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		generateCmd(),
		listCmd(),
		showCmd(),
		validateCmd(),
		serveCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadCatalog returns the embedded catalog, or the YAML catalog at path when
// one is given.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return catalog.Parse(data)
}

func runGenerator(catalogPath string, logger *slog.Logger) (*catalog.Catalog, *generator.Result, error) {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return nil, nil, err
	}
	res, err := generatorFor(logger).Generate(cat)
	if err != nil {
		return nil, nil, err
	}
	return cat, res, nil
}

func generatorFor(logger *slog.Logger) *generator.Generator {
	return generator.New(cfg.Locales.Dialects(), logger)
}

// newIndex builds the read-side index either from a manifest file or from a
// fresh in-memory generation run. The returned string identifies the source.
func newIndex(manifestPath, catalogPath string, logger *slog.Logger) (*lookup.Index, string, error) {
	if manifestPath != "" {
		records, err := manifest.ReadFile(manifestPath)
		if err != nil {
			return nil, "", err
		}
		logger.Info("loaded manifest", "path", manifestPath, "verbs", len(records))
		return lookup.NewIndex(records, cfg.Locales.Aggregates), manifestPath, nil
	}

	_, res, err := runGenerator(catalogPath, logger)
	if err != nil {
		return nil, "", err
	}
	return lookup.NewIndex(res.Records, cfg.Locales.Aggregates), res.RunID, nil
}
