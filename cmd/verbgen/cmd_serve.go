package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/speaknative/verbgen/internal/api"
)

func serveCmd() *cobra.Command {
	var (
		manifestPath string
		catalogPath  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API server",
		Long:  "Serves verbs from a manifest file when --manifest is given, otherwise from a fresh in-memory generation run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			idx, source, err := newIndex(manifestPath, catalogPath, logger)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			srv := api.NewServer(idx, source, logger, cfg.API.AuthToken, cfg.API.AllowedOrigins)

			if cfg.API.AuthToken == "" {
				logger.Warn("HTTP API: auth is DISABLED; set VERBGEN_API_AUTH_TOKEN or api.auth_token to require a bearer token")
			}

			httpSrv := &http.Server{
				Addr:              cfg.API.ListenAddr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP API server starting", "config", cfg.API.String(), "verbs", idx.Len())
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
					errCh <- fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				close(errCh)
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("shutting down")
			case startErr := <-errCh:
				if startErr != nil {
					return startErr
				}
				return nil
			}

			const shutdownTimeout = 10 * time.Second
			if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
				return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
			}

			// Drain the errCh in case ListenAndServe returned after Shutdown.
			if startErr := <-errCh; startErr != nil {
				return startErr
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "serve this manifest file instead of generating")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog to use instead of the embedded one")
	return cmd
}
