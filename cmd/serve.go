package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/trackverify/internal/config"
	"github.com/lehigh-university-libraries/trackverify/internal/handlers"
	"github.com/lehigh-university-libraries/trackverify/internal/verifycmd"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the verification HTTP API",
		Long: `Starts the trackverify HTTP API on the specified port.

Endpoints:
  GET  /api/verify?url=<netease url or id>   full verification
  POST /api/reconcile                        reconcile posted bundles
  POST /api/match                            pick a candidate from a search payload
  POST /api/cover-verdict                    parse a vision model reply
  POST /api/credits                          OCR credits from an image
  GET  /healthcheck`,
		Example: `  # Start server on default port 8888
  trackverify serve

  # Start server on custom port
  trackverify serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := verifycmd.NewPipeline(cmd.Context(), config.Load())
			var credits handlers.CreditsExtractor
			if pipeline.Credits != nil {
				credits = pipeline.Credits
			}
			handler := handlers.New(pipeline.Verifier, credits)

			mux := http.NewServeMux()
			handler.Routes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Trackverify API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
