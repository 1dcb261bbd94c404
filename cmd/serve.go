package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/crdc-tools/studylink/internal/config"
	"github.com/crdc-tools/studylink/internal/handlers"
	"github.com/crdc-tools/studylink/internal/mapping"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the study mapping over HTTP",
		Long: `Starts an HTTP server exposing the study-to-collection mapping.

Each request to /api/mappings runs a full reconciliation pass against the
registry and both imaging archives; nothing is cached between requests.`,
		Example: `  # Start server on default port 8888
  studylink serve

  # Start server on custom port
  studylink serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			handler := handlers.New(mapping.NewRunner(cfg))

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/mappings", handler.HandleMappings)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Mapping endpoint available", "addr", addr, "url", "http://localhost"+addr+"/api/mappings")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
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
