package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itrdesk/tax-engine/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			gin.SetMode(a.cfg.GinMode)

			server := api.NewServer(a.engine, a.parser, a.logger)
			srv := &http.Server{
				Addr:              a.cfg.Addr(),
				Handler:           server.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Infof("Starting ITR tax engine on %s (AY %s)", srv.Addr, a.parser.Rules.AssessmentYear)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on (overrides ITR_PORT)")
	return cmd
}
