package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/bank"
	"github.com/spf13/cobra"
)

func simulatorCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "bank-simulator",
		Short: "Run a local stand-in for the acquiring bank",
		Long: `Serve the bank authorization API locally.

Card numbers ending in an odd digit are authorized, even digits are declined
and a trailing zero returns 503.

Examples:
  gateway bank-simulator --addr :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.LoggerConfig{Level: "info", Format: "text"}.NewLogger()

			server := &http.Server{
				Addr:              addr,
				Handler:           bank.NewSimulator(logger).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("bank simulator listening", "addr", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("bank simulator stopped", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	return cmd
}

