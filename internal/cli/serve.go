package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/emerald/internal/api"
	"go.uber.org/zap"
)

func newServeCommand(state *cliState) *cobra.Command {
	var (
		port      string
		accessLog bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := state.openRuntime()
			if err != nil {
				return err
			}
			defer closeRuntime(rt, state.logger)

			handler, err := api.NewHandler(rt.APIDependencies(state.options.Now))
			if err != nil {
				return fmt.Errorf("handler init failed: %w", err)
			}
			app := api.NewApp(handler, api.AppOptions{AccessLog: accessLog, Logger: rt.Logger})

			if port == "" {
				port = state.cfg.Port
			}
			state.logger.Info("Emerald listening",
				zap.String("address", "http://0.0.0.0:"+port),
				zap.String("backend", state.cfg.StorageBackend),
				zap.String("tz", rt.Location.String()),
			)
			return runServer(cmd.Context(), app, ":"+port, state.cfg.ShutdownTimeout, state.logger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT)")
	cmd.Flags().BoolVar(&accessLog, "access-log", true, "log one line per request")
	return cmd
}

// runServer listens until SIGINT/SIGTERM or ctx ends, then drains within timeout.
func runServer(ctx context.Context, app *fiber.App, address string, timeout time.Duration, logger *zap.Logger) error {
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(address)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return <-listenErr
}
