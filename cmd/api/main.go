package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"attribution-analytics-service/internal/analytics/adapters/http/fiber"
	"attribution-analytics-service/internal/analytics/adapters/sqlstore"
	"attribution-analytics-service/internal/analytics/core/usecase"
	"attribution-analytics-service/internal/config"
	"attribution-analytics-service/internal/logging"

	"github.com/spf13/cobra"

	_ "attribution-analytics-service/docs"
)

// @title Attribution Analytics API
// @version 1.0
// @description Read-only query API over mobile attribution events and their daily, country, device and lifetime-value rollups.
// @BasePath /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.Error().Err(err).Msg("analytics-api failed")
		os.Exit(1)
	}
}

type rootOptions struct {
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "analytics-api [db-path] [port]",
		Short: "Serve the attribution analytics query API",
		Long: `Serve the read-only analytics API over an attribution store.

Settings come from defaults, an optional YAML file (--config, CONFIG_PATH or
./config.yaml) and environment variables. The positional db-path and port
override all of them.

Example:
  analytics-api database/app.db 50000`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")

	return cmd
}

func run(ctx context.Context, opts *rootOptions, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Config
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyArgs(args); err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// Store; a store that cannot be opened means no route can be served
	store, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		DSN:             cfg.Database.DSN,
		ReadOnly:        cfg.Database.ReadOnly,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("refusing to start: %w", err)
	}
	defer store.Close()

	// Repository + usecase
	repo := sqlstore.NewAnalyticsRepository(store)
	queryUC := usecase.NewQueryAnalyticsUseCase(repo)

	// HTTP (Fiber) app
	app := fiber.NewServer(fiber.ServerOptions{
		AppName:       "analytics-api",
		AllowOrigins:  cfg.CORS.AllowOrigins,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		EnableMetrics: cfg.Metrics.Enabled,
		EnableDocs:    cfg.Docs.Enabled,
	}, queryUC, store)

	// Graceful shutdown
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.Server.Addr())
	}()

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("driver", cfg.Database.Driver).
		Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber stopped: %w", err)
	case <-quit:
	}

	logging.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("fiber shutdown error")
	}

	logging.Info().Msg("server exiting")
	return nil
}
