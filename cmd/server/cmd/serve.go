package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherhub/server/internal/api"
	"github.com/gatherhub/server/internal/config"
	"github.com/gatherhub/server/internal/metrics"
	"github.com/gatherhub/server/internal/storage/postgres"
	"github.com/gatherhub/server/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GatherHub HTTP server",
	Long: `Start the GatherHub HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Run pending schema migrations when DATABASE_AUTO_MIGRATE is set
- Serve the events API with graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Msg("starting GatherHub server")

	metrics.Init(Version, GitCommit, BuildDate)

	tracingCtx, tracingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	shutdownTracing, err := telemetry.InitTracing(tracingCtx, cfg.Tracing, Version)
	tracingCancel()
	if err != nil {
		logger.Error().Err(err).Msg("tracing init failed")
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := postgres.MigrateUp(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		logger.Info().Msg("database migrations applied")
	}

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	handler, err := api.NewRouter(cfg, logger, pool, Version)
	if err != nil {
		return fmt.Errorf("router init failed: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	shutdown(server, logger)
	return nil
}

func shutdown(server *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
