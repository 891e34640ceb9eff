package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helmcode/healthai/pkg/analyzer"
	"github.com/helmcode/healthai/pkg/server"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve the symptom and lab analyzers over HTTP under /api/v1.

Configuration is read from the environment or a .env file: PORT, ENV,
LOG_LEVEL, CATALOG_SOURCE, CATALOG_FILE, DATABASE_URL, DB_MAX_CONNS,
DB_MIN_CONNS, CORS_ORIGINS and BODY_LIMIT.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	logger.Info().
		Str("source", cfg.ResolvedCatalogSource()).
		Int("symptoms", len(store.Symptoms())).
		Int("conditions", len(store.Conditions())).
		Int("lab_references", len(store.LabReferences())).
		Msg("catalog loaded")

	a := analyzer.New(store, analyzer.WithLogger(logger))
	e := server.New(server.NewHandler(a), cfg, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
