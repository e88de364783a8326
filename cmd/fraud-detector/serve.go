package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"fraud-detector/internal/classifier"
	"fraud-detector/internal/config"
	"fraud-detector/internal/handler"
	"fraud-detector/internal/repository"
	"fraud-detector/internal/server"
	"fraud-detector/internal/service"
	"fraud-detector/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	logger.Info("Starting fraud detector...")

	model, err := classifier.LoadOrTrain(cfg.Model.Path, logger)
	if err != nil {
		logger.Fatal("Failed to load model", zap.Error(err))
	}

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.MigrateDB(db, cfg.Database.Type, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	sessions, err := newSessionStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}
	defer sessions.Close()

	scanner := service.NewScanner(model, repository.NewScanRepository(db, logger), logger)
	game := service.NewGame(service.DefaultQuestions, sessions,
		repository.NewGameScoreRepository(db, logger), cfg.Strict(), logger)
	if !cfg.Strict() {
		logger.Warn("Strict grading disabled: game answers are graded against client-supplied values")
	}

	srv := server.NewServer(cfg, handler.NewHandler(scanner, game, logger), logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Fraud detector is running", zap.String("port", cfg.Server.Port))
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func newSessionStore(cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	if cfg.Session.Store == "badger" {
		return session.NewBadgerStore(session.BadgerConfig{
			Path: cfg.Session.BadgerPath,
			TTL:  time.Duration(cfg.Session.TTLHours) * time.Hour,
		}, logger)
	}
	return session.NewMemoryStore(), nil
}
