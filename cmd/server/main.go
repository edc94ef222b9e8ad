package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/storage"
	"github.com/KevinKickass/SunSpecBridge/internal/system"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}

func main() {
	configPath := pflag.StringP("config", "c", "configs/config.yaml", "path to the YAML configuration")
	pflag.Parse()

	// Config laden
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logger initialisieren
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	logger.Info("Config loaded successfully", zap.String("path", *configPath))

	// PostgreSQL ist optional
	var db *storage.PostgresClient
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		db, err = storage.NewPostgresClient(ctx, cfg.Database)
		if err == nil {
			err = db.Migrate(ctx)
		}
		cancel()
		if err != nil {
			logger.Fatal("Failed to prepare database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")
	}

	// Lifecycle Manager
	lifecycle, err := system.NewLifecycleManager(db, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create lifecycle manager", zap.Error(err))
	}

	// System starten
	if err := lifecycle.Start(); err != nil {
		logger.Fatal("Failed to start system", zap.Error(err))
	}

	logger.Info("SunSpec bridge started successfully")

	// Graceful Shutdown auf Signal oder API
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received")
	case <-lifecycle.Done():
		logger.Info("Shutdown requested via API")
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := lifecycle.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("SunSpec bridge stopped successfully")
}
