package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/crossstars/crossstars-server-go/internal/config"
	"github.com/crossstars/crossstars-server-go/internal/game"
	"github.com/crossstars/crossstars-server-go/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting Cross Stars server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	store, err := newCatalogStore(ctx, cfg.Catalog, logger)
	if err != nil {
		logger.Fatal("failed to initialize card catalog", zap.Error(err))
	}
	if closer, ok := store.(interface{ Close() }); ok {
		defer closer.Close()
	}
	logger.Info("card catalog initialized", zap.String("backend", cfg.Catalog.Backend))

	engine := game.NewEngine(store, rulesFromConfig(cfg.Rules), logger)
	logger.Info("game engine initialized",
		zap.Int("starting_pp", cfg.Rules.StartingPP),
		zap.Int("opening_hand_size", cfg.Rules.OpeningHandSize),
	)

	srv := server.New(engine, store, logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(serveErr))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Cross Stars server stopped")
}

// newCatalogStore selects the catalog backend from configuration.
func newCatalogStore(ctx context.Context, cfg config.CatalogConfig, logger *zap.Logger) (catalog.Store, error) {
	switch cfg.Backend {
	case "postgres":
		return catalog.NewPostgresStore(ctx, cfg.DSN, logger)
	case "", "memory":
		return catalog.NewMemoryStore(catalog.SeedDefinitions()...), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend: %q", cfg.Backend)
	}
}

func rulesFromConfig(cfg config.RulesConfig) game.RulesConfig {
	return game.RulesConfig{
		StartingPP:      cfg.StartingPP,
		OpeningHandSize: cfg.OpeningHandSize,
		Deck: game.ValidationPolicy{
			LeaderCount:          cfg.LeaderCount,
			TacticsCount:         cfg.TacticsCount,
			EnforceTacticsCount:  cfg.EnforceTacticsCount,
			MainDeckCount:        cfg.MainDeckCount,
			EnforceMainDeckCount: cfg.EnforceMainDeckCount,
		},
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
