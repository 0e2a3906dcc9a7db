package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	grpcAdapter "github.com/andrescamacho/baron-go/internal/adapters/grpc"
	"github.com/andrescamacho/baron-go/internal/adapters/metrics"
	"github.com/andrescamacho/baron-go/internal/adapters/persistence"
	"github.com/andrescamacho/baron-go/internal/application/common"
	appGame "github.com/andrescamacho/baron-go/internal/application/game"
	"github.com/andrescamacho/baron-go/internal/application/game/session"
	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/rules"
	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
	"github.com/andrescamacho/baron-go/internal/infrastructure/database"
	"github.com/andrescamacho/baron-go/internal/infrastructure/logging"
	"github.com/andrescamacho/baron-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config file (searches default paths when empty)")
	forceFlag := flag.Bool("force", false, "Stop any existing daemon and start a new one")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Acquire PID file lock to prevent multiple instances
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !*forceFlag {
			logger.Fatal("failed to acquire PID file lock, use --force to stop the existing daemon",
				zap.String("pid_file", cfg.Daemon.PIDFile), zap.Error(err))
		}

		logger.Warn("force mode enabled, stopping existing daemon", zap.Error(err))
		if err := pf.KillExisting(cfg.Daemon.ShutdownTimeout); err != nil {
			logger.Fatal("failed to stop existing daemon", zap.Error(err))
		}
		if err := pf.Acquire(); err != nil {
			logger.Fatal("failed to acquire PID file lock after stopping existing daemon", zap.Error(err))
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Warn("failed to release PID file", zap.Error(err))
		}
	}()

	if err := run(cfg, logger); err != nil {
		logger.Error("daemon stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	logger.Info("connecting to database", zap.String("type", cfg.Database.Type))
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. Repositories
	gameRepo := persistence.NewGormGameRepository(db)
	actionRepo := persistence.NewGormActionRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)

	// 3. Sessions
	if _, err := config.LoadRules(cfg.Game.DefaultVariant, cfg.Game.RulesDir); err != nil {
		return fmt.Errorf("failed to load default variant: %w", err)
	}
	loadRules := func(variant string) (*rules.Rules, error) {
		return config.LoadRules(variant, cfg.Game.RulesDir)
	}
	registry := session.NewRegistry(cfg.Daemon.MaxSessions, loadRules, gameRepo, actionRepo, transactionRepo, time.Now)

	// 4. Metrics
	var requestMetrics *metrics.RequestMetricsCollector
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		requestMetrics = metrics.NewRequestMetricsCollector(cfg.Metrics.DurationBuckets)
		if err := requestMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register request metrics: %w", err)
		}

		gameMetrics := metrics.NewGameMetricsCollector(func() int { return len(registry.Loaded()) })
		if err := gameMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register game metrics: %w", err)
		}
		metrics.SetGlobalGameCollector(gameMetrics)

		metricsServer, err = metrics.NewServer(cfg.Metrics, logger)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		metricsServer.Start()
	}

	// 5. Mediator: logging is outermost so it also sees metrics failures
	med := mediator.NewMediator()
	med.RegisterMiddleware(common.LoggingMiddleware(logger))
	med.RegisterMiddleware(metrics.PrometheusMiddleware(requestMetrics))

	if err := appGame.RegisterHandlers(med, registry, gameRepo, transactionRepo, cfg.Game.DefaultVariant); err != nil {
		return fmt.Errorf("failed to register game handlers: %w", err)
	}

	// 6. gRPC server
	if cfg.Daemon.SocketPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Daemon.SocketPath), 0755); err != nil {
			return fmt.Errorf("failed to create socket directory: %w", err)
		}
	}
	listener, err := grpcAdapter.Listen(cfg.Daemon)
	if err != nil {
		return err
	}

	server := grpcAdapter.NewGameServer(med, cfg.Daemon, logger)
	logger.Info("daemon is ready to accept connections",
		zap.String("default_variant", cfg.Game.DefaultVariant),
		zap.Int("max_sessions", cfg.Daemon.MaxSessions))

	// Serve blocks until a shutdown signal arrives
	serveErr := server.Serve(ctx, listener)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to stop metrics server", zap.Error(err))
		}
	}

	if serveErr != nil {
		return fmt.Errorf("daemon server error: %w", serveErr)
	}
	logger.Info("daemon stopped")
	return nil
}
