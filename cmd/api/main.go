package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iamasit07/4-in-a-row-negamax/internal/config"
	"github.com/iamasit07/4-in-a-row-negamax/internal/repository/memory"
	"github.com/iamasit07/4-in-a-row-negamax/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row-negamax/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row-negamax/internal/transport/http"
	"github.com/iamasit07/4-in-a-row-negamax/internal/transport/websocket"
)

func newLogger(cfg *config.Config) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger.Sugar()
}

func main() {
	cfg := config.LoadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Session store: Redis when configured, otherwise in-process
	var store game.GameStore
	if cfg.RedisURL != "" {
		client, err := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, logger)
		if err != nil {
			logger.Warnf("[REDIS] %v, falling back to in-memory sessions", err)
		} else {
			defer client.Close()
			store = redis.NewGameStore(redis.NewRedisCache(client), cfg.SessionTTL)
		}
	}
	if store == nil {
		memStore := memory.NewGameStore(cfg.SessionTTL)
		store = memStore

		worker := cleanup.NewWorker(memStore, time.Hour, logger)
		worker.Start(ctx)
	}

	// 2. Game history, only when a database is configured
	var (
		history       game.HistoryRepository
		historyReader transportHttp.HistoryReader
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.InitDB(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			logger.Fatalf("Database unreachable: %v", err)
		}
		defer db.Close()

		logger.Info("Running database migrations...")
		if err := postgres.RunMigrations(ctx, db); err != nil {
			logger.Fatalf("Migration failed: %v", err)
		}

		repo := postgres.NewGameRepo(db)
		history = repo
		historyReader = repo
	} else {
		logger.Info("DATABASE_URL not set, game history disabled")
	}

	// 3. Services
	// Debug level on the engine logger traces every searched node; keep that
	// to cmd/selfplay.
	botLogger := logger.Desugar().WithOptions(zap.IncreaseLevel(zapcore.InfoLevel)).Sugar()
	player := bot.NewPlayer(cfg.AIDepth, cfg.AITimeout, botLogger)
	gameService := game.NewService(store, history, player, cfg.AIDepth, logger)

	// 4. Transport
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, gameService, cfg.AllowedOrigins, logger)
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Games:          transportHttp.NewGameHandler(gameService, connManager, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction(), logger),
		History:        transportHttp.NewHistoryHandler(historyReader, logger),
		WebSocket:      wsHandler.HandleWebSocket,
		SessionSecret:  cfg.SessionSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Info("Server exited gracefully")
}
