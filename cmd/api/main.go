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
	"github.com/iamasit07/clash-of-dots/backend/internal/config"
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"github.com/iamasit07/clash-of-dots/backend/internal/repository/memory"
	"github.com/iamasit07/clash-of-dots/backend/internal/repository/postgres"
	"github.com/iamasit07/clash-of-dots/backend/internal/repository/redis"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/bot"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/cleanup"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/game"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/stats"
	transportHttp "github.com/iamasit07/clash-of-dots/backend/internal/transport/http"
	"github.com/iamasit07/clash-of-dots/backend/internal/transport/http/middleware"
	"github.com/iamasit07/clash-of-dots/backend/internal/transport/websocket"
	"github.com/iamasit07/clash-of-dots/backend/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// 1. Stats persistence: Postgres when configured, process memory otherwise
	var repo stats.Repository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, postgres.Options{
			Driver:             cfg.DBDriver,
			URL:                cfg.DatabaseURL,
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			zlog.Fatal("database unreachable", zap.Error(err))
		}
		defer db.Close()

		zlog.Info("running database migrations")
		if err := postgres.RunMigrations(ctx, db); err != nil {
			zlog.Fatal("migration failed", zap.Error(err))
		}
		repo = postgres.NewStatsRepo(db)
	} else {
		zlog.Warn("DATABASE_URL not set, stats are kept in memory")
		repo = memory.NewStatsRepo()
	}

	// 2. Optional Redis snapshot cache
	var cache stats.Cache
	if client := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword, zlog); client != nil {
		defer client.Close()
		cache = redis.NewStatsCache(client, cfg.StatsCacheTTL)
	}

	statsService := stats.NewService(repo, cache, zlog)

	// 3. Games
	sessionManager := game.NewSessionManager(game.Dependencies{
		Search:    bot.SelectMove,
		Scheduler: game.DelayedScheduler{Delay: cfg.AIThinkDelay},
		Stats:     statsService,
		Log:       zlog,
	})
	gameService := game.NewService(sessionManager, domain.Variant(cfg.DefaultVariant))

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, statsService, cfg.CleanupInterval, cfg.SessionIdleTimeout, zlog)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 5. HTTP
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, gameService, cfg.AllowedOrigins, zlog)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, zlog))

	api := router.Group("/api")
	transportHttp.NewStatsHandler(statsService).Register(api)
	gameHandler := transportHttp.NewGameHandler(gameService)
	gameHandler.Viewers = connManager.Viewers
	gameHandler.Register(api)

	router.GET("/ws", wsHandler.HandleWebSocket)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": sessionManager.Count(), "connections": connManager.Count()})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	// last chance for updates that could not be stored earlier
	sessionManager.Drain()
	if n, err := statsService.FlushPending(shutdownCtx); err != nil {
		zlog.Warn("pending stats lost", zap.Int("flushed", n), zap.Int("pending", statsService.PendingCount()), zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
