package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/diet-tracker-api/internal/config"
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/logger"
	"github.com/yukikurage/diet-tracker-api/internal/metrics"
	"github.com/yukikurage/diet-tracker-api/internal/server"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"github.com/yukikurage/diet-tracker-api/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Init(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	metrics.Init()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatal("migration_failed", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("session_store_failed", zap.Error(err))
	}

	deps := server.Dependencies{
		DB:           database.GetDB(),
		SessionStore: store,
	}

	if cfg.TokenDenylist {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis_connect_failed", zap.Error(err))
		}
		defer client.Close()
		deps.Denylist = services.NewRedisDenylist(client)
	}

	if cfg.GoogleClientID != "" {
		deps.Social = services.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		log.Warn("google_login_disabled")
	}

	fileStore, err := newFileStore(cfg)
	if err != nil {
		log.Fatal("storage_init_failed", zap.Error(err))
	}
	deps.Images = services.NewImageService(fileStore)

	// Initialize AI service
	if cfg.OpenAIAPIKey != "" {
		deps.AI = services.NewAIService(cfg.OpenAIAPIKey)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server_starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server_shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.SessionStore == "cookie" {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	} else {
		s, err := redisStore.NewStore(
			10,                        // Redis pool size
			"tcp",                     // network type
			cfg.RedisAddr(),           // Redis address from config
			cfg.RedisPassword,         // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = s
	}

	// Configure session options based on environment
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func newFileStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
	}
	return storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
}
