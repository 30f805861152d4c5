package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pingme/backend/internal/api/handler"
	"pingme/backend/internal/auth"
	"pingme/backend/internal/chathub"
	"pingme/backend/internal/config"
	"pingme/backend/internal/metrics"
	"pingme/backend/internal/models"
	"pingme/backend/internal/storage"
)

func setupDependencies(cfg *config.Config, log *zap.Logger) (*gorm.DB, *redis.Client) {
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the conversation resolver and the
	// register endpoint both rely on.
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("connecting postgres", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal("connecting redis", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
	); err != nil {
		log.Fatal("running migrations", zap.Error(err))
	}

	log.Info("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	db, rdb := setupDependencies(cfg, log)
	s := storage.NewStorageService(db, rdb)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	metrics.Register()

	hub := chathub.NewManager(s, log)
	hub.StartEventListener(context.Background(), s.SubscribeEvents())

	r := gin.Default()
	h := handler.NewHandler(hub, s, tokens, log)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/users", h.RequireAuth(), h.ListUsers)
	r.GET("/conversations/:userId/messages", h.RequireAuth(), h.GetConversationMessages)
	r.GET("/ws", h.ServeWebSocket)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("pingme backend listening", zap.String("addr", cfg.HTTPAddr))
	log.Fatal("server stopped", zap.Error(server.ListenAndServe()))
}
