package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"chat-relay/internal/config"
	"chat-relay/internal/db"
	apihttp "chat-relay/internal/http"
	"chat-relay/internal/relay"
	"chat-relay/internal/repository"
	"chat-relay/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Warn("db ping failed", zap.Error(err))
	}

	messageRepo := repository.NewPgMessageRepository(pool)

	var msgLimiter service.MessageRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			msgLimiter = service.NewRedisMessageRateLimiter(
				redisClient,
				time.Duration(cfg.MsgRateWindow)*time.Second,
				cfg.MsgRateMax,
			)
		}
		cancel()
	}

	registry := relay.NewRegistry(logger)
	relayRouter := relay.NewRouter(logger, registry, messageRepo, msgLimiter)
	wsHandler := relay.NewWebSocketHandler(registry, relayRouter, cfg.AllowedOrigin, logger)

	historySvc := service.NewHistoryService(messageRepo)
	historyHandler := apihttp.NewHistoryHandler(logger, historySvc)
	router := apihttp.NewRouter(logger, historyHandler, wsHandler, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
