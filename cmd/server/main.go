// Command server runs the ChatOp rental API.
//
// @title        ChatOp Rental API
// @version      1.0
// @description  Rental listing backend with JWT authentication.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatop/rental-api/internal/api"
	"github.com/chatop/rental-api/internal/core/service"
	"github.com/chatop/rental-api/internal/infrastructure/config"
	mongodb "github.com/chatop/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chatop/rental-api/internal/infrastructure/db/redis"
	"github.com/chatop/rental-api/internal/infrastructure/queue"
	"github.com/chatop/rental-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Notification pipeline: message events fan out to sharded workers that
	// maintain per-owner unread counters in Redis.
	counter := redisdb.NewUnreadCounter(rdb)
	notifications := service.NewNotificationService(counter, log)
	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, notifications, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg.JWTSecret, cfg.JWTTTL, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
