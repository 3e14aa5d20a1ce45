package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tazhibayda/bookstore-api/internal/config"
	api "github.com/tazhibayda/bookstore-api/internal/http"
	applog "github.com/tazhibayda/bookstore-api/internal/log"
	"github.com/tazhibayda/bookstore-api/internal/metrics"
	"github.com/tazhibayda/bookstore-api/internal/queue"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

// @title Bookstore API
// @version 0.1.0
// @description CRUD backend for users, books, authors, and shopping carts.
// @schemes http https
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := applog.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer applog.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var events queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		events, err = queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
	}
	defer events.Close()

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		defer rds.Close()
	}

	h := api.NewHandler(store, events, rds, cfg.RateLimitPerMin)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("bookstore-api listening", zap.String("port", cfg.Port))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
