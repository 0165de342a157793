package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"lumarise-backend/config"
	"lumarise-backend/logger"
	"lumarise-backend/metrics"
	"lumarise-backend/middleware"
	"lumarise-backend/routes"
	"lumarise-backend/services"
	"lumarise-backend/storage"
	"lumarise-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "lumarise-api"}).Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := context.Background()

	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database.connect_failed", err)
		os.Exit(1)
	}
	if _, err := config.SeedDatabase(ctx, db, cfg.Admin, logg); err != nil {
		logg.Error(ctx, "database.seed_failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "database.ready")

	store, err := storage.New(ctx, cfg.Storage, cfg.Media)
	if err != nil {
		logg.Error(ctx, "storage.init_failed", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	degradation := metrics.NewDegradation(registry)

	deps := routes.Deps{
		DB:    db,
		Store: store,
		Images: services.NewImageService(services.ImageOptions{
			MaxWidth:  cfg.Image.MaxWidth,
			Quality:   cfg.Image.Quality,
			MaxPixels: cfg.Image.MaxPixels,
		}, logg, degradation),
		Metrics:  degradation,
		Gatherer: registry,
		Mailer:   utils.NewMailer(cfg.SMTP, logg),
		Log:      logg,
	}

	rdb := connectRedis(ctx, cfg.Redis, logg)
	if rdb != nil {
		defer rdb.Close()
		deps.Limiter = middleware.NewRedisCounter(rdb, cfg.Redis.CommandTimeout)
	}

	router := routes.SetupRouter(cfg, deps)

	addr := ":" + cfg.App.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "addr", addr), "server.starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server.listen_failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logg.Info(ctx, "server.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "server.forced_shutdown", err)
		return
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logg.Info(ctx, "server.stopped")
}

// connectRedis returns nil when REDIS_URL is unset or the server does not
// answer; rate limiting is then disabled.
func connectRedis(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) *redis.Client {
	if cfg.URL == "" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logg.Warn(ctx, "redis.invalid_url", err)
		return nil
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	client := redis.NewClient(opts)
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logg.Warn(ctx, "redis.unavailable", err)
		_ = client.Close()
		return nil
	}
	logg.Info(ctx, "redis.connected")
	return client
}
