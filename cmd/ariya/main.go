package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ariya-events/ariya/internal/app"
	"github.com/ariya-events/ariya/internal/auth"
	"github.com/ariya-events/ariya/internal/events"
	"github.com/ariya-events/ariya/internal/moderation"
	"github.com/ariya-events/ariya/internal/observability"
	"github.com/ariya-events/ariya/internal/platform/cache"
	"github.com/ariya-events/ariya/internal/platform/db"
	"github.com/ariya-events/ariya/internal/ratelimit"
	"github.com/ariya-events/ariya/internal/region"
	"github.com/ariya-events/ariya/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	quotas := ratelimit.DefaultQuotas()
	applyQuotaOverride(quotas, ratelimit.CategoryAuth, cfg.RateAuthMax, cfg.RateAuthWindow)
	applyQuotaOverride(quotas, ratelimit.CategoryAPI, cfg.RateAPIMax, cfg.RateAPIWindow)
	applyQuotaOverride(quotas, ratelimit.CategoryUpload, cfg.RateUploadMax, cfg.RateUploadWindow)
	rateLimits := ratelimit.NewStore(quotas)
	rateLimits.StartPruning(5 * time.Minute)
	defer rateLimits.Stop()

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	mailer := jobs.NewMailer(jobsClient)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL, redisClient)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(logger, authRepo, tokens, redisClient, mailer, nil, cfg.RefreshTTL)
	authHandler := auth.NewHandler(logger, authService, rateLimits)
	resolver := auth.NewResolver(logger, tokens, authRepo)

	eventsHandler := events.NewHandler(logger, events.NewService(events.NewRepository(dbpool)))
	moderationHandler := moderation.NewHandler(logger, moderation.NewService(logger, moderation.NewRepository(dbpool)))

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Region:            region.NewResolver(cfg.DefaultCountry),
		RateLimits:        rateLimits,
		Resolver:          resolver,
		AuthHandler:       authHandler,
		EventsHandler:     eventsHandler,
		ModerationHandler: moderationHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func applyQuotaOverride(quotas map[ratelimit.Category]ratelimit.Quota, category ratelimit.Category, max int, window time.Duration) {
	q := quotas[category]
	if max > 0 {
		q.MaxRequests = max
	}
	if window > 0 {
		q.Window = window
	}
	quotas[category] = q
}
