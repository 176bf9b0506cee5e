package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"debt-planner/config"
	httpLayer "debt-planner/http"
	"debt-planner/logger"
	"debt-planner/repository"
	"debt-planner/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "debt-planner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logger.ForEnvironment(cfg.App.Env).
		Override(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cache, closeCache := newCache(cfg, log)
	defer closeCache()

	simulator := service.NewPayoffSimulator(log, service.WithMaxMonths(cfg.Payoff.MaxMonths))
	payoffService := service.NewDebtPayoffService(simulator, log,
		service.WithCache(cache, cfg.Redis.CacheTTL),
	)
	payoffHandler := httpLayer.NewPayoffHandler(payoffService, log, cfg.HTTP.MaxBodySize)

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.HTTP.RateLimitRequests,
		cfg.HTTP.RateLimitWindow,
		cfg.HTTP.RateLimitBurst,
	)
	defer rateLimiter.Stop()

	route := func(h http.HandlerFunc) http.Handler {
		return httpLayer.LoggingMiddleware(log, httpLayer.RateLimitMiddleware(rateLimiter, h))
	}

	mux := http.NewServeMux()
	mux.Handle("/debts/payoff-plan", route(payoffHandler.CalculatePayoffPlan))
	mux.Handle("/debts/payoff-plan/compare", route(payoffHandler.CompareStrategies))
	mux.Handle("/debts/suggested-rate", route(payoffHandler.SuggestedRate))

	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("debt planner listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

// newCache picks Redis when an address is configured and reachable, and
// the in-memory cache otherwise.
func newCache(cfg *config.Config, log *zap.Logger) (repository.CacheRepository, func()) {
	if cfg.Redis.Addr == "" {
		log.Info("plan cache: in-memory")
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, using in-memory plan cache",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.Info("plan cache: redis", zap.String("addr", cfg.Redis.Addr))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn("closing redis", zap.Error(err))
		}
	}
}
