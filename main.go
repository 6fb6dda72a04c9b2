// Command FitnnessApp serves the plan-generation API: profile and goals,
// nutrient targets, the food and exercise catalogs, and generated nutrition
// and workout plans.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/cache"
	"github.com/martinle068/FitnnessApp/internal/catalogfs"
	"github.com/martinle068/FitnnessApp/internal/config"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newPlanCache returns the Redis cache when REDIS_ADDR answers a ping and the
// in-memory cache otherwise.
func newPlanCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.PlanCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryPlanCache(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis ping failed, using in-memory plan cache", zap.Error(err))
		client.Close()
		return cache.NewMemoryPlanCache(), func() {}
	}
	logger.Info("redis plan cache ready", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisPlanCache(client, cfg.PlanCacheTTL), func() { client.Close() }
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DB_URL is required")
	}
	pool, err := getDBPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("DB pool ready")

	store, err := catalogfs.NewStore(cfg.FoodCatalogPath(), cfg.ExerciseCatalogPath())
	if err != nil {
		logger.Fatal("catalog", zap.Error(err))
	}
	snap := store.Current()
	logger.Info("catalog loaded",
		zap.Int("foods", len(snap.Foods)),
		zap.Int("exercises", len(snap.Exercises)),
		zap.Int("rejected", len(snap.FoodErrors)+len(snap.ExerciseErrors)),
	)
	for _, e := range snap.FoodErrors {
		logger.Warn("food row rejected", zap.Error(e))
	}
	for _, e := range snap.ExerciseErrors {
		logger.Warn("exercise row rejected", zap.Error(e))
	}

	if cfg.CatalogWatch {
		if err := catalogfs.NewWatcher(store, logger, cfg.CatalogReloadDebounce).Start(ctx); err != nil {
			logger.Warn("catalog watcher disabled", zap.Error(err))
		}
	}

	plans, closeCache := newPlanCache(ctx, cfg, logger)
	defer closeCache()

	h := newHandler(newPGStore(pool, logger), logger, store, plans, cfg)
	if len(h.tokenHash) == 0 {
		logger.Warn("API_TOKEN_HASH not set, /api routes are unauthenticated")
	}

	if cfg.PlanSchedule != "" {
		sched, err := h.startScheduler(cfg.PlanSchedule)
		if err != nil {
			logger.Fatal("scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
