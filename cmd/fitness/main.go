// Command fitness is the console front end of the planner. It works on the
// CSV files in CATALOG_DIR and needs no database.
// Usage: go run ./cmd/fitness
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/martinle068/FitnnessApp/internal/catalogfs"
	"github.com/martinle068/FitnnessApp/internal/config"
	"github.com/martinle068/FitnnessApp/internal/console"
)

// newLogger writes warnings and above to stderr so they do not interleave
// with the menu on stdout.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	if !cfg.Development() {
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return zc.Build()
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snap, err := catalogfs.Load(cfg.FoodCatalogPath(), cfg.ExerciseCatalogPath())
	if err != nil {
		logger.Fatal("catalog", zap.Error(err))
	}
	for _, e := range snap.FoodErrors {
		logger.Warn("food row rejected", zap.Error(e))
	}
	for _, e := range snap.ExerciseErrors {
		logger.Warn("exercise row rejected", zap.Error(e))
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		prompt:  console.New(os.Stdin, os.Stdout),
		out:     os.Stdout,
		catalog: snap,
	}
	if err := a.run(); err != nil {
		logger.Fatal("console", zap.Error(err))
	}
}
