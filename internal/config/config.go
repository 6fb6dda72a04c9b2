// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/martinle068/FitnnessApp/internal/domain"
	"github.com/martinle068/FitnnessApp/internal/planner"
)

// Config is shared by the API server and the command line tools. Fields a
// binary does not use are simply ignored by it.
type Config struct {
	HTTPAddr     string `env:"HTTP_ADDR" envDefault:"localhost:3000"`
	DatabaseURL  string `env:"DB_URL"`
	AppEnv       string `env:"APP_ENV" envDefault:"production"`
	APITokenHash string `env:"API_TOKEN_HASH"`

	CatalogDir            string        `env:"CATALOG_DIR" envDefault:"data"`
	FoodCatalogFile       string        `env:"FOOD_CATALOG_FILE" envDefault:"food_items.csv"`
	ExerciseCatalogFile   string        `env:"EXERCISE_CATALOG_FILE" envDefault:"exercises.csv"`
	CatalogWatch          bool          `env:"CATALOG_WATCH" envDefault:"true"`
	CatalogReloadDebounce time.Duration `env:"CATALOG_RELOAD_DEBOUNCE" envDefault:"500ms"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	PlanCacheTTL  time.Duration `env:"PLAN_CACHE_TTL" envDefault:"168h"`

	PlanSchedule string `env:"PLAN_SCHEDULE"`

	MinPortionGrams float64  `env:"MIN_PORTION_G" envDefault:"10"`
	MaxPortionGrams float64  `env:"MAX_PORTION_G" envDefault:"300"`
	MaxPlanItems    int      `env:"MAX_PLAN_ITEMS" envDefault:"8"`
	TrainingDays    []string `env:"TRAINING_DAYS" envDefault:"Monday,Wednesday,Friday" envSeparator:","`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
}

// Load parses the environment and validates the planner settings.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MinPortionGrams <= 0 || c.MaxPortionGrams < c.MinPortionGrams {
		return fmt.Errorf("MIN_PORTION_G (%v) and MAX_PORTION_G (%v): need 0 < min <= max", c.MinPortionGrams, c.MaxPortionGrams)
	}
	if c.MaxPlanItems <= 0 {
		return fmt.Errorf("MAX_PLAN_ITEMS must be positive, got %d", c.MaxPlanItems)
	}
	if _, err := c.Weekdays(); err != nil {
		return fmt.Errorf("TRAINING_DAYS: %w", err)
	}
	if c.CatalogReloadDebounce < 0 {
		return fmt.Errorf("CATALOG_RELOAD_DEBOUNCE must not be negative")
	}
	return nil
}

// Development reports whether APP_ENV selects development logging.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func (c *Config) FoodCatalogPath() string {
	return filepath.Join(c.CatalogDir, c.FoodCatalogFile)
}

func (c *Config) ExerciseCatalogPath() string {
	return filepath.Join(c.CatalogDir, c.ExerciseCatalogFile)
}

// DataPath resolves a file name next to the catalog files.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.CatalogDir, name)
}

// Weekdays parses TrainingDays into Monday-first order.
func (c *Config) Weekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.TrainingDays))
	for _, s := range c.TrainingDays {
		d, err := domain.ParseWeekday(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return planner.SortedTrainingDays(days), nil
}

// NutritionBuilder returns the plan builder configured by the portion and
// item limits.
func (c *Config) NutritionBuilder() planner.NutritionBuilder {
	return planner.NutritionBuilder{
		MinPortionGrams: c.MinPortionGrams,
		MaxPortionGrams: c.MaxPortionGrams,
		MaxItems:        c.MaxPlanItems,
	}
}

// WorkoutBuilder returns the plan builder for the configured training days.
func (c *Config) WorkoutBuilder() (planner.WorkoutBuilder, error) {
	days, err := c.Weekdays()
	if err != nil {
		return planner.WorkoutBuilder{}, err
	}
	return planner.WorkoutBuilder{TrainingDays: days}, nil
}
