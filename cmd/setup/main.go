// CLI tool to store the single user's profile and goals and to issue the API
// token. The token is printed once; only its bcrypt hash is kept, in
// API_TOKEN_HASH.
// Usage: go run ./cmd/setup
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/martinle068/FitnnessApp/internal/config"
	"github.com/martinle068/FitnnessApp/internal/console"
	"github.com/martinle068/FitnnessApp/internal/domain"
)

const upsertProfile = `INSERT INTO profile (id, name, gender, age, height_cm, weight_kg, activity_level,
	fitness_goal, target_weight_kg, body_fat_percentage, custom_calories, use_custom_calories)
 VALUES (1, @name, @gender, @age, @heightCM, @weightKG, @activityLevel,
	@fitnessGoal, @targetWeightKG, @bodyFat, 0, false)
 ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	gender = EXCLUDED.gender,
	age = EXCLUDED.age,
	height_cm = EXCLUDED.height_cm,
	weight_kg = EXCLUDED.weight_kg,
	activity_level = EXCLUDED.activity_level,
	fitness_goal = EXCLUDED.fitness_goal,
	target_weight_kg = EXCLUDED.target_weight_kg,
	body_fat_percentage = EXCLUDED.body_fat_percentage,
	updated_at = now()`

func profileArgs(p domain.Profile, g domain.Goals) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name": p.Name, "gender": p.Gender.String(), "age": p.Age,
		"heightCM": p.HeightCM, "weightKG": p.WeightKG,
		"activityLevel": p.ActivityLevel.String(), "fitnessGoal": g.FitnessGoal.String(),
		"targetWeightKG": g.TargetWeightKG, "bodyFat": g.BodyFatPercentage,
	}
}

// newToken returns a fresh API token and its bcrypt hash.
func newToken() (token, hash string, err error) {
	token = uuid.New().String()
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return token, string(h), nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DB_URL is required")
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	p := console.New(os.Stdin, os.Stdout)

	profile, err := console.AskProfile(p, domain.Profile{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading profile: %v\n", err)
		os.Exit(1)
	}
	goals, err := console.AskGoals(p, domain.Goals{FitnessGoal: domain.Maintenance})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading goals: %v\n", err)
		os.Exit(1)
	}

	if _, err := conn.Exec(context.Background(), upsertProfile, profileArgs(profile, goals)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		os.Exit(1)
	}

	token, hash, err := newToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nProfile saved.\n")
	fmt.Printf("  Name:           %s\n", profile.Name)
	fmt.Printf("  Goal:           %s\n", goals.FitnessGoal)
	fmt.Printf("  Auth Token:     %s\n", token)
	fmt.Printf("  API_TOKEN_HASH: %s\n", hash)
}
