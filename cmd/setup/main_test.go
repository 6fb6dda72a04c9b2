package main

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

func TestNewToken(t *testing.T) {
	token, hash, err := newToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		t.Errorf("hash does not match token: %v", err)
	}
	other, _, _ := newToken()
	if other == token {
		t.Error("tokens repeat")
	}
}

func TestProfileArgs_StoresEnumText(t *testing.T) {
	args := profileArgs(
		domain.Profile{Gender: domain.Female, ActivityLevel: domain.VeryActive},
		domain.Goals{FitnessGoal: domain.WeightLoss},
	)
	if args["gender"] != "Female" || args["activityLevel"] != "very_active" || args["fitnessGoal"] != "weight_loss" {
		t.Errorf("args = %v", args)
	}
}
