package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestInt_RepromptsUntilInRange(t *testing.T) {
	p, out := newTestPrompter("abc\n200\n42\n")
	v, err := p.Int("Age", 1, 120)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("Int = %d, want 42", v)
	}
	if !strings.Contains(out.String(), `"abc" is not a whole number`) || !strings.Contains(out.String(), "must be between 1 and 120") {
		t.Errorf("missing validation messages in %q", out.String())
	}
}

func TestOptionalFloat_DefaultAndComma(t *testing.T) {
	p, _ := newTestPrompter("\n62,5\n")
	v, err := p.OptionalFloat("Weight", 20, 400, 60)
	if err != nil || v != 60 {
		t.Errorf("empty answer = %v, %v; want 60", v, err)
	}
	v, err = p.OptionalFloat("Weight", 20, 400, 60)
	if err != nil || v != 62.5 {
		t.Errorf("comma answer = %v, %v; want 62.5", v, err)
	}
}

func TestLine_ClosedInput(t *testing.T) {
	p, _ := newTestPrompter("last line without newline")
	s, err := p.Line("x")
	if err != nil || s != "last line without newline" {
		t.Errorf("Line = %q, %v", s, err)
	}
	if _, err := p.Line("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := p.Int("x", 0, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Int on closed input: expected ErrClosed, got %v", err)
	}
}

func TestChoice(t *testing.T) {
	p, out := newTestPrompter("0\n3\n\n")
	i, err := p.Choice("Pick", []string{"a", "b", "c"}, -1)
	if err != nil || i != 2 {
		t.Errorf("Choice = %d, %v; want 2", i, err)
	}
	if !strings.Contains(out.String(), "  3) c") {
		t.Errorf("options not listed: %q", out.String())
	}
	i, err = p.Choice("Pick", []string{"a", "b"}, 1)
	if err != nil || i != 1 {
		t.Errorf("default Choice = %d, %v; want 1", i, err)
	}
}

func TestConfirm(t *testing.T) {
	p, _ := newTestPrompter("maybe\nY\n\n")
	if yes, err := p.Confirm("Sure?"); err != nil || !yes {
		t.Errorf("Confirm = %v, %v; want true", yes, err)
	}
	if yes, err := p.Confirm("Sure?"); err != nil || yes {
		t.Errorf("empty Confirm = %v, %v; want false", yes, err)
	}
}

func TestAskProfile_New(t *testing.T) {
	// name, gender, age, height, weight, activity level
	p, _ := newTestPrompter("Ana\n2\n30\n165\n60\n3\n")
	got, err := AskProfile(p, domain.Profile{})
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Profile{Name: "Ana", Gender: domain.Female, Age: 30, HeightCM: 165, WeightKG: 60, ActivityLevel: domain.ModeratelyActive}
	if got != want {
		t.Errorf("AskProfile = %+v, want %+v", got, want)
	}
}

func TestAskProfile_EditKeepsDefaults(t *testing.T) {
	cur := domain.Profile{Name: "Ana", Gender: domain.Female, Age: 30, HeightCM: 165, WeightKG: 60, ActivityLevel: domain.ModeratelyActive}
	p, _ := newTestPrompter("\n\n\n\n58\n\n")
	got, err := AskProfile(p, cur)
	if err != nil {
		t.Fatal(err)
	}
	cur.WeightKG = 58
	if got != cur {
		t.Errorf("AskProfile = %+v, want %+v", got, cur)
	}
}

func TestAskGoals(t *testing.T) {
	cur := domain.Goals{FitnessGoal: domain.Maintenance, CustomCalories: 1800, UseCustomCalories: true}
	// goal 2 = muscle gain, target weight, body fat
	p, _ := newTestPrompter("2\n65\n18\n")
	got, err := AskGoals(p, cur)
	if err != nil {
		t.Fatal(err)
	}
	if got.FitnessGoal != domain.MuscleGain || got.TargetWeightKG != 65 {
		t.Errorf("AskGoals = %+v", got)
	}
	if got.BodyFatPercentage == nil || *got.BodyFatPercentage != 18 {
		t.Errorf("body fat = %v, want 18", got.BodyFatPercentage)
	}
	if !got.UseCustomCalories || got.CustomCalories != 1800 {
		t.Errorf("custom calories not carried over: %+v", got)
	}
}
