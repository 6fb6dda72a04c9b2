package main

import (
	"testing"
)

func TestValidateSchedule(t *testing.T) {
	cases := []struct {
		spec    string
		wantErr bool
	}{
		{"0 30 5 * * *", false},
		{"@daily", false},
		{"@every 6h", false},
		{"0 0 6 * * MON-FRI", false},
		{"bogus", true},
		{"61 * * * * *", true},
		{"", true},
	}
	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			err := validateSchedule(tc.spec)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateSchedule(%q) error = %v, wantErr %v", tc.spec, err, tc.wantErr)
			}
		})
	}
}

// TestRunScheduledGeneration stores one plan of each kind per tick.
func TestRunScheduledGeneration(t *testing.T) {
	h, db, _ := setupTest(t, true)

	h.runScheduledGeneration()
	h.runScheduledGeneration()

	if len(db.nutrition) != 2 || len(db.workouts) != 2 {
		t.Fatalf("stored %d nutrition / %d workout plans, want 2 / 2", len(db.nutrition), len(db.workouts))
	}
	if db.nutrition[0].Items()[0].Food.Name == db.nutrition[1].Items()[0].Food.Name {
		t.Errorf("consecutive scheduled plans start with the same food %q", db.nutrition[0].Items()[0].Food.Name)
	}
}

// TestRunScheduledGeneration_WithoutProfile logs and stores nothing.
func TestRunScheduledGeneration_WithoutProfile(t *testing.T) {
	h, db, _ := setupTest(t, false)
	h.runScheduledGeneration()
	if len(db.nutrition) != 0 || len(db.workouts) != 0 {
		t.Errorf("plans stored without a profile")
	}
}
