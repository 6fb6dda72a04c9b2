package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	cases := map[string]string{
		"2026-09-01-002-create-profile.sql": "create profile",
		"2026-09-01-003-create-plans.sql":   "create plans",
		"seed.sql":                          "seed",
	}
	for in, want := range cases {
		if got := descriptionFromFilename(in); got != want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPendingMigrations(t *testing.T) {
	files := []string{
		"db/2026-09-01-003-create-plans.sql",
		"db/2026-09-01-001-create-migrations.sql",
		"db/2026-09-01-002-create-profile.sql",
	}
	applied := map[string]bool{"2026-09-01-001-create-migrations.sql": true}

	got := pendingMigrations(files, applied)
	want := "db/2026-09-01-002-create-profile.sql,db/2026-09-01-003-create-plans.sql"
	if strings.Join(got, ",") != want {
		t.Errorf("pending = %v", got)
	}
	if files[0] != "db/2026-09-01-003-create-plans.sql" {
		t.Error("input slice was reordered")
	}
}

// TestRepoMigrationsAreOrdered checks the checked-in files follow the naming
// scheme the runner sorts by.
func TestRepoMigrationsAreOrdered(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "db", "*.sql"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no migrations found")
	}
	for _, f := range files {
		name := filepath.Base(f)
		if !migrationPrefix.MatchString(name) {
			t.Errorf("%s does not start with YYYY-MM-DD-NNN-", name)
		}
	}
	if first := filepath.Base(pendingMigrations(files, nil)[0]); !strings.Contains(first, "create-migrations") {
		t.Errorf("first migration is %s, want the migrations table", first)
	}
}
