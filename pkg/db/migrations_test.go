package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsTestPrefix = "db:migrations_test"

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("%s - write %s: %v", migrationsTestPrefix, name, err)
		}
	}
}

func TestLoadMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"003_third.sql":  "THIRD",
		"001_first.sql":  "FIRST",
		"README.md":      "# notes",
		"002_second.sql": "SECOND",
		"seed.json":      "{}",
	})
	if err := os.Mkdir(filepath.Join(dir, "004_dir.sql"), 0o755); err != nil {
		t.Fatalf("%s - mkdir: %v", migrationsTestPrefix, err)
	}

	got, err := LoadMigrationFiles(dir)
	if err != nil {
		t.Fatalf("%s - unexpected error: %v", migrationsTestPrefix, err)
	}
	want := []string{"FIRST", "SECOND", "THIRD"}
	if len(got) != len(want) {
		t.Fatalf("%s - got %d migrations, want %d", migrationsTestPrefix, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s - migration %d = %q, want %q", migrationsTestPrefix, i, got[i], want[i])
		}
	}
}

func TestLoadMigrationFiles_EmptyDir(t *testing.T) {
	got, err := LoadMigrationFiles(t.TempDir())
	if err != nil {
		t.Fatalf("%s - unexpected error: %v", migrationsTestPrefix, err)
	}
	if len(got) != 0 {
		t.Errorf("%s - expected no migrations, got %d", migrationsTestPrefix, len(got))
	}
}

func TestLoadMigrationFiles_NonExistentDir(t *testing.T) {
	if _, err := LoadMigrationFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("%s - expected error for missing directory", migrationsTestPrefix)
	}
}

func TestLoadMigrationFiles_RepositoryMigrations(t *testing.T) {
	got, err := LoadMigrationFiles(filepath.Join("..", "..", "migrations"))
	if err != nil {
		t.Fatalf("%s - unexpected error: %v", migrationsTestPrefix, err)
	}
	if len(got) == 0 {
		t.Fatalf("%s - expected at least one migration", migrationsTestPrefix)
	}
	for _, table := range catalogTables {
		if !strings.Contains(got[0], "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("%s - first migration does not create %s", migrationsTestPrefix, table)
		}
	}
}

func TestLoadMigrations_NamesAndBlankFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"002_regions.SQL":    "CREATE TABLE regions ();",
		"001_settings.sql":   "CREATE TABLE catalog_settings ();",
		"003_whitespace.sql": "  \n\t\n",
	})

	got, err := LoadMigrations(dir)
	if err != nil {
		t.Fatalf("%s - unexpected error: %v", migrationsTestPrefix, err)
	}
	if len(got) != 2 {
		t.Fatalf("%s - got %d migrations, want 2", migrationsTestPrefix, len(got))
	}
	if got[0].Name != "001_settings.sql" || got[1].Name != "002_regions.SQL" {
		t.Errorf("%s - unexpected order: %q, %q", migrationsTestPrefix, got[0].Name, got[1].Name)
	}
	if !strings.Contains(got[1].SQL, "regions") {
		t.Errorf("%s - SQL not carried for %s", migrationsTestPrefix, got[1].Name)
	}
}
