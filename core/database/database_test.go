package database

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "interview"}

	dsn := cfg.DSN()
	if !strings.Contains(dsn, "host=db") || !strings.Contains(dsn, "sslmode=disable") {
		t.Fatalf("dsn = %q", dsn)
	}
	if got, want := cfg.URL(), "postgres://bot:p%40ss@db:5432/interview?sslmode=disable"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestSelectApplied(t *testing.T) {
	files := []string{"000001_create_questions.up.sql", "000002_add_index.up.sql", "000003_x.up.sql"}

	if got := selectApplied(files, 1, 3); !reflect.DeepEqual(got, files[1:]) {
		t.Fatalf("applied = %v", got)
	}
	if got := selectApplied(files, 3, 3); got != nil {
		t.Fatalf("expected nothing applied, got %v", got)
	}
}

func TestListMigrationFilesOnlyUp(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_b.up.sql", "000001_a.up.sql", "000001_a.down.sql", "README"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got := listMigrationFiles(dir)
	want := []string{"000001_a.up.sql", "000002_b.up.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}

func TestResolveMigrationsPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "m")
	if got, err := resolveMigrationsPath(abs); err != nil || got != abs {
		t.Fatalf("abs = %q, %v", got, err)
	}
	got, err := resolveMigrationsPath("")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "migrations" {
		t.Fatalf("default = %q", got)
	}
}
