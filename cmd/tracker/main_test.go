package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/albapepper/gvg-tracker/internal/roster"
)

// run executes the CLI against a throwaway SQLite file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "matches.db"))
	return dir
}

func TestAddAndSearch(t *testing.T) {
	setupStore(t)

	out, err := run(t, "add", "--atk", "van,eileene,rudy", "--def", "Orkah,Jave,Karin",
		"--result", "win", "--atk-pick", "vanessa:s1", "--tags", "Reflect", "--notes", "C6+")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Eileene|Rudy|Vanessa vs Jave|Karin|Orkah (WIN)") {
		t.Fatalf("add output = %q", out)
	}

	out, err = run(t, "search", "karin", "ork", "jave")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, want := range []string{"1 recorded matches", "Eileene | Rudy | Vanessa", "100%", "Vanessa:S1 (x1)", "note:  C6+"} {
		if !strings.Contains(out, want) {
			t.Errorf("search output missing %q:\n%s", want, out)
		}
	}

	out, _ = run(t, "search", "--def", "Orkah,Jave")
	if !strings.Contains(out, "Need 3 defenders") {
		t.Errorf("incomplete search output = %q", out)
	}
}

func TestAddRejectsInvalidMatch(t *testing.T) {
	setupStore(t)
	tests := [][]string{
		{"add", "--atk", "a,b", "--def", "d,e,f", "--result", "win"},
		{"add", "--atk", "a,b,c", "--def", "d,e,f", "--result", "draw"},
		{"add", "--atk", "a,b,c", "--def", "d,e,f", "--result", "win", "--atk-pick", "nocolon"},
		{"add", "--atk", "a,b,c", "--def", "d,e,f", "--result", "win", "--def-pick", "a:S1"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestExportImportClear(t *testing.T) {
	dir := setupStore(t)

	if _, err := run(t, "seed-demo"); err != nil {
		t.Fatalf("seed-demo: %v", err)
	}
	file := filepath.Join(dir, "backup.json")
	if _, err := run(t, "export", file); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil || !strings.Contains(string(data), `"schema": "skrb_gvg_3v3_v1"`) {
		t.Fatalf("export file = %s, %v", data, err)
	}

	if out, err := run(t, "clear"); err == nil {
		t.Fatalf("clear without --yes should fail, got %q", out)
	}
	out, err := run(t, "clear", "--yes")
	if err != nil || !strings.Contains(out, "Deleted 4 matches") {
		t.Fatalf("clear: %q, %v", out, err)
	}

	out, err = run(t, "import", file)
	if err != nil || !strings.Contains(out, "stored=4") {
		t.Fatalf("import: %q, %v", out, err)
	}
	out, err = run(t, "recent", "--limit", "2")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(out), "\n"); lines != 2 {
		t.Fatalf("expected header plus 2 rows, got:\n%s", out)
	}
}

func TestHeroes(t *testing.T) {
	out, err := run(t, "heroes", "yu", "--limit", "3")
	if err != nil {
		t.Fatalf("heroes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || len(lines) > 3 || lines[0] != "Yu Shin" {
		t.Fatalf("heroes output = %q", out)
	}
	out, err = run(t, "heroes", "--all")
	if err != nil {
		t.Fatalf("heroes --all: %v", err)
	}
	if got := strings.Split(strings.TrimSpace(out), "\n"); !slices.Equal(got, roster.Heroes()) {
		t.Fatalf("heroes --all printed %d names, roster has %d", len(got), len(roster.Heroes()))
	}
}
