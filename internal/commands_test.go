package internal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bulkCards = `[
	{"id": "lost-man", "name": "Lost Man", "type": "creature", "cost": 2, "health": 1, "defense": 0, "power": 1,
	 "description": ["Wanders."]},
	{"id": "ritual", "name": "Ritual", "type": "command", "cost": 1,
	 "description": [{"Saga": [["Draw."], ["Bleed."]]}]}
]`

func testOptions(t *testing.T) []Option {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.Catalog.Path = filepath.Join(dir, "cards")
	cfg.SQLite.Path = filepath.Join(dir, "index.db")
	return []Option{WithConfig(cfg), WithLogOutput(io.Discard)}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShow_File(t *testing.T) {
	path := writeTemp(t, "cards.json", bulkCards)

	var out bytes.Buffer
	if err := Show(context.Background(), &out, path); err != nil {
		t.Fatalf("Show: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Lost Man", "Wanders.", "1/0/1", "Ritual", "1. Draw.", "2. Bleed."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestShow_InvalidFile(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"name": "No Id"}`)
	if err := Show(context.Background(), io.Discard, path); err == nil {
		t.Fatal("expected error for card without id")
	}
}

func TestImportThenShowByID(t *testing.T) {
	opts := testOptions(t)
	path := writeTemp(t, "cards.json", bulkCards)

	n, err := Import(context.Background(), path, false, opts...)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	var out bytes.Buffer
	if err := Show(context.Background(), &out, "lost-man", opts...); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if !strings.Contains(out.String(), "Wanders.") {
		t.Errorf("output = %q", out.String())
	}

	if _, err := Import(context.Background(), path, false, opts...); err == nil {
		t.Error("second import without replace should fail")
	}
	if _, err := Import(context.Background(), path, true, opts...); err != nil {
		t.Errorf("import with replace: %v", err)
	}
}

func TestShow_UnknownID(t *testing.T) {
	if err := Show(context.Background(), io.Discard, "nobody", testOptions(t)...); err == nil {
		t.Fatal("expected error for unknown card")
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background(), WithLogOutput(io.Discard)); err == nil {
		t.Fatal("expected error without config")
	}
}
