// Package testutil provides shared test helpers for setting up catalogs and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/index"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "hemolymph-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestCatalog creates a temporary catalog directory with a catalog.Provider.
func TestCatalog(t *testing.T) (string, catalog.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := catalog.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteCard writes raw card JSON to rel under dir and indexes it in db.
func WriteCard(t *testing.T, dir string, db *index.DB, rel, data string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := index.IndexFile(db, rel, []byte(data)); err != nil {
		t.Fatalf("index %s: %v", rel, err)
	}
}
