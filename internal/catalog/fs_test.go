package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func tempCatalog(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempCatalog(t)
	content := []byte(`{"id":"mantis","name":"Mantis"}`)
	if err := s.Write("mantis.json", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("mantis.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempCatalog(t)
	if err := s.Write("set1/insects/ant.json", []byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := s.Read("set1/insects/ant.json"); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempCatalog(t)
	_ = s.Write("gone.json", []byte("{}"))
	if err := s.Delete("gone.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("gone.json"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestList_OnlyCardFiles(t *testing.T) {
	s := tempCatalog(t)
	_ = s.Write("a.json", []byte("a"))
	_ = s.Write("sub/b.json", []byte("b"))
	_ = s.Write("readme.txt", []byte("not a card"))
	_ = s.Write(".hidden.json", []byte("skip"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(items), items)
	}
	for _, it := range items {
		if it.Checksum == "" {
			t.Errorf("missing checksum for %s", it.Path)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempCatalog(t)
	for _, p := range []string{"../../etc/passwd", "../outside.json", "/etc/shadow"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := tempCatalog(t)
	_ = s.Write("atomic.json", []byte("v1"))
	if err := s.Write("atomic.json", []byte("v2")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.json")
	if string(got) != "v2" {
		t.Errorf("expected updated content, got %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(s.Root(), ".hemolymph-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "hemolymph-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
