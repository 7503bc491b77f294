package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS implements Provider on the local file system.
type FS struct {
	root string
}

// NewFS returns an FS rooted at root, which must be an existing directory.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("catalog: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("catalog: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute catalog directory.
func (f *FS) Root() string {
	return f.root
}

// resolve joins rel onto the root and rejects paths that escape it.
func (f *FS) resolve(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("catalog: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", fmt.Errorf("catalog: resolve path: %w", err)
	}
	if abs != f.root && !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("catalog: path escapes catalog root: %s", rel)
	}
	return abs, nil
}

// List walks dir and returns every card file with its checksum.
// Hidden files, including in-flight temp files, are skipped.
func (f *FS) List(dir string) ([]Entry, error) {
	base, err := f.resolve(dir)
	if err != nil {
		return nil, err
	}
	var out []Entry
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsCardFile(d.Name()) {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		out = append(out, Entry{Path: filepath.ToSlash(rel), Checksum: Checksum(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of a card file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces a card file via temp file, fsync and rename.
func (f *FS) Write(path string, content []byte) error {
	abs, err := f.resolve(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hemolymph-tmp-*")
	if err != nil {
		return fmt.Errorf("catalog: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("catalog: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("catalog: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("catalog: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("catalog: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes a card file.
func (f *FS) Delete(path string) error {
	abs, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("catalog: delete %s: %w", path, err)
	}
	return nil
}

// IsCardFile reports whether name looks like a card file.
func IsCardFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, Ext) && !strings.HasPrefix(base, ".")
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
