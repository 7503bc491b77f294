// Package catalog stores card records as JSON files in a directory tree.
package catalog

// Entry describes one card file in the catalog.
type Entry struct {
	Path     string
	Checksum string
}

// Provider is the interface for catalog file operations.
// All paths are relative to the catalog root.
type Provider interface {
	// List returns every card file under dir.
	List(dir string) ([]Entry, error)
	// Read returns the raw bytes of the card file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the card file at path.
	Write(path string, content []byte) error
	// Delete removes the card file at path.
	Delete(path string) error
}

// Ext is the file extension of card files.
const Ext = ".json"
