package index

// CardIndex defines the card indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type CardIndex interface {
	UpsertCard(row CardRow) error
	DeleteByPath(path string) error
	GetCard(id string) (*CardRow, error)
	AllCards() ([]CardRow, error)
	Search(query string, limit int) ([]CardRow, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies CardIndex at compile time.
var _ CardIndex = (*DB)(nil)
