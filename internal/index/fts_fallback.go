//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE on the cards table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ CardRow) error { return nil }

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search over name, type, kins, keywords and
// description text. Flavor text is not searched.
func (db *DB) Search(query string, limit int) ([]CardRow, error) {
	if limit <= 0 {
		limit = 200
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT `+selectColumns+`
		FROM cards
		WHERE name LIKE ? OR type LIKE ? OR kins LIKE ? OR keywords LIKE ? OR body LIKE ?
		ORDER BY name COLLATE NOCASE, id
		LIMIT ?
	`, like, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}
