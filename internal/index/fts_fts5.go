//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS cards_fts USING fts5(
			id UNINDEXED,
			name,
			type,
			kins,
			keywords,
			body,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, c CardRow) error {
	_, _ = tx.Exec(`DELETE FROM cards_fts WHERE id = ?`, c.ID)
	_, err := tx.Exec(`INSERT INTO cards_fts (id, name, type, kins, keywords, body) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, strings.Join(c.Kins, " "), strings.Join(c.Keywords, " "), c.Body)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM cards_fts WHERE id = ?`, id)
}

// Search performs an FTS5 phrase search ranked by relevance.
func (db *DB) Search(query string, limit int) ([]CardRow, error) {
	if limit <= 0 {
		limit = 200
	}
	phrase := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
	rows, err := db.conn.Query(`
		SELECT c.id, c.path, c.name, c.type, c.kins, c.keywords, c.body, c.flavor, c.checksum, c.data, c.updated_at
		FROM cards_fts f
		JOIN cards c ON c.id = f.id
		WHERE cards_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, phrase, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}
