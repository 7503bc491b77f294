package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/hemolymph/internal/apperr"
)

// CardRow represents a row in the cards table.
type CardRow struct {
	ID        string
	Path      string
	Name      string
	Type      string
	Kins      []string
	Keywords  []string
	Body      string
	Flavor    string
	Checksum  string
	Data      []byte
	UpdatedAt time.Time
}

const selectColumns = `id, path, name, type, kins, keywords, body, flavor, checksum, data, updated_at`

// UpsertCard inserts or replaces a card and its FTS entry within a transaction.
// Any other card previously stored under the same path is removed.
func (db *DB) UpsertCard(c CardRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := deleteByPath(tx, c.Path, c.ID); err != nil {
		return err
	}

	kinsJSON, _ := json.Marshal(nonNil(c.Kins))
	keywordsJSON, _ := json.Marshal(nonNil(c.Keywords))
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO cards (id, path, name, type, kins, keywords, body, flavor, checksum, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path       = excluded.path,
			name       = excluded.name,
			type       = excluded.type,
			kins       = excluded.kins,
			keywords   = excluded.keywords,
			body       = excluded.body,
			flavor     = excluded.flavor,
			checksum   = excluded.checksum,
			data       = excluded.data,
			updated_at = excluded.updated_at
	`, c.ID, c.Path, c.Name, c.Type, string(kinsJSON), string(keywordsJSON), c.Body, c.Flavor, c.Checksum, string(c.Data), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert card: %w", err)
	}

	if err := ftsUpsert(tx, c); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteByPath removes every card stored under path.
func (db *DB) DeleteByPath(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteByPath(tx, path, ""); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteByPath removes cards under path, except the one with id keep.
func deleteByPath(tx *sql.Tx, path, keep string) error {
	rows, err := tx.Query(`SELECT id FROM cards WHERE path = ? AND id != ?`, path, keep)
	if err != nil {
		return fmt.Errorf("index: find by path: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		ftsDelete(tx, id)
		if _, err := tx.Exec(`DELETE FROM cards WHERE id = ?`, id); err != nil {
			return fmt.Errorf("index: delete card: %w", err)
		}
	}
	return nil
}

// GetCard returns the card with the given id, or apperr.ErrNotFound.
func (db *DB) GetCard(id string) (*CardRow, error) {
	row := db.conn.QueryRow(`SELECT `+selectColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get card: %w", err)
	}
	return c, nil
}

// AllCards returns every indexed card ordered by name.
func (db *DB) AllCards() ([]CardRow, error) {
	rows, err := db.conn.Query(`SELECT ` + selectColumns + ` FROM cards ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("index: all cards: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}

// AllChecksums returns the checksum of every indexed path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM cards`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner) (*CardRow, error) {
	var (
		c                  CardRow
		kinsJSON, keywords string
		data               string
	)
	if err := s.Scan(&c.ID, &c.Path, &c.Name, &c.Type, &kinsJSON, &keywords, &c.Body, &c.Flavor, &c.Checksum, &data, &c.UpdatedAt); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(kinsJSON), &c.Kins)
	_ = json.Unmarshal([]byte(keywords), &c.Keywords)
	c.Data = []byte(data)
	return &c, nil
}

func scanCards(rows *sql.Rows) ([]CardRow, error) {
	var out []CardRow
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
