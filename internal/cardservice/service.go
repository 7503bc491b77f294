// Package cardservice coordinates the card catalog and its index.
package cardservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/starford/hemolymph/internal/apperr"
	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/index"
	"github.com/starford/hemolymph/internal/models"
)

// searchLimit caps the number of index hits considered per query.
const searchLimit = 500

// Service coordinates catalog and index operations.
type Service struct {
	store catalog.Provider
	db    index.CardIndex
}

// NewService creates a new card service.
func NewService(store catalog.Provider, db index.CardIndex) *Service {
	return &Service{store: store, db: db}
}

// GetCard returns the card with the given id.
func (s *Service) GetCard(_ context.Context, id string) (*models.Card, error) {
	row, err := s.db.GetCard(id)
	if err != nil {
		return nil, err
	}
	return catalog.Decode(row.Data)
}

// Search returns the cards matching query. An empty query lists every card
// by name. Otherwise cards whose name fuzzy-matches the query come first,
// best match first, followed by the remaining index hits in index order.
func (s *Service) Search(_ context.Context, query string) ([]models.Card, error) {
	all, err := s.db.AllCards()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return decodeRows(all)
	}

	hits, err := s.db.Search(query, searchLimit)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}

	seen := make(map[string]struct{}, len(hits))
	ranked := make([]index.CardRow, 0, len(hits))
	for _, m := range fuzzy.Find(query, names) {
		row := all[m.Index]
		seen[row.ID] = struct{}{}
		ranked = append(ranked, row)
	}
	for _, row := range hits {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		ranked = append(ranked, row)
	}
	return decodeRows(ranked)
}

// QueryText describes query for display, as in "Showing 3 <QueryText>".
func (s *Service) QueryText(query string) string {
	if query == "" {
		return "all cards"
	}
	return "cards matching " + strconv.Quote(query)
}

// Query runs a search and wraps the outcome in a QueryResult.
func (s *Service) Query(ctx context.Context, query string) models.QueryResult {
	cards, err := s.Search(ctx, query)
	if err != nil {
		return models.NewQueryError(err.Error())
	}
	return models.NewCardList(s.QueryText(query), cards)
}

// CreateCard writes a new card file and indexes it. It fails with
// apperr.ErrAlreadyExists when a card with the same id is indexed.
func (s *Service) CreateCard(ctx context.Context, c *models.Card) (string, error) {
	if _, err := s.db.GetCard(c.ID); err == nil {
		return "", fmt.Errorf("card %s: %w", c.ID, apperr.ErrAlreadyExists)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}
	return s.PutCard(ctx, c)
}

// PutCard writes a card file, replacing any previous version, and indexes it.
// It returns the catalog path the card was stored under.
func (s *Service) PutCard(_ context.Context, c *models.Card) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidCard, err)
	}
	var path string
	if row, err := s.db.GetCard(c.ID); err == nil {
		path = row.Path
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	} else if path, err = s.freePath(c.ID); err != nil {
		return "", err
	}
	data, err := catalog.Encode(c)
	if err != nil {
		return "", err
	}
	if err := s.store.Write(path, data); err != nil {
		return "", err
	}
	if err := index.IndexFile(s.db, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// maxPathAttempts bounds the numbered file names tried for one id.
const maxPathAttempts = 100

// freePath returns PathFor(id), or a numbered variant of it when another
// card's file already uses that name.
func (s *Service) freePath(id string) (string, error) {
	base := catalog.PathFor(id)
	stem := strings.TrimSuffix(base, catalog.Ext)
	for n := 1; n <= maxPathAttempts; n++ {
		path := base
		if n > 1 {
			path = stem + "-" + strconv.Itoa(n) + catalog.Ext
		}
		_, err := s.store.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("card %s: no free file name for %s: %w", id, base, apperr.ErrAlreadyExists)
}

// DeleteCard removes a card from the catalog and the index.
func (s *Service) DeleteCard(_ context.Context, id string) error {
	row, err := s.db.GetCard(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(row.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.db.DeleteByPath(row.Path)
}

// Import reads a JSON array of cards from r and stores each one as its own
// catalog file. Existing cards are replaced only when replace is set.
// It returns the number of cards written.
func (s *Service) Import(ctx context.Context, r io.Reader, replace bool) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("cardservice: read import: %w", err)
	}
	cards, err := catalog.DecodeAll(data)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range cards {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		c := &cards[i]
		if replace {
			_, err = s.PutCard(ctx, c)
		} else {
			_, err = s.CreateCard(ctx, c)
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func decodeRows(rows []index.CardRow) ([]models.Card, error) {
	out := make([]models.Card, 0, len(rows))
	for _, r := range rows {
		c, err := catalog.Decode(r.Data)
		if err != nil {
			return nil, fmt.Errorf("cardservice: decode %s: %w", r.ID, err)
		}
		out = append(out, *c)
	}
	return out, nil
}
