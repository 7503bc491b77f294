package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/starford/hemolymph/internal/apperr"
	"github.com/starford/hemolymph/internal/models"
)

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9_-]+`)

// Decode parses and validates a single card record.
func Decode(data []byte) (*models.Card, error) {
	var c models.Card
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidCard, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidCard, err)
	}
	return &c, nil
}

// DecodeAll parses a JSON array of card records, validating each one.
func DecodeAll(data []byte) ([]models.Card, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: expected an array of cards: %v", apperr.ErrInvalidCard, err)
	}
	out := make([]models.Card, 0, len(raws))
	for i, raw := range raws {
		c, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, *c)
	}
	return out, nil
}

// Encode renders a card in the on-disk format.
func Encode(c *models.Card) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("catalog: encode %s: %w", c.ID, err)
	}
	return append(data, '\n'), nil
}

// PathFor returns the catalog path a card is stored under.
func PathFor(id string) string {
	name := unsafeNameRe.ReplaceAllString(strings.ToLower(id), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "card"
	}
	return name + Ext
}
