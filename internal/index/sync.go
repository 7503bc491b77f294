package index

import (
	"log/slog"

	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/richtext"
)

// Sync walks the catalog and brings the index up to date:
//   - new/changed card files are decoded and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store catalog.Provider, logger *slog.Logger) error {
	entries, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		disk[e.Path] = struct{}{}

		if checksums[e.Path] == e.Checksum {
			continue
		}

		data, err := store.Read(e.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", e.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, e.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", e.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", e.Path))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteByPath(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile decodes a card file and upserts it into the index.
func IndexFile(db CardIndex, path string, data []byte) error {
	card, err := catalog.Decode(data)
	if err != nil {
		return err
	}
	return db.UpsertCard(CardRow{
		ID:       card.ID,
		Path:     path,
		Name:     card.Name,
		Type:     card.Type,
		Kins:     card.Kins,
		Keywords: card.Keywords,
		Body:     richtext.Text(card.Description),
		Flavor:   card.FlavorText,
		Checksum: catalog.Checksum(data),
		Data:     data,
	})
}
