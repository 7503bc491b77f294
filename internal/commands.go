package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/index"
	"github.com/starford/hemolymph/internal/mcpserver"
	"github.com/starford/hemolymph/internal/models"
	"github.com/starford/hemolymph/internal/present"
)

// Import splits the bulk card file at path into the catalog and indexes it.
// Existing cards are overwritten only when replace is set.
func Import(ctx context.Context, path string, replace bool, opts ...Option) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	rt, err := open(opts)
	if err != nil {
		return 0, err
	}
	defer rt.Close()

	n, err := rt.svc.Import(ctx, f, replace)
	if err != nil {
		return n, fmt.Errorf("import %s: %w", path, err)
	}
	rt.logger.Info("Import finished", slog.String("file", path), slog.Int("cards", n))
	return n, nil
}

// Show prints a card to w. arg is either a card file (a single card or an
// array of cards) or the id of an indexed card.
func Show(ctx context.Context, w io.Writer, arg string, opts ...Option) error {
	data, err := os.ReadFile(arg)
	switch {
	case err == nil:
		return showFile(w, data)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read %s: %w", arg, err)
	}

	rt, err := open(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	card, err := rt.svc.GetCard(ctx, arg)
	if err != nil {
		return fmt.Errorf("card %s: %w", arg, err)
	}
	return present.WriteCard(w, card)
}

func showFile(w io.Writer, data []byte) error {
	var cards []models.Card
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		all, err := catalog.DecodeAll(data)
		if err != nil {
			return err
		}
		cards = all
	} else {
		card, err := catalog.Decode(data)
		if err != nil {
			return err
		}
		cards = []models.Card{*card}
	}
	for i := range cards {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := present.WriteCard(w, &cards[i]); err != nil {
			return err
		}
	}
	return nil
}

// ServeMCP serves the card tools over stdio until the client disconnects.
// Logs go to stderr unless another output is configured.
func ServeMCP(ctx context.Context, version string, opts ...Option) error {
	opts = append([]Option{WithLogOutput(os.Stderr)}, opts...)
	rt, err := open(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := index.Watch(watchCtx, rt.db, rt.store, rt.store.Root(), rt.logger, nil); err != nil {
			rt.logger.Error("catalog watcher stopped", slog.String("error", err.Error()))
		}
	}()

	return mcpserver.New(rt.svc, version).ServeStdio()
}
