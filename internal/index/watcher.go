package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/hemolymph/internal/catalog"
)

// Change kinds reported to an EventCallback.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// EventCallback is called after a watcher-driven index change.
type EventCallback func(kind string, path string)

const reconcileDelay = 200 * time.Millisecond

// Watch follows the catalog directory with fsnotify and keeps the index in
// step until ctx is cancelled. cb, if non-nil, is called after each index
// mutation.
//
// Directories created at runtime are added to the watch list. Rename events
// schedule a debounced reconciliation pass, since fsnotify reports only the
// old name.
func Watch(ctx context.Context, db *DB, store catalog.Provider, root string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	notify := func(kind, path string) {
		if cb != nil {
			cb(kind, path)
		}
	}

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					// Files may land in the directory before it is watched.
					scheduleReconcile()
					continue
				}
			}

			if !catalog.IsCardFile(ev.Name) {
				continue
			}
			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(rel)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
					continue
				}
				if idxErr := IndexFile(db, rel, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", idxErr.Error()))
					continue
				}
				kind := KindUpdated
				if ev.Op&fsnotify.Create != 0 {
					kind = KindCreated
				}
				logger.Debug("watcher: indexed", slog.String("path", rel), slog.String("op", kind))
				notify(kind, rel)

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteByPath(rel); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("path", rel))
				notify(KindDeleted, rel)

			case ev.Op&fsnotify.Rename != 0:
				if delErr := db.DeleteByPath(rel); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
				} else {
					notify(KindDeleted, rel)
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcile removes index entries whose files are gone and indexes files
// whose checksum differs from the index.
func reconcile(db *DB, store catalog.Provider, logger *slog.Logger, notify EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	entries, err := store.List("")
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(entries))
	for _, e := range entries {
		disk[e.Path] = e.Checksum
	}

	for p := range checksums {
		if _, ok := disk[p]; ok {
			continue
		}
		if delErr := db.DeleteByPath(p); delErr == nil {
			logger.Debug("reconcile: removed stale", slog.String("path", p))
			notify(KindDeleted, p)
		}
	}

	for p, cs := range disk {
		old, known := checksums[p]
		if old == cs {
			continue
		}
		data, readErr := store.Read(p)
		if readErr != nil {
			continue
		}
		if idxErr := IndexFile(db, p, data); idxErr != nil {
			logger.Warn("reconcile: index failed", slog.String("path", p), slog.String("error", idxErr.Error()))
			continue
		}
		kind := KindCreated
		if known {
			kind = KindUpdated
		}
		logger.Debug("reconcile: indexed", slog.String("path", p), slog.String("op", kind))
		notify(kind, p)
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
