// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// DROP DIRECTORY WATCHER
// =============================================================================

// Watcher observes a drop directory and reports newly created files so
// the admin view can offer them as upload candidates.
//
// Events are debounced: a file must be quiet for the debounce interval
// before it is reported, so partially written files are not picked up.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// Files receives the paths of settled new files.
	Files chan string

	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the given directory.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fw,
		Files:    make(chan string, 16),
	}, nil
}

// Start begins watching. Reported paths are delivered on w.Files until
// Close is called.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				// Only plain files with an extension are interesting;
				// the validator decides acceptance later.
				if filepath.Ext(event.Name) != "" {
					pending[event.Name] = time.Now()
				}
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}

		case <-w.watcher.Errors:
			// Watch errors are non-fatal; keep running.

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) >= w.debounce {
					delete(pending, path)
					select {
					case w.Files <- path:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.watcher.Close()
}
