// ABOUTME: Watches the global preferences plist for appearance changes made elsewhere.
// ABOUTME: Coalesces fsnotify events into a single pending signal for the presenter.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const globalPreferencesName = ".GlobalPreferences.plist"

// DefaultPreferencesPath returns the per-user global preferences plist.
func DefaultPreferencesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Preferences", globalPreferencesName)
}

// PrefsWatcher signals on Changes whenever the watched file is written or
// replaced. The directory is watched because cfprefsd swaps the file in
// place with a rename.
type PrefsWatcher struct {
	path    string
	logger  *zap.Logger
	changes chan struct{}
	watcher *fsnotify.Watcher
}

// NewPrefsWatcher starts watching the directory that holds path.
func NewPrefsWatcher(path string, logger *zap.Logger) (*PrefsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &PrefsWatcher{
		path:    filepath.Clean(path),
		logger:  logger,
		changes: make(chan struct{}, 1),
		watcher: w,
	}, nil
}

// Changes fires at most once per burst of events the consumer has not yet seen.
func (p *PrefsWatcher) Changes() <-chan struct{} {
	return p.changes
}

// Run forwards events until ctx is cancelled, then closes the watcher.
func (p *PrefsWatcher) Run(ctx context.Context) {
	defer p.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case p.changes <- struct{}{}:
			default:
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("preferences watcher error", zap.Error(err))
		}
	}
}
