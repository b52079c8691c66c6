package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk and delivers each
// successfully loaded document on Updates. Editors often save in several
// steps, so events are debounced. A reload that fails is logged and
// skipped; the previous document stays in effect.
type Watcher struct {
	path     string
	theme    string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan *Document
}

// NewWatcher starts watching the directory that contains path. The parent
// directory is watched rather than the file because editors replace files
// by rename.
func NewWatcher(path, theme string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		theme:    theme,
		logger:   logger,
		watcher:  fw,
		debounce: defaultReloadDebounce,
		updates:  make(chan *Document, 1),
	}, nil
}

// Updates returns the channel of reloaded documents. It is closed when
// Start returns.
func (w *Watcher) Updates() <-chan *Document {
	return w.updates
}

// Start processes file events until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.updates)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Config file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Config watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) reload() {
	doc, err := LoadFile(w.path, w.theme)
	if err != nil {
		w.logger.Warn("Config reload failed, keeping previous config", zap.Error(err))
		return
	}
	if err := doc.Validate(); err != nil {
		w.logger.Warn("Reloaded config is invalid, keeping previous config", zap.Error(err))
		return
	}

	// Only the latest document matters to the consumer.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- doc
	w.logger.Info("Config reloaded", zap.String("path", w.path))
}
