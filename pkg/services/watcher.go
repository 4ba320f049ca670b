package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher flushes the gallery cache when files below the images directory change.
// New date and gallery folders are added to the watch list as they appear.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	flush    func()
	logger   *zap.Logger
	debounce time.Duration
	pending  bool
	last     time.Time
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for root that calls flush after changes settle
func NewWatcher(root string, flush func(), logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		root:     root,
		flush:    flush,
		logger:   logger,
		debounce: 250 * time.Millisecond,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start adds the directory tree to the watch list and runs the event loop until ctx is done
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		w.watcher.Close()
		return err
	}
	w.logger.Info("watching images", zap.String("dir", w.root))

	go w.run(ctx)
	return nil
}

// Done is closed once the event loop has stopped
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("image tree changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("failed to watch new folder", zap.String("dir", event.Name), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()
}

// flushSettled flushes once no event arrived for the debounce duration
func (w *Watcher) flushSettled() {
	w.mu.Lock()
	ready := w.pending && time.Since(w.last) >= w.debounce
	if ready {
		w.pending = false
	}
	w.mu.Unlock()

	if ready {
		w.flush()
	}
}
