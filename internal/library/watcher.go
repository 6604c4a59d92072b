package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/desertthunder/quaver/internal/shared"
)

// Watcher reports filesystem changes under a library root on a debounced
// channel so a burst of writes (e.g. copying an album in) triggers one
// rescan instead of dozens.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	logger   *log.Logger
}

// NewWatcher watches root and all its subdirectories. Close must be called
// to release the underlying inotify/kqueue handles.
func NewWatcher(root string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrLibraryNotFound, root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch library root: %w", err)
	}

	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
		shared.SetLogLevel(logger, log.FatalLevel)
	}

	w := &Watcher{
		watcher:  fsw,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
		logger:   logger,
	}
	go w.run()
	return w, nil
}

// Changes emits one value per settled burst of filesystem activity.
// The channel is never closed while the watcher is open.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// New subdirectories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if err := w.watcher.Add(event.Name); err == nil {
					w.logger.Debug("watching new entry", "path", event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("filesystem watcher error", "error", err)

		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
