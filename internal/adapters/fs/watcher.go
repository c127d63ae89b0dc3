package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qwerty0zero/book-catalog/internal/ports"
	"github.com/qwerty0zero/book-catalog/pkg/log"
)

const defaultWatchDelay = 100 * time.Millisecond

// Watcher calls onChange when a single file is written, created or renamed
// into place. Bursts of events within the delay collapse into one call.
//
// The parent directory is watched rather than the file itself, so atomic
// replacement by rename is seen.
type Watcher struct {
	mu sync.Mutex

	path     string
	delay    time.Duration
	onChange func(ctx context.Context)
	logger   ports.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// NewWatcher creates a watcher for path. A non-positive delay uses 100ms.
func NewWatcher(path string, delay time.Duration, onChange func(ctx context.Context), logger ports.Logger) *Watcher {
	if delay <= 0 {
		delay = defaultWatchDelay
	}
	return &Watcher{
		path:     path,
		delay:    delay,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching. The parent directory is created if missing.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.logger.Debug("watching favorites file", log.String("path", w.path))

	w.wg.Add(1)
	go w.loop(watchCtx, fw)
	return nil
}

// Stop ends the watch and drops a pending notification.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("favorites watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange(ctx)
	})
}
