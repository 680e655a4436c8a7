package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadMetrics records dataset snapshot loads.
type LoadMetrics interface {
	DatasetLoaded(ctx context.Context, source string, rows int64)
}

// Watcher reloads the dataset cache when the backing CSV file changes.
// It watches the file's directory (editors often replace the file rather
// than write it in place) and coalesces save bursts: each event resets a
// quiet-period timer, and the reload runs once the file has been still for
// the debounce window. This keeps truncate-then-write saves from loading
// an intermediate file state.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	cache    *Cache
	log      *zap.Logger
	metrics  LoadMetrics
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the CSV at path, feeding cache. metrics
// may be nil.
func NewWatcher(path string, cache *Cache, log *zap.Logger, metrics LoadMetrics) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		cache:    cache,
		log:      log,
		metrics:  metrics,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.watcher.Close()
		return err
	}
	w.log.Info("watching dataset", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Reset the quiet-period timer; the reload fires only once
			// the save burst has settled.
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true
		case <-timer.C:
			pending = false
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("dataset watch error", zap.Error(err))
		}
	}
}

// reload reads the CSV and swaps the cache snapshot. On failure the previous
// snapshot stays in place.
func (w *Watcher) reload(ctx context.Context) {
	ds, err := ReadCSV(w.path)
	if err != nil {
		w.log.Warn("dataset reload failed, keeping previous snapshot",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.cache.Replace(ds)
	if w.metrics != nil {
		w.metrics.DatasetLoaded(ctx, ds.Source, int64(len(ds.Rows)))
	}
	w.log.Info("dataset reloaded",
		zap.String("path", w.path),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("skipped", ds.Skipped))
}
