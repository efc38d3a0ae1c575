package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/iconport/pkg/util"
)

// DefaultDebounce is the quiet period before a changed file is converted.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	Debounce  time.Duration
	CacheSize int
	// OnResult, when set, is called after every conversion.
	OnResult func(Result)
}

// Watcher reconverts sources in the input directory as they change.
//
// Events for one file within the debounce window collapse into a single
// conversion. Content whose digest matches the last conversion is skipped.
type Watcher struct {
	conv    *Converter
	watcher *fsnotify.Watcher
	digests *DigestCache
	opts    WatchOptions
	logger  *slog.Logger

	timers   map[string]*time.Timer
	timersMu sync.Mutex
	pending  sync.WaitGroup
}

// NewWatcher creates a watcher for conv's input directory.
func NewWatcher(conv *Converter, opts WatchOptions, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	digests, err := NewDigestCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		conv:    conv,
		watcher: fw,
		digests: digests,
		opts:    opts,
		logger:  logger,
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Run watches until ctx is cancelled. Files already present are not
// converted; run a batch first for that.
func (w *Watcher) Run(ctx context.Context) error {
	dir, err := filepath.Abs(w.conv.opts.InputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve input directory: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching icon sources", "dir", dir, "debounce_ms", w.opts.Debounce.Milliseconds())

	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Prime records the digests of the given results, so a following watch
// skips files the batch already converted.
func (w *Watcher) Prime(results []Result) {
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if source, err := util.ReadSource(r.Path); err == nil {
			w.digests.Store(r.Path, Digest(source))
		}
	}
}

func (w *Watcher) stop() {
	w.timersMu.Lock()
	for path, timer := range w.timers {
		if timer.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
	w.timersMu.Unlock()

	w.pending.Wait()
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("failed to close file watcher", "error", err)
	}
	w.logger.Info("file watcher stopped")
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	opts := w.conv.opts
	if !Eligible(filepath.Base(event.Name), opts.Include, opts.Exclude) {
		return
	}
	w.logger.Debug("file event", "op", event.Op.String(), "file", event.Name)

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		w.schedule(event.Name)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.digests.Forget(event.Name)
		w.logger.Info("icon source removed; output left in place", "file", event.Name)
	}
}

// schedule converts path once no event for it arrived for the debounce
// period.
func (w *Watcher) schedule(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.timers[path]; ok && timer.Stop() {
		w.pending.Done()
	}

	w.pending.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.opts.Debounce, func() {
		defer w.pending.Done()

		w.timersMu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.timersMu.Unlock()

		w.reconvert(path)
	})
	w.timers[path] = timer
}

func (w *Watcher) reconvert(path string) {
	source, err := util.ReadSource(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		w.logger.Warn("failed to read changed source", "file", path, "error", err)
		return
	}

	digest := Digest(source)
	if w.digests.Unchanged(path, digest) {
		w.logger.Debug("source content unchanged", "file", path)
		return
	}

	result := w.conv.ConvertFile(path, w.conv.opts.OutputDir)
	if result.OK() {
		w.digests.Store(path, digest)
		w.logger.Info("converted icon", "file", path, "output", result.OutputPath, "unchanged", result.Unchanged)
	} else {
		w.digests.Forget(path)
		w.logger.Error("conversion failed", "file", path, "error", result.Err)
	}

	if w.opts.OnResult != nil {
		w.opts.OnResult(result)
	}
}
