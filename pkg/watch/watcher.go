package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/superstrong/yaml-io/pkg/config"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
	"github.com/superstrong/yaml-io/pkg/yamlio"
)

// ErrNotLoaded is reported by LastError before the first load has finished.
var ErrNotLoaded = errors.New("document not loaded yet")

// Config contains configuration for the watcher.
type Config struct {
	// Path is the root document to resolve
	Path string

	// DebounceInterval is the time to wait after the last change before
	// resolving again (default: 100ms)
	DebounceInterval time.Duration

	// Extensions is the list of file extensions that trigger a reload
	Extensions []string

	// SkipHidden ignores changes to dot files such as editor swap files
	SkipHidden bool
}

// DefaultConfig returns the default configuration for the given root document.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:             path,
		DebounceInterval: config.DefaultWatchDebounceInterval,
		Extensions:       append([]string(nil), config.DefaultWatchExtensions...),
		SkipHidden:       true,
	}
}

// FromConfig builds a watcher configuration from the watch section of the
// application configuration.
func FromConfig(cfg *config.WatchConfig, path string) *Config {
	wc := DefaultConfig(path)
	if cfg == nil {
		return wc
	}
	if cfg.DebounceInterval > 0 {
		wc.DebounceInterval = cfg.DebounceInterval
	}
	if len(cfg.Extensions) > 0 {
		wc.Extensions = append([]string(nil), cfg.Extensions...)
	}
	return wc
}

// ReloadRecorder receives the outcome of every reload triggered by a change.
// *metrics.Collector satisfies it.
type ReloadRecorder interface {
	RecordReload(err error)
}

// ReloadFunc is called with the outcome of every load, the initial one
// included. Exactly one of res and err is non-nil.
type ReloadFunc func(res *yamlio.Result, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithRecorder reports reload outcomes to r.
func WithRecorder(r ReloadRecorder) Option {
	return func(w *Watcher) {
		w.recorder = r
	}
}

// Watcher resolves a root document and resolves it again whenever one of
// the documents in its import graph changes.
type Watcher struct {
	loader   *yamlio.Loader
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer
	recorder ReloadRecorder

	// loadMu serializes loads so results are delivered in order
	loadMu sync.Mutex

	mu        sync.RWMutex
	running   bool
	root      string
	dirs      map[string]struct{}
	documents map[string]struct{}
	current   *yamlio.Result
	lastErr   error
	loaded    bool
	reloads   int
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a watcher for cfg.Path. A nil loader gets the default
// loader.
func NewWatcher(loader *yamlio.Loader, cfg *Config, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch: root document path is required")
	}
	if loader == nil {
		loader = yamlio.NewLoader()
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		loader:    loader,
		watcher:   fsw,
		logger:    logger,
		config:    cfg,
		debounce:  NewDebouncer(cfg.DebounceInterval),
		dirs:      make(map[string]struct{}),
		documents: make(map[string]struct{}),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch loads the root document, then blocks reloading it on change until
// ctx is cancelled or Stop is called. A failing load does not end the
// watch; the error is passed to onReload and kept for LastError.
func (w *Watcher) Watch(ctx context.Context, onReload ReloadFunc) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if onReload == nil {
		onReload = func(*yamlio.Result, error) {}
	}

	root, err := canonicalPath(w.config.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	w.mu.Lock()
	w.root = root
	w.mu.Unlock()

	if err := w.addDir(filepath.Dir(root)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	// Loads outlive a cancelled watch only until the debouncer is stopped.
	loadCtx := context.WithoutCancel(ctx)
	w.load(loadCtx, false, onReload)

	w.logger.Info("File watcher started",
		"path", root,
		"directories", len(w.WatchedDirs()),
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.debounce.Stop()
			w.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.logger.Info("Triggering reload",
					"path", event.Name,
					"op", event.Op.String(),
				)
				w.load(loadCtx, true, onReload)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("File watcher error", "error", err)
		}
	}
}

// Stop stops a running watch and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	w.debounce.Stop()

	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	if running {
		w.stopOnce.Do(func() { close(w.stopCh) })
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// Current returns the result of the last successful load, or nil.
func (w *Watcher) Current() *yamlio.Result {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// LastError reports the error of the most recent load. It has the signature
// of a health check so it can back a readiness probe directly.
func (w *Watcher) LastError(ctx context.Context) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.loaded {
		return ErrNotLoaded
	}
	return w.lastErr
}

// Reloads returns the number of loads triggered by changes.
func (w *Watcher) Reloads() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reloads
}

// WatchedDirs returns the sorted directories currently subscribed to.
func (w *Watcher) WatchedDirs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	dirs := make([]string, 0, len(w.dirs))
	for dir := range w.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// load resolves the root document and records the outcome.
func (w *Watcher) load(ctx context.Context, reload bool, onReload ReloadFunc) {
	w.loadMu.Lock()
	defer w.loadMu.Unlock()

	res, err := w.loader.Resolve(ctx, w.config.Path)

	w.mu.Lock()
	w.loaded = true
	w.lastErr = err
	if reload {
		w.reloads++
	}
	if err == nil {
		w.current = res
		w.documents = make(map[string]struct{}, len(res.Graph.Order))
		for _, path := range res.Graph.Paths() {
			w.documents[path] = struct{}{}
		}
	}
	w.mu.Unlock()

	if reload && w.recorder != nil {
		w.recorder.RecordReload(err)
	}

	if err != nil {
		w.logger.Error("Reload failed",
			"path", w.config.Path,
			"kind", importErrors.Kind(err),
			"error", err,
		)
		w.watchMissing(err)
	} else {
		for _, path := range res.Graph.Paths() {
			if err := w.addDir(filepath.Dir(path)); err != nil {
				w.logger.Warn("Failed to watch directory", "path", filepath.Dir(path), "error", err)
			}
		}
	}

	onReload(res, err)
}

// watchMissing subscribes to the directory of an import that could not be
// read so that creating it triggers a reload.
func (w *Watcher) watchMissing(err error) {
	var notFound *importErrors.ImportNotFoundError
	if !errors.As(err, &notFound) || notFound.FilePath == "" {
		return
	}
	dir := filepath.Dir(notFound.FilePath)
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		return
	}
	if addErr := w.addDir(dir); addErr != nil {
		w.logger.Debug("Failed to watch directory", "path", dir, "error", addErr)
	}
}

func (w *Watcher) addDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}
	w.dirs[dir] = struct{}{}
	w.logger.Debug("Watching directory", "path", dir)
	return nil
}

// shouldProcessEvent determines if an event should trigger a reload. While
// the last load succeeded only documents of its graph count; after a failure
// any matching file may be the missing piece.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.hasValidExtension(ext) {
		return false
	}

	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.lastErr != nil || !w.loaded {
		return true
	}
	if event.Name == w.root {
		return true
	}
	_, ok := w.documents[event.Name]
	return ok
}

func (w *Watcher) hasValidExtension(ext string) bool {
	for _, validExt := range w.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// canonicalPath mirrors the resolver's path normalization so event names can
// be compared with graph paths.
func canonicalPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return absPath, nil
		}
		return "", err
	}
	return realPath, nil
}
