// Package watch regenerates launch.json when projects are added to or
// removed from the workspace's category directories.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches bursts of events, such as a generator scaffolding
// a new app, into one regeneration.
const DefaultDebounce = 300 * time.Millisecond

// ErrAlreadyRunning indicates Start was called on a running Watcher.
var ErrAlreadyRunning = errors.New("watch: already running")

// RegenerateFunc rebuilds the output. Errors are logged and the watcher
// keeps running.
type RegenerateFunc func(ctx context.Context) error

// Watcher watches the workspace root and its category directories.
type Watcher struct {
	mu         sync.Mutex
	root       string
	dirs       []string
	regenerate RegenerateFunc
	debounce   time.Duration
	logger     *slog.Logger

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	runs    int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before regenerating.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher over root and the category directories dirs.
// Directories that do not exist yet are picked up once they are created.
func New(root string, dirs []string, regenerate RegenerateFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:       filepath.Clean(root),
		regenerate: regenerate,
		debounce:   DefaultDebounce,
		logger:     slog.Default(),
	}
	for _, d := range dirs {
		w.dirs = append(w.dirs, filepath.Clean(d))
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("module", "watch")
	return w
}

// Start installs the filesystem watches and begins processing events in
// a goroutine. It returns once the watches are in place.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrAlreadyRunning
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	w.addWatches()
	go w.run(ctx)
	return nil
}

// Stop halts event processing and releases the watches. It is safe to call
// more than once.
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

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("failed to close watcher", "error", err)
	}
}

// Runs returns how many regenerations have completed, successful or not.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

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
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("layout changed", "path", event.Name, "op", event.Op.String())
			// A category parent may have just appeared.
			w.addWatches()
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)

		case <-fire:
			fire = nil
			w.addWatches()
			if err := w.regenerate(ctx); err != nil {
				w.logger.Error("regeneration failed", "error", err)
			}
			w.mu.Lock()
			w.runs++
			w.mu.Unlock()
		}
	}
}

// relevant reports whether event changes the set of projects: a child of a
// category directory, or a category directory or one of its ancestors
// below the root. Content edits inside projects are ignored.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	parent := filepath.Dir(name)
	for _, dir := range w.dirs {
		if parent == dir || name == dir || isAncestor(name, dir) {
			return true
		}
	}
	return false
}

// addWatches watches the root, each existing category directory and every
// existing directory between them. Re-adding a watched path is a no-op.
func (w *Watcher) addWatches() {
	w.add(w.root)
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(w.root, dir)
		if err != nil || !filepath.IsLocal(rel) {
			w.add(dir)
			continue
		}
		current := w.root
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			current = filepath.Join(current, part)
			if !w.add(current) {
				break
			}
		}
	}
}

func (w *Watcher) add(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch directory", "path", dir, "error", err)
		return false
	}
	return true
}

func isAncestor(ancestor, path string) bool {
	rel, err := filepath.Rel(ancestor, path)
	return err == nil && rel != "." && filepath.IsLocal(rel)
}
