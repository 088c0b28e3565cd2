// Package fsnotify re-runs a function when watched input files change.
package fsnotify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Defaults for NewWatcher.
const (
	DefaultDebounce = 100 * time.Millisecond
	DefaultInterval = 250 * time.Millisecond
)

// Watcher watches files and directories and calls a function once per burst
// of changes. Calls never overlap.
//
// A file target is watched through its parent directory so editors that
// save by rename are still seen. A directory target matches every file
// directly inside it.
type Watcher struct {
	files    map[string]bool
	dirs     map[string]bool
	filter   func(path string) bool
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for more changes before calling.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithInterval sets the minimum time between two calls.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithFilter restricts matching paths to those for which keep returns true.
func WithFilter(keep func(path string) bool) Option {
	return func(w *Watcher) {
		w.filter = keep
	}
}

// WithLogger sets the logger used for change and failure records.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher for the given file and directory targets.
func NewWatcher(targets []string, dirTargets []string, opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Every(DefaultInterval), 1),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, t := range targets {
		w.files[clean(t)] = true
	}
	for _, d := range dirTargets {
		w.dirs[clean(d)] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Match reports whether a change to path should trigger a call.
func (w *Watcher) Match(path string) bool {
	path = clean(path)
	if !w.files[path] && !w.dirs[filepath.Dir(path)] {
		return false
	}
	return w.filter == nil || w.filter(path)
}

// Run blocks until ctx is done, calling fn after every debounced burst of
// matching changes. Errors from fn are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	watched := make(map[string]bool)
	add := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}
	for f := range w.files {
		if err := add(filepath.Dir(f)); err != nil {
			return err
		}
	}
	for d := range w.dirs {
		if err := add(d); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	var pending []string
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !w.Match(event.Name) {
				continue
			}
			pending = append(pending, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-timerC:
			timerC = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.logger.Info("change detected", "files", dedupe(pending))
			pending = pending[:0]
			if err := fn(ctx); err != nil {
				w.logger.Error("re-run failed", "err", err)
			}
		}
	}
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
