package dev

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType classifies what a changed file means to the compiler.
type ChangeType int

const (
	ChangeTemplate ChangeType = iota
	ChangeConfig
	ChangeAsset
)

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Ignore patterns to skip (globs).
	Ignore []string

	// Debounce is the poll interval; edits landing within one interval
	// are reported together.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"gen",
	"tmp",
	"*.tmp",
	"*.swp",
	"*~",
}

// snapshot maps file paths to their last known modification time.
type snapshot map[string]time.Time

// diff returns the changes that turn prev into next: added files, files
// with a later mtime, and files that disappeared.
func (prev snapshot) diff(next snapshot) []Change {
	var changes []Change
	for p, mod := range next {
		if last, ok := prev[p]; !ok || mod.After(last) {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	for p := range prev {
		if _, ok := next[p]; !ok {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	return changes
}

// Watcher polls the watched directories and reports added, modified and
// removed files by comparing mtime snapshots between polls.
type Watcher struct {
	config   WatcherConfig
	mu       sync.Mutex
	onChange func(Change)
	running  bool
	stopCh   chan struct{}
	seen     snapshot
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{config: config, seen: make(snapshot)}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is done or Stop is called. The first scan only
// primes the snapshot; files that already exist are not changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	w.mu.Lock()
	w.seen = w.scan()
	w.mu.Unlock()

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// poll compares a fresh scan against the previous snapshot and reports
// the first change of each type; a burst of edits to the template tree
// triggers one recompile, not one per file.
func (w *Watcher) poll() {
	w.mu.Lock()
	callback := w.onChange
	prev := w.seen
	w.mu.Unlock()

	next := w.scan()

	w.mu.Lock()
	w.seen = next
	w.mu.Unlock()

	if callback == nil {
		return
	}

	reported := make(map[ChangeType]bool)
	for _, c := range prev.diff(next) {
		if !reported[c.Type] {
			reported[c.Type] = true
			callback(c)
		}
	}
}

// scan walks the watched paths and records the mtime of every file that
// is not ignored.
func (w *Watcher) scan() snapshot {
	next := make(snapshot)
	for _, root := range w.config.Paths {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.IsDir() {
				next[p] = info.ModTime()
			}
			return nil
		})
	}
	return next
}

// shouldIgnore reports whether p matches any ignore pattern. A pattern
// containing a separator is glob-matched against the whole
// slash-normalized path; anything else is matched against each path
// segment, with shell globs allowed.
func (w *Watcher) shouldIgnore(p string) bool {
	full := filepath.ToSlash(p)
	segments := strings.Split(full, "/")

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.ContainsRune(pattern, '/') {
			if ok, _ := path.Match(pattern, full); ok {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if seg == pattern {
				return true
			}
			if ok, _ := filepath.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}

// classifyChange determines the type of change based on the file name.
func classifyChange(path string) ChangeType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".slab":
		return ChangeTemplate
	case ".json":
		if filepath.Base(path) == "slab.json" {
			return ChangeConfig
		}
		return ChangeAsset
	default:
		return ChangeAsset
	}
}
