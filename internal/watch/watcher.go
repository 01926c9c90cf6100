// Package watch reruns suites when suite files change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"mathcheck/internal/discovery"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors a directory tree for suite file changes
type Watcher struct {
	root     string
	scanner  *discovery.Scanner
	debounce time.Duration
}

// New creates a watcher over root. Directories and files are filtered with
// the scanner's skip and suffix rules.
func New(root string, scanner *discovery.Scanner, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:     filepath.Clean(root),
		scanner:  scanner,
		debounce: debounce,
	}
}

// Run watches until ctx is cancelled, calling onChange with the sorted set of
// suite files changed since the previous call. onChange runs on the Run
// goroutine, so a slow callback delays but never overlaps the next one.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.root); err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.handle(watcher, event, pending) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			log.Debug().Strs("paths", paths).Msg("suite files changed")
			onChange(paths)
		}
	}
}

// handle records a suite file change and starts watching new directories.
// Returns true if the debounce timer should restart.
func (w *Watcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event, pending map[string]struct{}) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	name := filepath.Base(event.Name)
	if event.Has(fsnotify.Create) && !w.scanner.SkipDir(name) {
		if err := w.addTree(watcher, event.Name); err == nil && !w.scanner.IsSuiteFile(name) {
			return false
		}
	}

	if !w.scanner.IsSuiteFile(name) {
		return false
	}
	pending[event.Name] = struct{}{}
	return true
}

// addTree watches path and every non-skipped directory below it. Paths that
// are not directories are ignored.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path && p != w.root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.scanner.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
