package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// watchDebounce groups the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// documentWatcher reruns a callback when any watched document changes.
// Parent directories are watched so that editors which save by renaming
// a temporary file over the original are still noticed.
type documentWatcher struct {
	files    map[string]string
	debounce time.Duration
}

func newDocumentWatcher(paths []string) (*documentWatcher, error) {
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = p
	}
	return &documentWatcher{files: files, debounce: watchDebounce}, nil
}

// match returns the document an event refers to.
func (w *documentWatcher) match(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	p, ok := w.files[abs]
	return p, ok
}

// run blocks until ctx is cancelled or onChange returns a configuration error.
// Other errors from onChange are logged and watching continues.
func (w *documentWatcher) run(ctx context.Context, onChange func(context.Context, []string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := make(map[string]bool)
	for abs := range w.files {
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			p, ok := w.match(ev)
			if !ok {
				continue
			}
			logger.Debug("watch: %s %s", ev.Op, p)
			pending[p] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)

			if err := onChange(ctx, changed); err != nil {
				if domain.IsFatal(err) || errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn("%v", err)
			}
		}
	}
}
