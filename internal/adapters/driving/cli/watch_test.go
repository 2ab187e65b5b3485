package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

func TestDocumentWatcher_Match(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "index.md")

	w, err := newDocumentWatcher([]string{doc})
	require.NoError(t, err)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: doc, Op: fsnotify.Write}, true},
		{"create after rename-save", fsnotify.Event{Name: doc, Op: fsnotify.Create}, true},
		{"chmod ignored", fsnotify.Event{Name: doc, Op: fsnotify.Chmod}, false},
		{"remove ignored", fsnotify.Event{Name: doc, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join(dir, ".index.md-123"), Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := w.match(tt.event)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, doc, p)
			}
		})
	}
}

func TestDocumentWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(doc, []byte("# v1"), 0o644))

	w, err := newDocumentWatcher([]string{doc})
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu    sync.Mutex
		calls [][]string
	)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func(_ context.Context, changed []string) error {
			mu.Lock()
			calls = append(calls, changed)
			mu.Unlock()
			cancel()
			return nil
		})
	}()

	// Keep touching the file until the watcher has registered and fired.
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(doc, []byte("# v2"), 0o644))
		}
	}

	require.NoError(t, <-done)
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, calls)
	assert.Equal(t, []string{doc}, calls[0])
}

func TestDocumentWatcher_Run_StopsOnConfigurationError(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(doc, []byte("# v1"), 0o644))

	w, err := newDocumentWatcher([]string{doc})
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func(context.Context, []string) error {
			return domain.ErrConfiguration
		})
	}()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-done:
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			return
		case <-ctx.Done():
			t.Fatal("watcher did not stop")
		case <-tick.C:
			require.NoError(t, os.WriteFile(doc, []byte("# v2"), 0o644))
		}
	}
}
