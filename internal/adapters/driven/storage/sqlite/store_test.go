package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "metadata.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='origins'",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.OriginStore().Save(context.Background(), domain.Origin{Path: "a.png"}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err = second.OriginStore().Get(context.Background(), "a.png")
	assert.NoError(t, err)
}

// ==================== Origin Store Tests ====================

func TestOriginStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()

	origin := domain.Origin{
		Path:       "images/googledrive/ABC123.png",
		FileID:     "ABC123",
		SourceURL:  "https://docs.google.com/drawings/d/ABC123/edit",
		MimeType:   "image/png",
		RunID:      "run-1",
		ResolvedAt: time.Unix(1700000000, 123),
	}

	require.NoError(t, store.Save(ctx, origin))

	got, err := store.Get(ctx, origin.Path)
	require.NoError(t, err)
	assert.Equal(t, origin.Path, got.Path)
	assert.Equal(t, origin.FileID, got.FileID)
	assert.Equal(t, origin.SourceURL, got.SourceURL)
	assert.Equal(t, origin.MimeType, got.MimeType)
	assert.Equal(t, origin.RunID, got.RunID)
	assert.True(t, origin.ResolvedAt.Equal(got.ResolvedAt))
}

func TestOriginStore_Save_Upsert(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Origin{Path: "a.png", MimeType: "image/png", RunID: "run-1"}))
	require.NoError(t, store.Save(ctx, domain.Origin{Path: "a.png", MimeType: "application/pdf", RunID: "run-2"}))

	got, err := store.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got.MimeType)
	assert.Equal(t, "run-2", got.RunID)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOriginStore_Save_DefaultsResolvedAt(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Origin{Path: "a.png"}))

	got, err := store.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got.ResolvedAt, time.Minute)
}

func TestOriginStore_Save_RequiresPath(t *testing.T) {
	store := setupTestStore(t).OriginStore()

	err := store.Save(context.Background(), domain.Origin{FileID: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOriginStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).OriginStore()

	_, err := store.Get(context.Background(), "missing.png")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOriginStore_List(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for _, p := range []string{"c.png", "a.png", "b.pdf"} {
		require.NoError(t, store.Save(ctx, domain.Origin{Path: p}))
	}

	all, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a.png", all[0].Path)
	assert.Equal(t, "b.pdf", all[1].Path)
	assert.Equal(t, "c.png", all[2].Path)
}

func TestOriginStore_Delete(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Origin{Path: "a.png"}))

	require.NoError(t, store.Delete(ctx, "a.png"))
	require.NoError(t, store.Delete(ctx, "a.png"))

	_, err := store.Get(ctx, "a.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOriginStore_LatestRunID(t *testing.T) {
	store := setupTestStore(t).OriginStore()
	ctx := context.Background()

	latest, err := store.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest)

	require.NoError(t, store.Save(ctx, domain.Origin{Path: "b.png", RunID: "new", ResolvedAt: time.Unix(200, 0)}))
	require.NoError(t, store.Save(ctx, domain.Origin{Path: "a.png", RunID: "old", ResolvedAt: time.Unix(100, 0)}))

	latest, err = store.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest)
}
