package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/driveimg/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// DefaultDataDir is the project-local directory used when none is given.
const DefaultDataDir = ".driveimg"

// Store is a SQLite-based storage for driveimg metadata.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ./.driveimg/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Origins are written concurrently from parallel rewrites.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// OriginStore returns an OriginStore interface backed by this store.
func (s *Store) OriginStore() driven.OriginStore {
	return &originStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_origins.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Origin Store ====================

// originStore implements driven.OriginStore.
type originStore struct {
	store *Store
}

var _ driven.OriginStore = (*originStore)(nil)

// Save inserts or replaces the origin for origin.Path.
func (s *originStore) Save(ctx context.Context, origin domain.Origin) error {
	if origin.Path == "" {
		return domain.ErrInvalidInput
	}
	if origin.ResolvedAt.IsZero() {
		origin.ResolvedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO origins (path, file_id, source_url, mime_type, run_id, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			file_id = excluded.file_id,
			source_url = excluded.source_url,
			mime_type = excluded.mime_type,
			run_id = excluded.run_id,
			resolved_at = excluded.resolved_at
	`, origin.Path, origin.FileID, origin.SourceURL, origin.MimeType, origin.RunID,
		origin.ResolvedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving origin: %w", err)
	}
	return nil
}

// Get retrieves the origin for a cached path.
func (s *originStore) Get(ctx context.Context, path string) (*domain.Origin, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT path, file_id, source_url, mime_type, run_id, resolved_at
		FROM origins WHERE path = ?
	`, path)

	origin, err := scanOrigin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting origin: %w", err)
	}
	return origin, nil
}

// List returns all origins ordered by path.
func (s *originStore) List(ctx context.Context) ([]domain.Origin, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, file_id, source_url, mime_type, run_id, resolved_at
		FROM origins ORDER BY path
	`)
	if err != nil {
		return nil, fmt.Errorf("listing origins: %w", err)
	}
	defer rows.Close()

	var origins []domain.Origin
	for rows.Next() {
		origin, err := scanOrigin(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning origin: %w", err)
		}
		origins = append(origins, *origin)
	}
	return origins, rows.Err()
}

// Delete removes the origin for a path.
func (s *originStore) Delete(ctx context.Context, path string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM origins WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting origin: %w", err)
	}
	return nil
}

// LatestRunID returns the run ID of the most recently resolved origin.
func (s *originStore) LatestRunID(ctx context.Context) (string, error) {
	var runID string
	err := s.store.db.QueryRowContext(ctx,
		"SELECT run_id FROM origins ORDER BY resolved_at DESC LIMIT 1").Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting latest run: %w", err)
	}
	return runID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrigin(row rowScanner) (*domain.Origin, error) {
	var origin domain.Origin
	var resolvedAt int64
	if err := row.Scan(&origin.Path, &origin.FileID, &origin.SourceURL,
		&origin.MimeType, &origin.RunID, &resolvedAt); err != nil {
		return nil, err
	}
	origin.ResolvedAt = time.Unix(0, resolvedAt)
	return &origin, nil
}
