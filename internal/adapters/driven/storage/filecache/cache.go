// Package filecache stores downloaded Drive images on the local filesystem.
//
// Layout:
//
//	<cache_dir>/googledrive/<file_id><ext>
//
// The file's own modification time is the only freshness record.
package filecache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ImageCache = (*Cache)(nil)

// Namespace is the subdirectory of the cache root holding Drive images.
const Namespace = "googledrive"

// tempSuffix marks in-flight writes.
const tempSuffix = ".tmp"

// Cache is a filesystem-backed image cache.
type Cache struct {
	root string
}

// New creates a cache rooted at cacheDir/googledrive.
// The directory is created lazily on the first Store.
func New(cacheDir string) *Cache {
	return &Cache{root: filepath.Join(cacheDir, Namespace)}
}

// Root returns the directory holding the cached files.
func (c *Cache) Root() string {
	return c.root
}

// Path returns the cache location for a file ID and extension.
func (c *Cache) Path(fileID, ext string) string {
	return filepath.Join(c.root, fileID+ext)
}

// Lookup returns the cached entry with its mtime rounded up to whole seconds.
// Returns nil without error if nothing is cached.
func (c *Cache) Lookup(fileID, ext string) (*domain.CacheEntry, error) {
	path := c.Path(fileID, ext)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat cached image: %w", err)
	}

	mtime := info.ModTime()
	secs := mtime.Unix()
	if mtime.Nanosecond() > 0 {
		secs++
	}

	return &domain.CacheEntry{Path: path, ModTime: secs}, nil
}

// Store writes data through a temporary file and renames it into place.
func (c *Cache) Store(fileID, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	path := c.Path(fileID, ext)

	tmp, err := os.CreateTemp(c.root, "."+fileID+"-*"+tempSuffix)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing cached image: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("setting cache permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("renaming cached image: %w", err)
	}

	return path, nil
}

// Remove deletes a cached file.
func (c *Cache) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cached image: %w", err)
	}
	return nil
}

// List returns the paths of all cached files, sorted.
func (c *Cache) List() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		paths = append(paths, filepath.Join(c.root, name))
	}
	sort.Strings(paths)
	return paths, nil
}
