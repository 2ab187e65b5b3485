package driven

import "github.com/custodia-labs/driveimg/internal/core/domain"

// ImageCache stores downloaded images on the local filesystem.
// Entries are keyed by Drive file ID and extension.
type ImageCache interface {
	// Path returns the cache location for a file ID and extension.
	Path(fileID, ext string) string

	// Lookup returns the cached entry, or nil if nothing is cached yet.
	Lookup(fileID, ext string) (*domain.CacheEntry, error)

	// Store writes data to the cache, replacing any previous content,
	// and returns the written path.
	Store(fileID, ext string, data []byte) (string, error)

	// Remove deletes a cached file. Removing a missing file is not an error.
	Remove(path string) error

	// List returns the paths of all cached files.
	List() ([]string, error)

	// Root returns the directory holding the cached files.
	Root() string
}
