package domain

import "time"

// RemoteImageRef identifies a Drive file referenced from a document.
type RemoteImageRef struct {
	// FileID is the opaque Drive file identifier.
	FileID string

	// SourceURL is the URL the identifier was extracted from.
	SourceURL string
}

// ImageMetadata is the subset of Drive file metadata needed to cache an image.
type ImageMetadata struct {
	// MimeType is the MIME type reported by Drive.
	MimeType string

	// Exportable is true for Drive-native documents that must be converted
	// server-side before download.
	Exportable bool

	// ModifiedAt is the remote modification time in epoch seconds.
	ModifiedAt int64

	// Trashed reports whether the file is in the trash.
	Trashed bool

	// ContentURL is the direct download link. Empty when Drive has none.
	ContentURL string
}

// ResolvedImage describes the image that will be written to the cache.
type ResolvedImage struct {
	FileID         string
	TargetMimeType string
	Extension      string
	LastModified   int64
	Exportable     bool
	ContentURL     string
}

// CacheEntry is a cached image as found on disk.
type CacheEntry struct {
	// Path is the absolute or cache-relative file path.
	Path string

	// ModTime is the file modification time rounded up to whole seconds.
	ModTime int64
}

// IsFresh reports whether the cached copy is at least as new as the remote file.
func (e CacheEntry) IsFresh(lastModified int64) bool {
	return e.ModTime >= lastModified
}

// Resolution is the result of resolving one Drive image reference.
type Resolution struct {
	Ref   RemoteImageRef
	Image ResolvedImage

	// Path is the local file that now holds the image.
	Path string

	// Fetched is false when the cached copy was fresh and no content was downloaded.
	Fetched bool
}

// Origin records which remote URI a cached file was created from.
type Origin struct {
	Path       string
	FileID     string
	SourceURL  string
	MimeType   string
	RunID      string
	ResolvedAt time.Time
}
