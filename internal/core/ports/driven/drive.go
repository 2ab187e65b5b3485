package driven

import (
	"context"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// DriveClient reads image metadata and content from Google Drive.
// Implementations decide at the call site whether a failure is a
// domain.NotFoundError or a domain.TransportError.
type DriveClient interface {
	// FetchMetadata returns the metadata of a file.
	// Trashed files are reported as domain.NotFoundError.
	FetchMetadata(ctx context.Context, fileID string) (*domain.ImageMetadata, error)

	// Export converts a Drive-native document server-side and returns the bytes.
	Export(ctx context.Context, fileID, mimeType string) ([]byte, error)

	// Download fetches the raw bytes behind a content link.
	Download(ctx context.Context, contentURL string) ([]byte, error)
}

// DriveConnector classifies Drive URLs and hands out an authenticated client.
type DriveConnector interface {
	// Classify extracts the file reference from a Drive or Drawings URL.
	// The second return value is false for any other URL.
	Classify(url string) (domain.RemoteImageRef, bool)

	// Connect returns an authenticated client.
	// Returns domain.ErrConfiguration when no credentials are available.
	Connect(ctx context.Context) (DriveClient, error)
}
