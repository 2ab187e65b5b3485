package driving

import (
	"context"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// ImageResolver turns a Drive image URL into a locally cached file.
type ImageResolver interface {
	// Resolve classifies url, fetches metadata, and downloads the image
	// unless the cached copy is fresh.
	// Returns domain.ErrNotDriveReference for URLs that are not Drive references.
	Resolve(ctx context.Context, url string) (*domain.Resolution, error)
}
