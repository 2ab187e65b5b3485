package driven

import (
	"context"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// OriginStore records which remote URI each cached file replaced.
type OriginStore interface {
	// Save inserts or replaces the origin for origin.Path.
	Save(ctx context.Context, origin domain.Origin) error

	// Get returns the origin for a cached path.
	// Returns domain.ErrNotFound if nothing is recorded.
	Get(ctx context.Context, path string) (*domain.Origin, error)

	// List returns all origins ordered by path.
	List(ctx context.Context) ([]domain.Origin, error)

	// Delete removes the origin for a path.
	Delete(ctx context.Context, path string) error

	// LatestRunID returns the run ID of the most recently resolved origin.
	// Returns an empty string when the store is empty.
	LatestRunID(ctx context.Context) (string, error)
}
