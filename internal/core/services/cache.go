package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// Ensure CacheService implements the interface.
var _ driving.CacheService = (*CacheService)(nil)

// CacheService reports on and prunes the image cache.
type CacheService struct {
	cache   driven.ImageCache
	origins driven.OriginStore
}

// NewCacheService creates a cache service.
func NewCacheService(cache driven.ImageCache, origins driven.OriginStore) *CacheService {
	return &CacheService{cache: cache, origins: origins}
}

// List returns the recorded origins of cached files, ordered by path.
func (s *CacheService) List(ctx context.Context) ([]domain.Origin, error) {
	return s.origins.List(ctx)
}

// Prune removes cached files that the most recent run did not reference,
// together with their origin records. Nothing is removed before a first run.
func (s *CacheService) Prune(ctx context.Context) ([]string, error) {
	latest, err := s.origins.LatestRunID(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	if latest == "" {
		logger.Info("No recorded runs; nothing to prune")
		return nil, nil
	}

	origins, err := s.origins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list origins: %w", err)
	}
	keep := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o.RunID == latest {
			keep[o.Path] = true
		}
	}

	files, err := s.cache.List()
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}

	var removed []string
	for _, path := range files {
		if keep[path] {
			continue
		}
		if err := s.cache.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed = append(removed, path)
		logger.Debug("cache: pruned %s", path)
	}

	// Drop stale records, including those whose files are already gone.
	for _, o := range origins {
		if keep[o.Path] {
			continue
		}
		if err := s.origins.Delete(ctx, o.Path); err != nil {
			return removed, fmt.Errorf("delete origin %s: %w", o.Path, err)
		}
	}
	return removed, nil
}
