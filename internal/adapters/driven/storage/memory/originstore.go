package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure OriginStore implements the interface.
var _ driven.OriginStore = (*OriginStore)(nil)

// OriginStore is an in-memory implementation of driven.OriginStore.
type OriginStore struct {
	mu      sync.RWMutex
	origins map[string]domain.Origin
}

// NewOriginStore creates a new in-memory origin store.
func NewOriginStore() *OriginStore {
	return &OriginStore{
		origins: make(map[string]domain.Origin),
	}
}

// Save stores or replaces the origin for origin.Path.
func (s *OriginStore) Save(_ context.Context, origin domain.Origin) error {
	if origin.Path == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origins[origin.Path] = origin
	return nil
}

// Get retrieves the origin for a cached path.
func (s *OriginStore) Get(_ context.Context, path string) (*domain.Origin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	origin, ok := s.origins[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &origin, nil
}

// List returns all origins ordered by path.
func (s *OriginStore) List(_ context.Context) ([]domain.Origin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Origin, 0, len(s.origins))
	for _, origin := range s.origins {
		result = append(result, origin)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result, nil
}

// Delete removes the origin for a path.
func (s *OriginStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.origins, path)
	return nil
}

// LatestRunID returns the run ID of the most recently resolved origin.
func (s *OriginStore) LatestRunID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest domain.Origin
	for _, origin := range s.origins {
		if origin.ResolvedAt.After(latest.ResolvedAt) {
			latest = origin
		}
	}
	return latest.RunID, nil
}
