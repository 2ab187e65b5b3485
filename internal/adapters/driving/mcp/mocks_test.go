package mcp

import (
	"context"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
)

// mockResolver is a mock implementation of driving.ImageResolver.
type mockResolver struct {
	res  *domain.Resolution
	err  error
	urls []string
}

func (m *mockResolver) Resolve(_ context.Context, url string) (*domain.Resolution, error) {
	m.urls = append(m.urls, url)
	return m.res, m.err
}

// mockRewriteService is a mock implementation of driving.DocumentRewriteService.
type mockRewriteService struct {
	report *domain.RewriteReport
	err    error
	opts   driving.RewriteOptions
}

func (m *mockRewriteService) RewriteFile(
	_ context.Context, _ string, opts driving.RewriteOptions,
) (*domain.RewriteReport, error) {
	m.opts = opts
	return m.report, m.err
}

func (m *mockRewriteService) RewriteFiles(
	_ context.Context, _ []string, opts driving.RewriteOptions,
) ([]*domain.RewriteReport, error) {
	m.opts = opts
	if m.report == nil {
		return nil, m.err
	}
	return []*domain.RewriteReport{m.report}, m.err
}

// mockCacheService is a mock implementation of driving.CacheService.
type mockCacheService struct {
	origins []domain.Origin
	removed []string
	err     error
}

func (m *mockCacheService) List(_ context.Context) ([]domain.Origin, error) {
	return m.origins, m.err
}

func (m *mockCacheService) Prune(_ context.Context) ([]string, error) {
	return m.removed, m.err
}
