package driving

import (
	"context"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// RewriteOptions controls a document rewrite run.
type RewriteOptions struct {
	// DryRun resolves images but leaves documents untouched.
	DryRun bool

	// Jobs bounds how many documents are processed in parallel. Values below 1 mean 1.
	Jobs int
}

// DocumentRewriteService rewrites Drive image references in documents.
type DocumentRewriteService interface {
	// RewriteFile rewrites one document.
	// Only domain.ErrConfiguration and I/O errors on the document itself are returned;
	// per-reference failures are recorded in the report.
	RewriteFile(ctx context.Context, path string, opts RewriteOptions) (*domain.RewriteReport, error)

	// RewriteFiles rewrites several documents under a single run ID.
	RewriteFiles(ctx context.Context, paths []string, opts RewriteOptions) ([]*domain.RewriteReport, error)
}

// CacheService inspects and prunes the image cache.
type CacheService interface {
	// List returns the recorded origins of cached files.
	List(ctx context.Context) ([]domain.Origin, error)

	// Prune removes cached files not referenced by the latest run
	// and returns the removed paths.
	Prune(ctx context.Context) ([]string, error)
}
