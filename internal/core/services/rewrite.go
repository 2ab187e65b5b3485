package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// Ensure RewriteService implements the interface.
var _ driving.DocumentRewriteService = (*RewriteService)(nil)

// RewriteService replaces Drive image URLs in documents with cached local paths.
type RewriteService struct {
	resolver driving.ImageResolver
	registry driven.RewriterRegistry
}

// NewRewriteService creates a rewrite service.
func NewRewriteService(resolver driving.ImageResolver, registry driven.RewriterRegistry) *RewriteService {
	return &RewriteService{resolver: resolver, registry: registry}
}

// RewriteFile rewrites the Drive image references in one document.
// Failures on individual references are logged and recorded in the report;
// the original URI is left in place. Only configuration errors and errors
// reading or writing the document are returned.
func (s *RewriteService) RewriteFile(
	ctx context.Context, path string, opts driving.RewriteOptions,
) (*domain.RewriteReport, error) {
	rw := s.registry.For(path)
	if rw == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	report := &domain.RewriteReport{Document: path, RunID: RunID(ctx)}
	replacements := make(map[string]string)
	seen := make(map[string]bool)

	for _, url := range rw.References(content) {
		if seen[url] {
			continue
		}
		seen[url] = true

		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := s.resolver.Resolve(ctx, url)
		if errors.Is(err, domain.ErrNotDriveReference) {
			continue
		}
		if err != nil {
			if domain.IsFatal(err) {
				return report, err
			}
			report.References = append(report.References, referenceFailure(path, url, err))
			continue
		}

		local, err := relativeTo(path, res.Path)
		if err != nil {
			return report, err
		}
		replacements[url] = local

		status := domain.ReferenceCached
		if res.Fetched {
			status = domain.ReferenceFetched
		}
		report.References = append(report.References, domain.ReferenceResult{
			URL:       url,
			LocalPath: local,
			MimeType:  res.Image.TargetMimeType,
			Status:    status,
		})
	}

	out := rw.Replace(content, replacements)
	report.Changed = !bytes.Equal(out, content)

	if report.Changed && !opts.DryRun {
		if err := writeDocument(path, out); err != nil {
			return report, fmt.Errorf("write document: %w", err)
		}
		logger.Info("Rewrote %s (%d references)", path, report.Resolved())
	}
	return report, nil
}

// RewriteFiles rewrites documents in parallel under one run ID.
// A configuration error cancels the remaining work; other document
// errors are collected and returned together once every file is done.
func (s *RewriteService) RewriteFiles(
	ctx context.Context, paths []string, opts driving.RewriteOptions,
) ([]*domain.RewriteReport, error) {
	if RunID(ctx) == "" {
		ctx = WithRunID(ctx, uuid.NewString())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))

	reports := make([]*domain.RewriteReport, len(paths))
	var (
		mu   sync.Mutex
		errs []error
	)

	for i, path := range paths {
		g.Go(func() error {
			report, err := s.RewriteFile(gctx, path, opts)
			reports[i] = report
			if err == nil {
				return nil
			}
			if domain.IsFatal(err) {
				return err
			}
			logger.Warn("%s: %v", path, err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return compact(reports), err
	}
	return compact(reports), errors.Join(errs...)
}

// referenceFailure logs and records a reference that could not be resolved.
func referenceFailure(doc, url string, err error) domain.ReferenceResult {
	result := domain.ReferenceResult{URL: url, Err: err}

	var unsupported *domain.UnsupportedMimeTypeError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		result.Status = domain.ReferenceNotFound
		logger.Warn("%s: image not found: %s", doc, url)
	case errors.As(err, &unsupported):
		result.Status = domain.ReferenceUnsupported
		result.MimeType = unsupported.MimeType
		logger.Warn("%s: unsupported image type %s: %s", doc, unsupported.MimeType, url)
	default:
		result.Status = domain.ReferenceFailed
		logger.Warn("%s: could not fetch %s: %v", doc, url, err)
	}
	return result
}

// relativeTo returns target relative to the directory of doc, using forward slashes.
func relativeTo(doc, target string) (string, error) {
	absDoc, err := filepath.Abs(doc)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.Dir(absDoc), absTarget)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// writeDocument replaces path atomically, keeping its permissions.
func writeDocument(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func compact(reports []*domain.RewriteReport) []*domain.RewriteReport {
	out := make([]*domain.RewriteReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
