package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// Ensure ImageResolverService implements the interface.
var _ driving.ImageResolver = (*ImageResolverService)(nil)

type runIDKey struct{}

// WithRunID returns a context whose resolutions are recorded under runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run ID carried by ctx, or an empty string.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// ImageResolverService downloads Drive images into the local cache,
// skipping the download when the cached copy is still fresh.
type ImageResolverService struct {
	connector driven.DriveConnector
	cache     driven.ImageCache
	trimmer   driven.ImageTrimmer
	origins   driven.OriginStore
	settings  domain.Settings

	group singleflight.Group
	now   func() time.Time
}

// NewImageResolverService creates a resolver.
// trimmer and origins are optional; a nil trimmer disables trimming
// and a nil origins store disables origin tracking.
func NewImageResolverService(
	connector driven.DriveConnector,
	cache driven.ImageCache,
	trimmer driven.ImageTrimmer,
	origins driven.OriginStore,
	settings domain.Settings,
) *ImageResolverService {
	return &ImageResolverService{
		connector: connector,
		cache:     cache,
		trimmer:   trimmer,
		origins:   origins,
		settings:  settings,
		now:       time.Now,
	}
}

// Resolve makes the image behind url available in the cache.
// Concurrent calls for the same file share one download.
func (s *ImageResolverService) Resolve(ctx context.Context, url string) (*domain.Resolution, error) {
	ref, ok := s.connector.Classify(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDriveReference, url)
	}

	v, err, _ := s.group.Do(ref.FileID, func() (any, error) {
		return s.resolve(ctx, ref)
	})
	if err != nil {
		return nil, err
	}

	res := *v.(*domain.Resolution)
	res.Ref = ref
	return &res, nil
}

func (s *ImageResolverService) resolve(ctx context.Context, ref domain.RemoteImageRef) (*domain.Resolution, error) {
	client, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := client.FetchMetadata(ctx, ref.FileID)
	if err != nil {
		return nil, err
	}

	img, err := domain.Resolve(ref.FileID, *meta, s.settings.SupportedMimeTypes)
	if err != nil {
		return nil, err
	}

	entry, err := s.cache.Lookup(img.FileID, img.Extension)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	res := &domain.Resolution{Ref: ref, Image: img}

	if entry != nil && entry.IsFresh(img.LastModified) {
		logger.Debug("resolver: %s is fresh at %s", ref.FileID, entry.Path)
		res.Path = entry.Path
		s.recordOrigin(ctx, res)
		return res, nil
	}

	data, err := s.fetch(ctx, client, img)
	if err != nil {
		return nil, err
	}
	data = s.trim(img, data)

	path, err := s.cache.Store(img.FileID, img.Extension, data)
	if err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}
	logger.Info("Fetched %s as %s", ref.SourceURL, path)

	res.Path = path
	res.Fetched = true
	s.recordOrigin(ctx, res)
	return res, nil
}

func (s *ImageResolverService) fetch(ctx context.Context, client driven.DriveClient, img domain.ResolvedImage) ([]byte, error) {
	if img.Exportable {
		return client.Export(ctx, img.FileID, img.TargetMimeType)
	}
	if img.ContentURL == "" {
		return nil, &domain.TransportError{
			Op:    "download " + img.FileID,
			Cause: errors.New("drive returned no content link"),
		}
	}
	return client.Download(ctx, img.ContentURL)
}

// trim crops borders when enabled. A failed trim keeps the original bytes.
func (s *ImageResolverService) trim(img domain.ResolvedImage, data []byte) []byte {
	if !s.settings.TrimImages || s.trimmer == nil {
		return data
	}
	trimmed, err := s.trimmer.Trim(data, img.TargetMimeType)
	if err != nil {
		logger.Warn("could not trim %s: %v", img.FileID, err)
		return data
	}
	return trimmed
}

// recordOrigin is best effort: failures are logged, never returned.
func (s *ImageResolverService) recordOrigin(ctx context.Context, res *domain.Resolution) {
	if s.origins == nil {
		return
	}
	runID := RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	origin := domain.Origin{
		Path:       res.Path,
		FileID:     res.Ref.FileID,
		SourceURL:  res.Ref.SourceURL,
		MimeType:   res.Image.TargetMimeType,
		RunID:      runID,
		ResolvedAt: s.now(),
	}
	if err := s.origins.Save(ctx, origin); err != nil {
		logger.Warn("could not record origin of %s: %v", res.Path, err)
	}
}
