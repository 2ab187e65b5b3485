package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/driveimg/internal/connectors/google"
	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DriveClient = (*Client)(nil)

// metadataFields is the only field set requested from files.get.
var metadataFields = []googleapi.Field{"mimeType", "modifiedTime", "trashed", "webContentLink"}

// Client reads image metadata and content through the Drive v3 API.
type Client struct {
	svc        *drive.Service
	httpClient *http.Client
	limiter    *google.RateLimiter
	cfg        *Config
}

// NewClient creates a Client. httpClient must attach credentials for content links.
func NewClient(svc *drive.Service, httpClient *http.Client, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		svc:        svc,
		httpClient: httpClient,
		limiter:    google.NewRateLimiterWithConfig(cfg.RateLimit),
		cfg:        cfg,
	}
}

// FetchMetadata returns the image metadata of a Drive file.
func (c *Client) FetchMetadata(ctx context.Context, fileID string) (*domain.ImageMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("drive: files.get %s", fileID)
	file, err := c.svc.Files.Get(fileID).Fields(metadataFields...).Context(ctx).Do()
	if err != nil {
		c.noteRateLimit(err)
		return nil, google.ClassifyError("fetch metadata", fileID, err)
	}

	return c.toMetadata(fileID, file)
}

func (c *Client) toMetadata(fileID string, file *drive.File) (*domain.ImageMetadata, error) {
	if file.Trashed {
		return nil, &domain.NotFoundError{FileID: fileID, Trashed: true}
	}

	modified, err := ParseModifiedTime(file.ModifiedTime, c.cfg.location())
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch metadata", Cause: err}
	}

	return &domain.ImageMetadata{
		MimeType:   file.MimeType,
		Exportable: domain.IsExportable(file.MimeType),
		ModifiedAt: modified,
		Trashed:    file.Trashed,
		ContentURL: file.WebContentLink,
	}, nil
}

// Export converts a Drive-native document to mimeType server-side.
func (c *Client) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("drive: files.export %s as %s", fileID, mimeType)
	resp, err := c.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		c.noteRateLimit(err)
		return nil, google.ClassifyError("export file", fileID, err)
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: "read export", Cause: err}
	}
	return data, nil
}

// Download fetches the bytes behind a webContentLink.
func (c *Client) Download(ctx context.Context, contentURL string) ([]byte, error) {
	if contentURL == "" {
		return nil, &domain.TransportError{Op: "download file", Cause: fmt.Errorf("%w: empty content link", domain.ErrInvalidInput)}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, http.NoBody)
	if err != nil {
		return nil, &domain.TransportError{Op: "create request", Cause: err}
	}

	logger.Debug("drive: GET %s", contentURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "download file", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := google.StatusError(resp)
		c.noteRateLimit(statusErr)
		return nil, google.ClassifyError("download file", contentURL, statusErr)
	}

	data, err := c.readBody(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: "read download", Cause: err}
	}
	return data, nil
}

// readBody reads at most MaxContentSize bytes and fails if more remain.
func (c *Client) readBody(r io.Reader) ([]byte, error) {
	limit := c.cfg.MaxContentSize
	if limit <= 0 {
		limit = MaxContentSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds %d bytes", limit)
	}
	return data, nil
}

// noteRateLimit backs the limiter off after a 429, honouring Retry-After when present.
func (c *Client) noteRateLimit(err error) {
	if !google.IsRateLimited(err) {
		return
	}
	retryAfter := google.RetryAfter(err)
	logger.Debug("drive: rate limited, backing off %s", retryAfter)
	c.limiter.RecordRateLimitError(retryAfter)
}
