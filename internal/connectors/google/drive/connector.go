package drive

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/driveimg/internal/connectors/google"
	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.DriveConnector = (*Connector)(nil)

// Connector authenticates with a service account and builds a Client.
// Credentials are resolved on the first Connect and reused afterwards.
type Connector struct {
	creds google.CredentialSource
	cfg   *Config

	once   sync.Once
	client driven.DriveClient
	err    error
}

// NewConnector creates a Connector from explicit credential inputs.
func NewConnector(creds google.CredentialSource, cfg *Config) *Connector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Connector{creds: creds, cfg: cfg}
}

// Classify extracts the file reference from a Drive or Drawings URL.
func (c *Connector) Classify(url string) (domain.RemoteImageRef, bool) {
	return NewRemoteImageRef(url)
}

// Connect returns the Drive client, creating it on first use.
func (c *Connector) Connect(ctx context.Context) (driven.DriveClient, error) {
	c.once.Do(func() {
		c.client, c.err = c.connect(ctx)
	})
	return c.client, c.err
}

func (c *Connector) connect(ctx context.Context) (driven.DriveClient, error) {
	ts, err := c.creds.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return NewClient(svc, google.NewHTTPClient(ctx, ts), c.cfg), nil
}
