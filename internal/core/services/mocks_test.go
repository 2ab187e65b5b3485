package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/driveimg/internal/connectors/google/drive"
	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// mockDriveClient serves metadata and content from maps and counts calls.
type mockDriveClient struct {
	mu       sync.Mutex
	meta     map[string]*domain.ImageMetadata
	content  map[string][]byte
	fetchErr error

	metadataCalls int
	exportCalls   []string
	downloadCalls []string
}

func newMockDriveClient() *mockDriveClient {
	return &mockDriveClient{
		meta:    make(map[string]*domain.ImageMetadata),
		content: make(map[string][]byte),
	}
}

func (m *mockDriveClient) FetchMetadata(_ context.Context, fileID string) (*domain.ImageMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadataCalls++

	meta, ok := m.meta[fileID]
	if !ok {
		return nil, &domain.NotFoundError{FileID: fileID}
	}
	if meta.Trashed {
		return nil, &domain.NotFoundError{FileID: fileID, Trashed: true}
	}
	return meta, nil
}

func (m *mockDriveClient) Export(_ context.Context, fileID, mimeType string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportCalls = append(m.exportCalls, fileID+" "+mimeType)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.content[fileID], nil
}

func (m *mockDriveClient) Download(_ context.Context, contentURL string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadCalls = append(m.downloadCalls, contentURL)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.content[contentURL], nil
}

func (m *mockDriveClient) contentCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.exportCalls) + len(m.downloadCalls)
}

// mockDriveConnector classifies with the real URL rules and hands out client.
type mockDriveConnector struct {
	client     *mockDriveClient
	connectErr error

	mu           sync.Mutex
	connectCalls int
}

func (c *mockDriveConnector) Classify(url string) (domain.RemoteImageRef, bool) {
	return drive.NewRemoteImageRef(url)
}

func (c *mockDriveConnector) Connect(_ context.Context) (driven.DriveClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectCalls++
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	return c.client, nil
}

// mockTrimmer appends a marker so tests can see it ran.
type mockTrimmer struct {
	err error
}

func (t *mockTrimmer) Trim(data []byte, _ string) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return append(append([]byte{}, data...), []byte("-trimmed")...), nil
}

// failingOriginStore rejects every write.
type failingOriginStore struct {
	driven.OriginStore
}

func (failingOriginStore) Save(context.Context, domain.Origin) error {
	return context.DeadlineExceeded
}
