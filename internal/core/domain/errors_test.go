package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrConfiguration", ErrConfiguration},
		{"ErrNotFound", ErrNotFound},
		{"ErrUnsupportedMimeType", ErrUnsupportedMimeType},
		{"ErrTransport", ErrTransport},
		{"ErrNotDriveReference", ErrNotDriveReference},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedDocument", ErrUnsupportedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestNotFoundError(t *testing.T) {
	trashed := &NotFoundError{FileID: "abc", Trashed: true}
	missing := &NotFoundError{FileID: "abc"}

	assert.Equal(t, "drive file abc is trashed", trashed.Error())
	assert.Equal(t, "drive file abc not found", missing.Error())
	assert.True(t, errors.Is(trashed, ErrNotFound))
	assert.False(t, errors.Is(trashed, ErrTransport))

	wrapped := fmt.Errorf("fetch metadata: %w", missing)
	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "abc", nf.FileID)
}

func TestUnsupportedMimeTypeError(t *testing.T) {
	err := &UnsupportedMimeTypeError{MimeType: "video/mp4"}

	assert.Equal(t, "unsupported mime type: video/mp4", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedMimeType))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransportError{Op: "export file", Cause: cause}

	assert.Equal(t, "export file: connection reset", err.Error())
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrConfiguration))
	assert.True(t, IsFatal(fmt.Errorf("connect: %w", ErrConfiguration)))
	assert.False(t, IsFatal(&NotFoundError{FileID: "x"}))
	assert.False(t, IsFatal(&UnsupportedMimeTypeError{MimeType: "x"}))
	assert.False(t, IsFatal(&TransportError{Op: "get", Cause: errors.New("boom")}))
	assert.False(t, IsFatal(nil))
}
