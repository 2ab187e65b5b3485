package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates no usable Drive credentials were supplied.
	// It is fatal for the whole run.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates the remote file is trashed or does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedMimeType indicates the remote file cannot be embedded.
	ErrUnsupportedMimeType = errors.New("unsupported mime type")

	// ErrTransport indicates any other failure talking to Drive.
	ErrTransport = errors.New("transport error")

	// ErrNotDriveReference indicates a URL is not a Drive or Drawings URL.
	ErrNotDriveReference = errors.New("not a drive reference")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedDocument indicates no rewriter handles a document type.
	ErrUnsupportedDocument = errors.New("unsupported document type")
)

// NotFoundError reports a Drive file that is trashed or missing.
type NotFoundError struct {
	FileID  string
	Trashed bool
}

func (e *NotFoundError) Error() string {
	if e.Trashed {
		return fmt.Sprintf("drive file %s is trashed", e.FileID)
	}
	return fmt.Sprintf("drive file %s not found", e.FileID)
}

// Is reports ErrNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnsupportedMimeTypeError reports a remote MIME type the caller cannot embed.
type UnsupportedMimeTypeError struct {
	MimeType string
}

func (e *UnsupportedMimeTypeError) Error() string {
	return fmt.Sprintf("unsupported mime type: %s", e.MimeType)
}

// Is reports ErrUnsupportedMimeType as a match.
func (e *UnsupportedMimeTypeError) Is(target error) bool {
	return target == ErrUnsupportedMimeType
}

// TransportError wraps any other failed remote call.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports ErrTransport as a match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsFatal reports whether err must stop the whole run rather than one reference.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
