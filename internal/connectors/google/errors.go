package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrUnauthorized, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return hasCode(err, ErrForbidden, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return hasCode(err, ErrRateLimited, http.StatusTooManyRequests)
}

func hasCode(err, sentinel error, code int) bool {
	if errors.Is(err, sentinel) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// WrapError converts a Google API error to a more specific error type.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}

// ClassifyError turns a failed Drive call into a domain error.
// A 404 becomes domain.NotFoundError; everything else is a domain.TransportError.
func ClassifyError(op, fileID string, err error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return &domain.NotFoundError{FileID: fileID}
	}
	if mapped := WrapError(err); mapped != err {
		err = fmt.Errorf("%w: %w", mapped, err)
	}
	return &domain.TransportError{Op: op, Cause: err}
}

// StatusError builds a googleapi.Error for a non-2xx response outside the API client.
func StatusError(resp *http.Response) error {
	return &googleapi.Error{
		Code:    resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
		Header:  resp.Header,
	}
}

// RetryAfter returns the delay asked for by the Retry-After header carried on err.
// Both delta-seconds and HTTP-date forms are accepted; anything else yields zero.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}

	v := strings.TrimSpace(gerr.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, convErr := strconv.Atoi(v); convErr == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, parseErr := http.ParseTime(v); parseErr == nil {
		return max(time.Until(at), 0)
	}
	return 0
}
