package drive

import (
	"time"

	"github.com/custodia-labs/driveimg/internal/connectors/google"
)

// MaxContentSize is the default limit for downloaded image content (50MB).
const MaxContentSize = 50 * 1024 * 1024

// Config holds Google Drive client configuration.
type Config struct {
	// MaxContentSize caps how many bytes are read from a download or export.
	MaxContentSize int64
	// RateLimit throttles API and content requests.
	RateLimit google.RateLimitConfig
	// Location is the zone modified times are reinterpreted in. Nil means time.Local.
	Location *time.Location
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxContentSize: MaxContentSize,
		RateLimit:      google.DefaultRateLimit,
	}
}

func (c *Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
