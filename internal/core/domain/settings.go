package domain

import (
	"fmt"
	"slices"
)

// Builder names a document output format with a known set of embeddable image types.
type Builder string

// Available builders.
const (
	// BuilderHTML targets browsers.
	BuilderHTML Builder = "html"

	// BuilderLaTeX targets PDF output through LaTeX.
	BuilderLaTeX Builder = "latex"
)

// IsValid returns true if the builder is recognised.
func (b Builder) IsValid() bool {
	switch b {
	case BuilderHTML, BuilderLaTeX:
		return true
	default:
		return false
	}
}

// SupportedMimeTypes returns the image types the builder can embed natively.
func (b Builder) SupportedMimeTypes() []string {
	switch b {
	case BuilderLaTeX:
		return []string{MimeTypePDF, MimeTypePNG, MimeTypeJPEG}
	default:
		return []string{MimeTypeSVG, MimeTypePNG, MimeTypeGIF, MimeTypeJPEG}
	}
}

// String returns the string representation.
func (b Builder) String() string {
	return string(b)
}

// Settings holds the resolver configuration.
type Settings struct {
	// ServiceAccountPath is the service-account key file. Empty when unset.
	ServiceAccountPath string

	// TrimImages enables cropping of uniform borders from raster images.
	TrimImages bool

	// CacheDir is the image cache root. Files land in CacheDir/googledrive.
	CacheDir string

	// SupportedMimeTypes are the image types the output can embed natively.
	SupportedMimeTypes []string
}

// DefaultCacheDir is the cache root used when none is configured.
const DefaultCacheDir = ".driveimg/images"

// DefaultSettings returns settings for the HTML builder.
func DefaultSettings() Settings {
	return Settings{
		CacheDir:           DefaultCacheDir,
		SupportedMimeTypes: BuilderHTML.SupportedMimeTypes(),
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if s.CacheDir == "" {
		return fmt.Errorf("%w: cache directory is required", ErrInvalidInput)
	}
	if len(s.SupportedMimeTypes) == 0 {
		return fmt.Errorf("%w: at least one supported mime type is required", ErrInvalidInput)
	}
	for _, mt := range s.SupportedMimeTypes {
		if _, ok := ExtensionFor(mt); !ok {
			return fmt.Errorf("%w: no file extension known for %s", ErrInvalidInput, mt)
		}
	}
	return nil
}

// Supports reports whether mimeType can be embedded natively.
func (s Settings) Supports(mimeType string) bool {
	return slices.Contains(s.SupportedMimeTypes, mimeType)
}
