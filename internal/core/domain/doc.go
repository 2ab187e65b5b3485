// Package domain defines the core business entities for driveimg.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RemoteImageRef: A Drive file ID extracted from a sharing URL
//   - ImageMetadata: Remote metadata for a Drive file
//   - ResolvedImage: The concrete MIME type and extension to cache
//   - CacheEntry: A cached file as observed on disk
//   - Origin: The remote URI a cached file replaced
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
