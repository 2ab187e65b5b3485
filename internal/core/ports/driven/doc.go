// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DriveClient: Reads metadata and content from Google Drive
//   - DriveConnector: Authenticates and creates a DriveClient
//   - ImageCache: Filesystem cache of downloaded images
//   - DocumentRewriter: Finds and replaces image references in a document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OriginStore: Records the remote URI behind each cached file
//   - ImageTrimmer: Crops uniform borders from downloaded images
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or rewriter package
package driven
