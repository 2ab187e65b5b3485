// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ImageResolverService decides between the cache and a Drive download,
// RewriteService applies resolutions to documents, CacheService inspects
// and prunes the cache, and SettingsService maps configuration keys.
package services
