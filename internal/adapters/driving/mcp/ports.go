package mcp

import (
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Resolver downloads Drive images into the cache.
	Resolver driving.ImageResolver

	// Rewrite rewrites documents. Optional.
	Rewrite driving.DocumentRewriteService

	// Cache lists cached images. Optional.
	Cache driving.CacheService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	return nil
}
