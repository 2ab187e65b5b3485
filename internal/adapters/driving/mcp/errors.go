// Package mcp exposes the Drive image resolver as an MCP (Model Context
// Protocol) server so assistants can fetch diagrams and rewrite documents.
package mcp

import "errors"

// ErrMissingResolver is returned when the image resolver is not provided.
var ErrMissingResolver = errors.New("mcp: image resolver is required")
