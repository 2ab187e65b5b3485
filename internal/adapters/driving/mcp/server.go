package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/driveimg/internal/logger"
)

const (
	// Name is the implementation name reported to MCP clients.
	Name = "driveimg"

	// Version is the MCP server version.
	Version = "0.1.0"

	// shutdownTimeout bounds how long in-flight HTTP requests may finish
	// once the context is cancelled. A Drive download can take a while.
	shutdownTimeout = 30 * time.Second
)

// Server exposes Drive image resolution, document rewriting and the image
// cache to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server over ports. Tools and resources for optional
// ports are only registered when the port is set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}
	s.server = mcp.NewServer(
		&mcp.Implementation{Name: Name, Version: Version},
		&mcp.ServerOptions{Instructions: s.instructions()},
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells clients which capabilities this instance serves.
func (s *Server) instructions() string {
	var b strings.Builder
	b.WriteString("Resolves Google Drive and Google Drawings image URLs to locally cached files. ")
	b.WriteString("Use resolve_drive_image with a drive.google.com/open?id= or docs.google.com/drawings/d/ URL.")
	if s.ports.Rewrite != nil {
		b.WriteString(" Use rewrite_document to replace Drive image references in a Markdown, HTML or reStructuredText file.")
	}
	if s.ports.Cache != nil {
		b.WriteString(" Read " + cacheURI + " to list cached images.")
	}
	return b.String()
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("mcp: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until ctx is cancelled.
// Cancellation drains in-flight requests for up to shutdownTimeout.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: serving streamable HTTP on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving %s: %w", addr, err)
}
