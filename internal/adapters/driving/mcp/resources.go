package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "driveimg://"
	cacheURI  = uriScheme + "cache"
)

// cachedImage is the JSON form of one cache entry.
type cachedImage struct {
	Path       string `json:"path"`
	FileID     string `json:"file_id"`
	SourceURL  string `json:"source_url"`
	MimeType   string `json:"mime_type"`
	RunID      string `json:"run_id"`
	ResolvedAt string `json:"resolved_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         cacheURI,
		Name:        "cache",
		Description: "Images in the local cache and the Drive URLs they came from",
		MIMEType:    "application/json",
	}, s.handleCacheResource)
}

func (s *Server) handleCacheResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	images := []cachedImage{}

	if s.ports.Cache != nil {
		origins, err := s.ports.Cache.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing cache: %w", err)
		}
		for _, o := range origins {
			images = append(images, cachedImage{
				Path:       o.Path,
				FileID:     o.FileID,
				SourceURL:  o.SourceURL,
				MimeType:   o.MimeType,
				RunID:      o.RunID,
				ResolvedAt: o.ResolvedAt.UTC().Format(time.RFC3339),
			})
		}
	}

	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("marshalling cache: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
