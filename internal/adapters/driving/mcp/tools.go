package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
)

// ResolveInput is the input schema for the resolve_drive_image tool.
type ResolveInput struct {
	URL string `json:"url" jsonschema:"a Google Drive open?id= link or a Google Drawings URL"`
}

// ResolveOutput is the output schema for the resolve_drive_image tool.
type ResolveOutput struct {
	Path     string `json:"path"`
	FileID   string `json:"file_id"`
	MimeType string `json:"mime_type"`
	Fetched  bool   `json:"fetched"`
}

// RewriteInput is the input schema for the rewrite_document tool.
type RewriteInput struct {
	Path   string `json:"path" jsonschema:"path of a Markdown, HTML or reStructuredText document"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"resolve images without modifying the document"`
}

// RewriteOutput is the output schema for the rewrite_document tool.
type RewriteOutput struct {
	Changed    bool              `json:"changed"`
	References []ReferenceOutput `json:"references"`
}

// ReferenceOutput describes one rewritten or skipped reference.
type ReferenceOutput struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

var errRewriteUnavailable = errors.New("document rewriting is not enabled on this server")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_drive_image",
		Description: "Download a Google Drive or Drawings image into the local cache and return its path",
	}, s.handleResolve)

	if s.ports.Rewrite != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "rewrite_document",
			Description: "Replace Google Drive image links in a document with cached local files",
		}, s.handleRewrite)
	}
}

func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	res, err := s.ports.Resolver.Resolve(ctx, input.URL)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	return nil, ResolveOutput{
		Path:     res.Path,
		FileID:   res.Ref.FileID,
		MimeType: res.Image.TargetMimeType,
		Fetched:  res.Fetched,
	}, nil
}

func (s *Server) handleRewrite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RewriteInput,
) (*mcp.CallToolResult, RewriteOutput, error) {
	if s.ports.Rewrite == nil {
		return nil, RewriteOutput{}, errRewriteUnavailable
	}

	report, err := s.ports.Rewrite.RewriteFile(ctx, input.Path, driving.RewriteOptions{DryRun: input.DryRun})
	if err != nil {
		return nil, RewriteOutput{}, err
	}

	out := RewriteOutput{
		Changed:    report.Changed,
		References: make([]ReferenceOutput, len(report.References)),
	}
	for i, ref := range report.References {
		out.References[i] = ReferenceOutput{
			URL:       ref.URL,
			LocalPath: ref.LocalPath,
			Status:    string(ref.Status),
		}
		if ref.Err != nil {
			out.References[i].Error = ref.Err.Error()
		}
	}
	return nil, out, nil
}
