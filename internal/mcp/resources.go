package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"robotblocks/internal/registry"
)

const (
	toolboxURI     = "robotblocks://toolbox"
	definitionsURI = "robotblocks://definitions"
)

func (s *Server) registerResources() {
	// ── robotblocks://toolbox ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		toolboxURI,
		"Block Toolbox",
		mcp.WithMIMEType("application/json"),
	), s.handleToolboxResource)

	// ── robotblocks://definitions ──────────────────────
	s.mcp.AddResource(mcp.NewResource(
		definitionsURI,
		"Custom Block Definitions",
		mcp.WithMIMEType("application/json"),
	), s.handleDefinitionsResource)
}

func (s *Server) handleToolboxResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(toolboxURI, registry.Toolbox())
}

func (s *Server) handleDefinitionsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(definitionsURI, registry.Definitions())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
