package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"robotblocks/internal/toolchain"
)

func (s *Server) registerOutputTools() {
	s.mcp.AddTool(mcp.NewTool("write_output",
		mcp.WithDescription("Write python/generated.py and robot.py beside a project file, ready for 'robot.py deploy' or 'robot.py sim'"),
		mcp.WithString("path", mcp.Description("Path to the blockly.json project file"), mcp.Required()),
		mcp.WithString("document", mcp.Description("Inline workspace JSON to render instead of the file's contents")),
	), s.handleWriteOutput)

	s.mcp.AddTool(mcp.NewTool("normalize_document",
		mcp.WithDescription("Re-serialize a workspace document the way the editor saves it, assigning ids to blocks that have none"),
		mcp.WithString("path", mcp.Description("Path to a blockly.json project file")),
		mcp.WithString("document", mcp.Description("Inline workspace JSON; takes precedence over path")),
		mcp.WithBoolean("save", mcp.Description("Write the normalized document to path")),
	), s.handleNormalizeDocument)
}

func (s *Server) handleWriteOutput(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return nil, errors.New("path is required")
	}
	doc, err := documentArg(args)
	if err != nil {
		return nil, err
	}
	code, err := s.builds.Generate(doc)
	if err != nil {
		return nil, err
	}
	dir, err := toolchain.WriteOutput(path, code)
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]string{
		"outputDir": dir,
		"generated": code,
	})
}

func (s *Server) handleNormalizeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	doc, err := documentArg(args)
	if err != nil {
		return nil, err
	}
	out, err := s.builds.Normalize(doc)
	if err != nil {
		return nil, err
	}
	if save, _ := args["save"].(bool); save {
		path, _ := args["path"].(string)
		if path == "" {
			return nil, errors.New("path is required to save")
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return nil, fmt.Errorf("write project: %w", err)
		}
	}
	return textResult(string(out)), nil
}
