package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("drive_program",
		mcp.WithPromptDescription("Guide through building a simple robot program from blocks"),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What the robot should do (e.g. drive forward while button 1 is held)"),
			mcp.RequiredArgument(),
		),
	), s.handleDriveProgramPrompt)
}

func (s *Server) handleDriveProgramPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := req.Params.Arguments["goal"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a robot program: %s", goal),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Write a Blockly workspace document for a robot that should: %s. Follow these steps:

1. Use list_block_types to see which blocks exist and the valid range of each field
2. Put motor and gyro setup under a robot_init block, and repeated logic under robot_periodic
3. Run validate_document on the JSON until it reports no violations
4. Run generate_code to review the Python, then write_output with the project path`, goal),
				},
			},
		},
	}, nil
}
