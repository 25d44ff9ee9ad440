package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"robotblocks/internal/registry"
)

func (s *Server) registerBlockTools() {
	s.mcp.AddTool(mcp.NewTool("list_block_types",
		mcp.WithDescription("List every block type with its category, fields (ranges, dropdown options) and child slots"),
		mcp.WithString("category", mcp.Description("Only list blocks of this toolbox category (e.g. Motors, Logic)")),
	), s.handleListBlockTypes)

	s.mcp.AddTool(mcp.NewTool("generate_code",
		mcp.WithDescription("Render a Blockly workspace document to the Python robot code it represents"),
		mcp.WithString("path", mcp.Description("Path to a blockly.json project file")),
		mcp.WithString("document", mcp.Description("Inline workspace JSON; takes precedence over path")),
	), s.handleGenerateCode)

	s.mcp.AddTool(mcp.NewTool("validate_document",
		mcp.WithDescription("Check block field values against their declared ranges, precision and dropdown options"),
		mcp.WithString("path", mcp.Description("Path to a blockly.json project file")),
		mcp.WithString("document", mcp.Description("Inline workspace JSON; takes precedence over path")),
	), s.handleValidateDocument)
}

type fieldSummary struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Default   string   `json:"default,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Precision *float64 `json:"precision,omitempty"`
	Options   []string `json:"options,omitempty"`
}

type blockTypeSummary struct {
	Type     string         `json:"type"`
	Category string         `json:"category"`
	Output   string         `json:"output,omitempty"`
	Fields   []fieldSummary `json:"fields,omitempty"`
	Slots    []string       `json:"slots,omitempty"`
}

func summarizeShape(sh registry.Shape) blockTypeSummary {
	sum := blockTypeSummary{Type: string(sh.Type), Category: sh.Category, Output: sh.Output}
	for _, f := range sh.Row {
		switch f.Kind {
		case registry.FieldNumber:
			lo, hi, prec := f.Min, f.Max, f.Precision
			sum.Fields = append(sum.Fields, fieldSummary{
				Name: f.Name, Kind: string(f.Kind), Default: f.Default,
				Min: &lo, Max: &hi, Precision: &prec,
			})
		case registry.FieldDropdown:
			if f.Name == "" {
				continue
			}
			fs := fieldSummary{Name: f.Name, Kind: string(f.Kind), Default: f.Default}
			for _, o := range f.Options {
				fs.Options = append(fs.Options, o.Value)
			}
			sum.Fields = append(sum.Fields, fs)
		}
	}
	for _, slot := range sh.Slots {
		sum.Slots = append(sum.Slots, fmt.Sprintf("%s (%s)", slot.Name, slot.Kind))
	}
	return sum
}

func (s *Server) handleListBlockTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, _ := req.GetArguments()["category"].(string)

	out := []blockTypeSummary{}
	for _, sh := range registry.Shapes() {
		if category != "" && sh.Category != category {
			continue
		}
		out = append(out, summarizeShape(sh))
	}
	return jsonResult(out)
}

func (s *Server) handleGenerateCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := documentArg(req.GetArguments())
	if err != nil {
		return nil, err
	}
	code, err := s.builds.Generate(doc)
	if err != nil {
		return nil, err
	}
	return textResult(code), nil
}

func (s *Server) handleValidateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := documentArg(req.GetArguments())
	if err != nil {
		return nil, err
	}
	violations, err := s.builds.Validate(doc)
	if err != nil {
		return nil, err
	}
	if len(violations) == 0 {
		return textResult("ok: every field is within its constraints"), nil
	}
	return jsonResult(violations)
}
