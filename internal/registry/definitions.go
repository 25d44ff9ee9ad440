package registry

import (
	"fmt"
	"strconv"
	"strings"

	"robotblocks/internal/domain"
)

// Definition is a Blockly JSON block definition.
type Definition map[string]any

// Definitions renders every custom shape as a Blockly JSON definition. Blockly
// built-ins are left out since the editor already knows them.
func Definitions() []Definition {
	var defs []Definition
	for _, s := range shapes {
		if s.Builtin {
			continue
		}
		defs = append(defs, s.definition())
	}
	return defs
}

func (s Shape) definition() Definition {
	d := Definition{
		"type":   string(s.Type),
		"colour": s.Colour,
	}

	var msg []string
	var args []map[string]any
	for _, f := range s.Row {
		switch f.Kind {
		case FieldLabel:
			msg = append(msg, f.Text)
		case FieldNumber:
			args = append(args, map[string]any{
				"type":      "field_number",
				"name":      f.Name,
				"value":     parseDefault(f.Default),
				"min":       f.Min,
				"max":       f.Max,
				"precision": f.Precision,
			})
			msg = append(msg, "%"+strconv.Itoa(len(args)))
		case FieldDropdown:
			opts := make([][2]string, len(f.Options))
			for i, o := range f.Options {
				opts[i] = [2]string{o.Label, o.Value}
			}
			arg := map[string]any{"type": "field_dropdown", "options": opts}
			if f.Name != "" {
				arg["name"] = f.Name
			}
			args = append(args, arg)
			msg = append(msg, "%"+strconv.Itoa(len(args)))
		}
	}
	d["message0"] = strings.Join(msg, " ")
	d["args0"] = args

	line := 1
	for _, slot := range s.Slots {
		input := map[string]any{"name": slot.Name}
		switch slot.Kind {
		case SlotStatement:
			input["type"] = "input_statement"
		default:
			input["type"] = "input_value"
		}
		if slot.Check != "" {
			input["check"] = slot.Check
		}
		d[fmt.Sprintf("message%d", line)] = "%1"
		d[fmt.Sprintf("args%d", line)] = []map[string]any{input}
		line++
	}

	if s.Previous {
		d["previousStatement"] = nil
	}
	if s.Next {
		d["nextStatement"] = nil
	}
	if s.Output != "" {
		if s.Output == "*" {
			d["output"] = nil
		} else {
			d["output"] = s.Output
		}
	}
	return d
}

func parseDefault(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// ToolboxItem is an entry of a Blockly category toolbox.
type ToolboxItem struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Type     string            `json:"type,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Contents []ToolboxItem     `json:"contents,omitempty"`
}

var categories = []string{"Events", "Logic", "Math", "Motors", "Sensors", "Controllers", "Commands"}

// toolboxFields are preset field values for blocks dropped from the toolbox.
var toolboxFields = map[domain.BlockType]map[string]string{
	domain.BlockTypeCompare:   {"OP": "EQ"},
	domain.BlockTypeOperation: {"OP": "AND"},
	domain.BlockTypeBoolean:   {"BOOL": "TRUE"},
}

// hiddenFromToolbox shapes are registered (so documents that contain them
// still load and generate) but not offered for new use.
var hiddenFromToolbox = map[domain.BlockType]bool{
	domain.BlockTypeInitCANMotor: true,
}

// Toolbox returns the category toolbox shown beside the workspace.
func Toolbox() ToolboxItem {
	root := ToolboxItem{Kind: "categoryToolbox"}
	for _, name := range categories {
		cat := ToolboxItem{Kind: "category", Name: name, Contents: []ToolboxItem{}}
		for _, s := range shapes {
			if s.Category != name || hiddenFromToolbox[s.Type] {
				continue
			}
			cat.Contents = append(cat.Contents, ToolboxItem{
				Kind:   "block",
				Type:   string(s.Type),
				Fields: toolboxFields[s.Type],
			})
		}
		root.Contents = append(root.Contents, cat)
	}
	return root
}
