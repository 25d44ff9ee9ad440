package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"robotblocks/internal/domain"
	"robotblocks/internal/registry"
)

// ─────────────────────────────────────────────────────────────
// Workspace Serializer: Blockly JSON ⇄ domain.Workspace
// ─────────────────────────────────────────────────────────────

type documentJSON struct {
	Blocks struct {
		LanguageVersion int                `json:"languageVersion"`
		Blocks          []json.RawMessage `json:"blocks"`
	} `json:"blocks"`
}

type blockJSON struct {
	Type       string                     `json:"type"`
	ID         string                     `json:"id,omitempty"`
	X          *float64                   `json:"x,omitempty"`
	Y          *float64                   `json:"y,omitempty"`
	Enabled    *bool                      `json:"enabled,omitempty"`
	Disabled   bool                       `json:"disabled,omitempty"` // pre-v10 documents
	ExtraState json.RawMessage            `json:"extraState,omitempty"`
	Icons      map[string]json.RawMessage `json:"icons,omitempty"`
	Fields     map[string]json.RawMessage `json:"fields,omitempty"`
	Inputs     map[string]inputJSON       `json:"inputs,omitempty"`
	Next       *connectionJSON            `json:"next,omitempty"`
}

type inputJSON struct {
	Block  json.RawMessage `json:"block,omitempty"`
	Shadow json.RawMessage `json:"shadow,omitempty"`
}

type connectionJSON struct {
	Block json.RawMessage `json:"block,omitempty"`
}

type commentJSON struct {
	Text string `json:"text"`
}

type ifStateJSON struct {
	ElseIfCount int  `json:"elseIfCount,omitempty"`
	HasElse     bool `json:"hasElse,omitempty"`
}

// Decode parses a Blockly workspace document. An empty document is an empty
// workspace.
func Decode(data []byte) (*domain.Workspace, error) {
	ws := &domain.Workspace{}
	if len(bytes.TrimSpace(data)) == 0 {
		return ws, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	delete(top, "blocks")
	if len(top) > 0 {
		ws.Extra = top
	}
	ws.LanguageVersion = doc.Blocks.LanguageVersion

	for i, raw := range doc.Blocks.Blocks {
		stack, err := decodeChain(raw)
		if err != nil {
			return nil, fmt.Errorf("top block %d: %w", i, err)
		}
		ws.Stacks = append(ws.Stacks, stack)
	}
	return ws, nil
}

// decodeBlock decodes one block. Its next chain is not followed; see
// decodeChain.
func decodeBlock(raw json.RawMessage) (domain.Block, error) {
	var j blockJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("parse block: %w", err)
	}
	if j.Type == "" {
		return nil, fmt.Errorf("block %q has no type", j.ID)
	}

	meta := domain.BlockMeta{
		ID:       j.ID,
		X:        j.X,
		Y:        j.Y,
		Disabled: j.Disabled || (j.Enabled != nil && !*j.Enabled),
	}
	if c, ok := j.Icons["comment"]; ok {
		var cj commentJSON
		if err := json.Unmarshal(c, &cj); err == nil {
			meta.Comment = cj.Text
		}
	}

	d := &decoder{j: &j}
	var b domain.Block
	switch t := domain.BlockType(j.Type); t {
	case domain.BlockTypeRobotInit:
		b = &domain.RobotInit{BlockMeta: meta, Do: d.statements("DO")}
	case domain.BlockTypeRobotPeriodic:
		b = &domain.RobotPeriodic{BlockMeta: meta, Do: d.statements("DO")}
	case domain.BlockTypeInitCANMotor:
		b = &domain.InitCANMotor{BlockMeta: meta, CANID: d.number("CAN_ID"), MotorType: d.text("TYPE")}
	case domain.BlockTypeInitPWMMotor:
		b = &domain.InitPWMMotor{BlockMeta: meta, Port: d.number("PWM_PORT"), MotorType: d.text("TYPE")}
	case domain.BlockTypeSetPWM:
		b = &domain.SetPWM{BlockMeta: meta, Channel: d.number("ID"), Value: d.number("VALUE")}
	case domain.BlockTypeInitGyro:
		b = &domain.InitGyro{BlockMeta: meta, GyroType: d.text("TYPE")}
	case domain.BlockTypeGyroAngle:
		b = &domain.GyroAngle{BlockMeta: meta}
	case domain.BlockTypeRawAxis:
		b = &domain.RawAxis{BlockMeta: meta, Port: d.number("PORT"), Axis: d.number("AXIS")}
	case domain.BlockTypeWhileButtonHeld:
		b = &domain.WhileButtonHeld{BlockMeta: meta, Button: d.number("BTN"), Port: d.number("PORT"), Do: d.statements("DO")}
	case domain.BlockTypeWhenButtonPress:
		b = &domain.WhenButtonPressed{BlockMeta: meta, Button: d.number("BTN"), Port: d.number("PORT"), Do: d.statements("DO")}
	case domain.BlockTypeIf:
		b = d.ifBlock(meta)
	case domain.BlockTypeCompare:
		b = &domain.Compare{BlockMeta: meta, Op: d.text("OP"), A: d.value("A"), B: d.value("B")}
	case domain.BlockTypeOperation:
		b = &domain.Operation{BlockMeta: meta, Op: d.text("OP"), A: d.value("A"), B: d.value("B")}
	case domain.BlockTypeNegate:
		b = &domain.Negate{BlockMeta: meta, Bool: d.value("BOOL")}
	case domain.BlockTypeBoolean:
		b = &domain.Boolean{BlockMeta: meta, Value: d.text("BOOL")}
	case domain.BlockTypeTernary:
		b = &domain.Ternary{BlockMeta: meta, If: d.value("IF"), Then: d.value("THEN"), Else: d.value("ELSE")}
	default:
		stripped, err := withoutKey(raw, "next")
		if err != nil {
			return nil, err
		}
		b = &domain.UnknownBlock{BlockMeta: meta, Tag: t, Raw: stripped}
	}
	if d.err != nil {
		return nil, fmt.Errorf("%s %s: %w", j.Type, j.ID, d.err)
	}
	return b, nil
}

// decodeChain decodes a block and everything linked through next.
func decodeChain(raw json.RawMessage) (domain.Statements, error) {
	var out domain.Statements
	for len(raw) > 0 {
		b, err := decodeBlock(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, b)

		var link struct {
			Next *connectionJSON `json:"next"`
		}
		if err := json.Unmarshal(raw, &link); err != nil {
			return nil, fmt.Errorf("parse next: %w", err)
		}
		if link.Next == nil {
			break
		}
		raw = link.Next.Block
	}
	return out, nil
}

// decoder reads the fields and inputs of one block, keeping the first error.
type decoder struct {
	j   *blockJSON
	err error
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) rawField(name string) (json.RawMessage, bool) {
	raw, ok := d.j.Fields[name]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func (d *decoder) fieldDefault(name string) string {
	shape, ok := registry.Lookup(domain.BlockType(d.j.Type))
	if !ok {
		return ""
	}
	f, _ := shape.Field(name)
	return f.Default
}

// number keeps the literal text of a numeric field.
func (d *decoder) number(name string) domain.Number {
	raw, ok := d.rawField(name)
	if !ok {
		return domain.Number(d.fieldDefault(name))
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			d.fail(fmt.Errorf("field %s: %w", name, err))
		}
		return domain.Number(strings.TrimSpace(s))
	}
	return domain.Number(strings.TrimSpace(string(raw)))
}

func (d *decoder) text(name string) string {
	raw, ok := d.rawField(name)
	if !ok {
		return d.fieldDefault(name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Non-string dropdown values are kept as written.
		return strings.TrimSpace(string(raw))
	}
	return s
}

func (d *decoder) value(name string) domain.Block {
	in, ok := d.j.Inputs[name]
	if !ok {
		return nil
	}
	raw, shadow := in.Block, false
	if len(raw) == 0 {
		raw, shadow = in.Shadow, true
	}
	if len(raw) == 0 {
		return nil
	}
	b, err := decodeBlock(raw)
	if err != nil {
		d.fail(fmt.Errorf("input %s: %w", name, err))
		return nil
	}
	if shadow {
		b.Meta().Shadow = true
	}
	return b
}

func (d *decoder) statements(name string) domain.Statements {
	in, ok := d.j.Inputs[name]
	if !ok || len(in.Block) == 0 {
		return nil
	}
	stmts, err := decodeChain(in.Block)
	if err != nil {
		d.fail(fmt.Errorf("input %s: %w", name, err))
		return nil
	}
	return stmts
}

func (d *decoder) ifBlock(meta domain.BlockMeta) *domain.If {
	var state ifStateJSON
	if len(d.j.ExtraState) > 0 && d.j.ExtraState[0] == '{' {
		if err := json.Unmarshal(d.j.ExtraState, &state); err != nil {
			d.fail(fmt.Errorf("extraState: %w", err))
		}
	}

	arms := 1 + state.ElseIfCount
	for {
		n := fmt.Sprint(arms)
		_, cond := d.j.Inputs["IF"+n]
		_, body := d.j.Inputs["DO"+n]
		if !cond && !body {
			break
		}
		arms++
	}

	b := &domain.If{BlockMeta: meta}
	for i := 0; i < arms; i++ {
		n := fmt.Sprint(i)
		b.Branches = append(b.Branches, domain.IfBranch{
			Cond: d.value("IF" + n),
			Do:   d.statements("DO" + n),
		})
	}
	_, hasElseInput := d.j.Inputs["ELSE"]
	b.HasElse = state.HasElse || hasElseInput
	if b.HasElse {
		b.Else = d.statements("ELSE")
	}
	return b
}

func withoutKey(raw json.RawMessage, key string) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse block: %w", err)
	}
	if _, ok := m[key]; !ok {
		return raw, nil
	}
	delete(m, key)
	return json.Marshal(m)
}

// newID returns a fresh block id for blocks built outside the editor.
func newID() string {
	return uuid.New().String()
}
