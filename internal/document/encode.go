package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"robotblocks/internal/domain"
)

// Encode writes ws as a Blockly workspace document. Blocks without an id get
// a fresh one.
func Encode(ws *domain.Workspace) ([]byte, error) {
	top := make(map[string]any, len(ws.Extra)+1)
	for k, v := range ws.Extra {
		top[k] = v
	}

	blocks := make([]json.RawMessage, 0, len(ws.Stacks))
	for i, stack := range ws.Stacks {
		if len(stack) == 0 {
			continue
		}
		raw, err := encodeChain(stack)
		if err != nil {
			return nil, fmt.Errorf("top block %d: %w", i, err)
		}
		blocks = append(blocks, raw)
	}
	top["blocks"] = map[string]any{
		"languageVersion": ws.LanguageVersion,
		"blocks":          blocks,
	}
	return json.Marshal(top)
}

// encodeBlock encodes b with next linking to the already-encoded rest of
// its statement chain.
func encodeBlock(b domain.Block, next json.RawMessage) (json.RawMessage, error) {
	meta := b.Meta()
	if meta.ID == "" {
		meta.ID = newID()
	}

	if u, ok := b.(*domain.UnknownBlock); ok {
		return encodeUnknown(u, next)
	}

	j := blockJSON{
		Type: string(b.Type()),
		ID:   meta.ID,
		X:    meta.X,
		Y:    meta.Y,
	}
	if meta.Disabled {
		f := false
		j.Enabled = &f
	}
	if meta.Comment != "" {
		c, err := json.Marshal(commentJSON{Text: meta.Comment})
		if err != nil {
			return nil, err
		}
		j.Icons = map[string]json.RawMessage{"comment": c}
	}
	if len(next) > 0 {
		j.Next = &connectionJSON{Block: next}
	}

	for _, fv := range domain.Fields(b) {
		raw, err := encodeField(fv)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		if j.Fields == nil {
			j.Fields = make(map[string]json.RawMessage)
		}
		j.Fields[fv.Name] = raw
	}

	e := &encoder{j: &j}
	switch v := b.(type) {
	case *domain.RobotInit:
		e.statements("DO", v.Do)
	case *domain.RobotPeriodic:
		e.statements("DO", v.Do)
	case *domain.WhileButtonHeld:
		e.statements("DO", v.Do)
	case *domain.WhenButtonPressed:
		e.statements("DO", v.Do)
	case *domain.If:
		if n := len(v.Branches) - 1; n > 0 || v.HasElse {
			state := ifStateJSON{HasElse: v.HasElse}
			if n > 0 {
				state.ElseIfCount = n
			}
			raw, err := json.Marshal(state)
			if err != nil {
				return nil, err
			}
			j.ExtraState = raw
		}
		for i, br := range v.Branches {
			n := strconv.Itoa(i)
			e.value("IF"+n, br.Cond)
			e.statements("DO"+n, br.Do)
		}
		if v.HasElse {
			e.statements("ELSE", v.Else)
		}
	case *domain.Compare:
		e.value("A", v.A)
		e.value("B", v.B)
	case *domain.Operation:
		e.value("A", v.A)
		e.value("B", v.B)
	case *domain.Negate:
		e.value("BOOL", v.Bool)
	case *domain.Ternary:
		e.value("IF", v.If)
		e.value("THEN", v.Then)
		e.value("ELSE", v.Else)
	}
	if e.err != nil {
		return nil, fmt.Errorf("%s %s: %w", j.Type, j.ID, e.err)
	}
	return json.Marshal(j)
}

func encodeUnknown(u *domain.UnknownBlock, next json.RawMessage) (json.RawMessage, error) {
	if len(next) == 0 {
		return u.Raw, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(u.Raw, &m); err != nil {
		return nil, fmt.Errorf("%s: parse raw block: %w", u.Tag, err)
	}
	link, err := json.Marshal(connectionJSON{Block: next})
	if err != nil {
		return nil, err
	}
	m["next"] = link
	return json.Marshal(m)
}

func encodeField(fv domain.FieldValue) (json.RawMessage, error) {
	if fv.Numeric {
		if fv.Value == "" {
			return nil, nil
		}
		if _, ok := domain.Number(fv.Value).Float(); ok && json.Valid([]byte(fv.Value)) {
			return json.RawMessage(fv.Value), nil
		}
	}
	return json.Marshal(fv.Value)
}

// encodeChain encodes a statement sequence back into a next-linked chain.
func encodeChain(stmts domain.Statements) (json.RawMessage, error) {
	var next json.RawMessage
	for i := len(stmts) - 1; i >= 0; i-- {
		raw, err := encodeBlock(stmts[i], next)
		if err != nil {
			return nil, err
		}
		next = raw
	}
	return next, nil
}

type encoder struct {
	j   *blockJSON
	err error
}

func (e *encoder) input(name string, in inputJSON) {
	if e.j.Inputs == nil {
		e.j.Inputs = make(map[string]inputJSON)
	}
	e.j.Inputs[name] = in
}

func (e *encoder) value(name string, b domain.Block) {
	if b == nil || e.err != nil {
		return
	}
	raw, err := encodeBlock(b, nil)
	if err != nil {
		e.err = fmt.Errorf("input %s: %w", name, err)
		return
	}
	if b.Meta().Shadow {
		e.input(name, inputJSON{Shadow: raw})
		return
	}
	e.input(name, inputJSON{Block: raw})
}

func (e *encoder) statements(name string, stmts domain.Statements) {
	if len(stmts) == 0 || e.err != nil {
		return
	}
	raw, err := encodeChain(stmts)
	if err != nil {
		e.err = fmt.Errorf("input %s: %w", name, err)
		return
	}
	e.input(name, inputJSON{Block: raw})
}
