package domain

import "encoding/json"

// Workspace is the full set of blocks a user has assembled. Each stack is a
// top-level block followed by whatever is chained below it; an event block
// is a stack of one. Stacks keep document order; the generator decides
// display order.
type Workspace struct {
	Stacks []Statements

	// LanguageVersion and Extra preserve the parts of the document this
	// editor does not model (variables, procedures, ...).
	LanguageVersion int
	Extra           map[string]json.RawMessage
}

// Walk calls fn for every block in the workspace, depth first, in slot order.
// Returning false from fn skips that block's children.
func (w *Workspace) Walk(fn func(Block) bool) {
	for _, stack := range w.Stacks {
		for _, b := range stack {
			walk(b, fn)
		}
	}
}

func walk(b Block, fn func(Block) bool) {
	if b == nil || !fn(b) {
		return
	}
	for _, c := range Children(b) {
		walk(c, fn)
	}
}

// Children returns the direct children of b in slot order.
func Children(b Block) []Block {
	var out []Block
	add := func(bs ...Block) {
		for _, c := range bs {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch v := b.(type) {
	case *RobotInit:
		add(v.Do...)
	case *RobotPeriodic:
		add(v.Do...)
	case *WhileButtonHeld:
		add(v.Do...)
	case *WhenButtonPressed:
		add(v.Do...)
	case *If:
		for _, br := range v.Branches {
			add(br.Cond)
			add(br.Do...)
		}
		add(v.Else...)
	case *Compare:
		add(v.A, v.B)
	case *Operation:
		add(v.A, v.B)
	case *Negate:
		add(v.Bool)
	case *Ternary:
		add(v.If, v.Then, v.Else)
	}
	return out
}

// FieldValue is one named field of a block as the editor stores it.
type FieldValue struct {
	Name    string
	Value   string
	Numeric bool
}

// Fields returns b's named field values in declaration order.
func Fields(b Block) []FieldValue {
	num := func(name string, n Number) FieldValue { return FieldValue{Name: name, Value: string(n), Numeric: true} }
	str := func(name, s string) FieldValue { return FieldValue{Name: name, Value: s} }
	switch v := b.(type) {
	case *InitCANMotor:
		return []FieldValue{num("CAN_ID", v.CANID), str("TYPE", v.MotorType)}
	case *InitPWMMotor:
		return []FieldValue{num("PWM_PORT", v.Port), str("TYPE", v.MotorType)}
	case *SetPWM:
		return []FieldValue{num("ID", v.Channel), num("VALUE", v.Value)}
	case *InitGyro:
		return []FieldValue{str("TYPE", v.GyroType)}
	case *RawAxis:
		return []FieldValue{num("PORT", v.Port), num("AXIS", v.Axis)}
	case *WhileButtonHeld:
		return []FieldValue{num("BTN", v.Button), num("PORT", v.Port)}
	case *WhenButtonPressed:
		return []FieldValue{num("BTN", v.Button), num("PORT", v.Port)}
	case *Compare:
		return []FieldValue{str("OP", v.Op)}
	case *Operation:
		return []FieldValue{str("OP", v.Op)}
	case *Boolean:
		return []FieldValue{str("BOOL", v.Value)}
	}
	return nil
}
