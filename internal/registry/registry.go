package registry

import (
	"robotblocks/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Block Registry: edit-time shape of every block type
// ─────────────────────────────────────────────────────────────

type FieldKind string

const (
	FieldLabel    FieldKind = "label"
	FieldNumber   FieldKind = "number"
	FieldDropdown FieldKind = "dropdown"
)

// Option is a dropdown entry: the text shown and the value stored.
type Option struct {
	Label string
	Value string
}

// Field is one element of a block's first row. Labels carry Text only.
type Field struct {
	Kind      FieldKind
	Name      string
	Text      string
	Default   string
	Min       float64
	Max       float64
	Precision float64
	Options   []Option
}

type SlotKind string

const (
	SlotValue     SlotKind = "value"
	SlotStatement SlotKind = "statement"
)

// Slot is a named child attachment point.
type Slot struct {
	Name  string
	Kind  SlotKind
	Check string
}

// Shape describes how a block type looks and connects in the editor.
type Shape struct {
	Type     domain.BlockType
	Category string
	Colour   int
	Row      []Field
	Slots    []Slot
	Previous bool
	Next     bool
	Output   string // output check; empty for statement blocks

	// Builtin shapes ship with Blockly itself; the editor does not send a
	// definition for them.
	Builtin bool
}

func label(text string) Field { return Field{Kind: FieldLabel, Text: text} }

func number(name, def string, min, max, precision float64) Field {
	return Field{Kind: FieldNumber, Name: name, Default: def, Min: min, Max: max, Precision: precision}
}

func dropdown(name string, opts ...Option) Field {
	return Field{Kind: FieldDropdown, Name: name, Default: opts[0].Value, Options: opts}
}

const (
	hueEvents      = 45
	hueLogic       = 210
	hueMotors      = 0
	hueSensors     = 160
	hueControllers = 290
)

var shapes = []Shape{
	{
		Type: domain.BlockTypeRobotInit, Category: "Events", Colour: hueEvents,
		Row:   []Field{label("Robot Init")},
		Slots: []Slot{{Name: "DO", Kind: SlotStatement}},
	},
	{
		Type: domain.BlockTypeRobotPeriodic, Category: "Events", Colour: hueEvents,
		Row:   []Field{label("Robot Periodic")},
		Slots: []Slot{{Name: "DO", Kind: SlotStatement}},
	},
	{
		Type: domain.BlockTypeInitCANMotor, Category: "Motors", Colour: hueMotors,
		Row: []Field{
			label("Init motor on CAN "),
			number("CAN_ID", "1", 1, 30, 1),
			label(" to type "),
			dropdown("TYPE",
				Option{"Spark Max", "SPARK"},
				Option{"Falcon 500", "FALCON"},
				Option{"Talon SRX", "TALON"},
				Option{"Victor SPX", "VICTOR"},
			),
		},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeInitPWMMotor, Category: "Motors", Colour: hueMotors,
		Row: []Field{
			label("Init motor on PWM "),
			number("PWM_PORT", "1", 1, 30, 1),
			label(" to type "),
			dropdown("TYPE",
				Option{"Spark", "SPARK"},
				Option{"Talon SRX", "TALON"},
				Option{"Jaguar", "JAGUAR"},
			),
		},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeSetPWM, Category: "Motors", Colour: hueMotors,
		Row: []Field{
			label("Set PWM "),
			number("ID", "1", 1, 30, 1),
			label(" to "),
			number("VALUE", "0", -1, 1, 0.01),
		},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeInitGyro, Category: "Sensors", Colour: hueSensors,
		Row: []Field{
			label("Init gyro of type "),
			dropdown("TYPE", Option{"NavX", "NAVX"}),
		},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeGyroAngle, Category: "Sensors", Colour: hueSensors,
		Row: []Field{
			label("Gyro angle from "),
			dropdown("", Option{"NavX", "NAVX"}),
		},
		Output: "Number",
	},
	{
		Type: domain.BlockTypeRawAxis, Category: "Controllers", Colour: hueControllers,
		Row: []Field{
			label("Get value of joystick "),
			number("PORT", "0", 0, 10, 1),
			label(" axis "),
			number("AXIS", "1", 1, 10, 1),
		},
		Output: "Number",
	},
	{
		Type: domain.BlockTypeWhileButtonHeld, Category: "Controllers", Colour: hueControllers,
		Row: []Field{
			label("While button "),
			number("BTN", "0", 0, 20, 1),
			label(" on joystick "),
			number("PORT", "0", 0, 10, 1),
			label(" is held"),
		},
		Slots:    []Slot{{Name: "DO", Kind: SlotStatement}},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeWhenButtonPress, Category: "Controllers", Colour: hueControllers,
		Row: []Field{
			label("When button "),
			number("BTN", "0", 0, 20, 1),
			label(" on joystick "),
			number("PORT", "0", 0, 10, 1),
			label(" is pressed"),
		},
		Slots:    []Slot{{Name: "DO", Kind: SlotStatement}},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeIf, Category: "Logic", Colour: hueLogic, Builtin: true,
		Slots: []Slot{
			{Name: "IF0", Kind: SlotValue, Check: "Boolean"},
			{Name: "DO0", Kind: SlotStatement},
		},
		Previous: true, Next: true,
	},
	{
		Type: domain.BlockTypeCompare, Category: "Logic", Colour: hueLogic, Builtin: true,
		Row: []Field{dropdown("OP",
			Option{"=", "EQ"}, Option{"≠", "NEQ"},
			Option{"<", "LT"}, Option{"≤", "LTE"},
			Option{">", "GT"}, Option{"≥", "GTE"},
		)},
		Slots:  []Slot{{Name: "A", Kind: SlotValue}, {Name: "B", Kind: SlotValue}},
		Output: "Boolean",
	},
	{
		Type: domain.BlockTypeOperation, Category: "Logic", Colour: hueLogic, Builtin: true,
		Row:    []Field{dropdown("OP", Option{"and", "AND"}, Option{"or", "OR"})},
		Slots:  []Slot{{Name: "A", Kind: SlotValue, Check: "Boolean"}, {Name: "B", Kind: SlotValue, Check: "Boolean"}},
		Output: "Boolean",
	},
	{
		Type: domain.BlockTypeNegate, Category: "Logic", Colour: hueLogic, Builtin: true,
		Slots:  []Slot{{Name: "BOOL", Kind: SlotValue, Check: "Boolean"}},
		Output: "Boolean",
	},
	{
		Type: domain.BlockTypeBoolean, Category: "Logic", Colour: hueLogic, Builtin: true,
		Row:    []Field{dropdown("BOOL", Option{"true", "TRUE"}, Option{"false", "FALSE"})},
		Output: "Boolean",
	},
	{
		Type: domain.BlockTypeTernary, Category: "Logic", Colour: hueLogic, Builtin: true,
		Slots: []Slot{
			{Name: "IF", Kind: SlotValue, Check: "Boolean"},
			{Name: "THEN", Kind: SlotValue},
			{Name: "ELSE", Kind: SlotValue},
		},
		Output: "*",
	},
}

var byType = func() map[domain.BlockType]*Shape {
	m := make(map[domain.BlockType]*Shape, len(shapes))
	for i := range shapes {
		m[shapes[i].Type] = &shapes[i]
	}
	return m
}()

// Shapes returns every registered block shape in toolbox order.
func Shapes() []Shape {
	out := make([]Shape, len(shapes))
	copy(out, shapes)
	return out
}

// Lookup returns the shape for a block type.
func Lookup(t domain.BlockType) (Shape, bool) {
	s, ok := byType[t]
	if !ok {
		return Shape{}, false
	}
	return *s, true
}

// Field returns the named field of the shape.
func (s Shape) Field(name string) (Field, bool) {
	for _, f := range s.Row {
		if f.Kind != FieldLabel && f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
