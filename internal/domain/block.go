package domain

import "encoding/json"

// BlockType is the Blockly type tag of a block.
type BlockType string

const (
	BlockTypeRobotInit       BlockType = "robot_init"
	BlockTypeRobotPeriodic   BlockType = "robot_periodic"
	BlockTypeInitCANMotor    BlockType = "init_can_motor"
	BlockTypeInitPWMMotor    BlockType = "init_pwm_motor"
	BlockTypeSetPWM          BlockType = "set_pwm"
	BlockTypeInitGyro        BlockType = "init_gyro"
	BlockTypeGyroAngle       BlockType = "get_gyro_angle"
	BlockTypeRawAxis         BlockType = "get_raw_axis"
	BlockTypeWhileButtonHeld BlockType = "while_btn_held"
	BlockTypeWhenButtonPress BlockType = "when_btn_pressed"
	BlockTypeIf              BlockType = "controls_if"
	BlockTypeCompare         BlockType = "logic_compare"
	BlockTypeOperation       BlockType = "logic_operation"
	BlockTypeNegate          BlockType = "logic_negate"
	BlockTypeBoolean         BlockType = "logic_boolean"
	BlockTypeTernary         BlockType = "logic_ternary"
)

// Block is one node of the workspace tree. The set of implementations is
// closed: every variant lives in this package.
type Block interface {
	Type() BlockType
	Meta() *BlockMeta
	block()
}

// BlockMeta carries what every block has regardless of its type.
type BlockMeta struct {
	ID       string   `json:"id"`
	X        *float64 `json:"x,omitempty"` // top-level blocks only
	Y        *float64 `json:"y,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
	Comment  string   `json:"comment,omitempty"`
	Shadow   bool     `json:"shadow,omitempty"` // came from an input's shadow slot
}

func (m *BlockMeta) Meta() *BlockMeta { return m }
func (*BlockMeta) block()             {}

// Number is a numeric field value kept as its literal text so it is
// emitted exactly as the editor stored it.
type Number string

// Float parses the literal. Malformed literals yield 0 and false.
func (n Number) Float() (float64, bool) {
	f, err := json.Number(n).Float64()
	return f, err == nil
}

func (n Number) String() string { return string(n) }

// Statements is an ordered statement slot.
type Statements []Block

// ── Events ──────────────────────────────────────────────────

type RobotInit struct {
	BlockMeta
	Do Statements
}

type RobotPeriodic struct {
	BlockMeta
	Do Statements
}

// ── Motors ──────────────────────────────────────────────────

type InitCANMotor struct {
	BlockMeta
	CANID     Number
	MotorType string
}

type InitPWMMotor struct {
	BlockMeta
	Port      Number
	MotorType string
}

type SetPWM struct {
	BlockMeta
	Channel Number
	Value   Number
}

// ── Sensors ─────────────────────────────────────────────────

type InitGyro struct {
	BlockMeta
	GyroType string
}

// GyroAngle has an unnamed dropdown in the editor, so nothing is serialized
// for it.
type GyroAngle struct {
	BlockMeta
}

// ── Controllers ─────────────────────────────────────────────

type RawAxis struct {
	BlockMeta
	Port Number
	Axis Number
}

type WhileButtonHeld struct {
	BlockMeta
	Button Number
	Port   Number
	Do     Statements
}

type WhenButtonPressed struct {
	BlockMeta
	Button Number
	Port   Number
	Do     Statements
}

// ── Logic ───────────────────────────────────────────────────

// IfBranch is one `if`/`elif` arm of a controls_if block.
type IfBranch struct {
	Cond Block // nil when the IFn input is empty
	Do   Statements
}

type If struct {
	BlockMeta
	Branches []IfBranch
	HasElse  bool
	Else     Statements
}

type Compare struct {
	BlockMeta
	Op   string
	A, B Block
}

type Operation struct {
	BlockMeta
	Op   string
	A, B Block
}

type Negate struct {
	BlockMeta
	Bool Block
}

type Boolean struct {
	BlockMeta
	Value string // TRUE or FALSE
}

type Ternary struct {
	BlockMeta
	If, Then, Else Block
}

// UnknownBlock is any block type this editor has no variant for. Raw holds
// the block's original JSON so it can be written back unchanged.
type UnknownBlock struct {
	BlockMeta
	Tag BlockType
	Raw json.RawMessage
}

func (*RobotInit) Type() BlockType         { return BlockTypeRobotInit }
func (*RobotPeriodic) Type() BlockType     { return BlockTypeRobotPeriodic }
func (*InitCANMotor) Type() BlockType      { return BlockTypeInitCANMotor }
func (*InitPWMMotor) Type() BlockType      { return BlockTypeInitPWMMotor }
func (*SetPWM) Type() BlockType            { return BlockTypeSetPWM }
func (*InitGyro) Type() BlockType          { return BlockTypeInitGyro }
func (*GyroAngle) Type() BlockType         { return BlockTypeGyroAngle }
func (*RawAxis) Type() BlockType           { return BlockTypeRawAxis }
func (*WhileButtonHeld) Type() BlockType   { return BlockTypeWhileButtonHeld }
func (*WhenButtonPressed) Type() BlockType { return BlockTypeWhenButtonPress }
func (*If) Type() BlockType                { return BlockTypeIf }
func (*Compare) Type() BlockType           { return BlockTypeCompare }
func (*Operation) Type() BlockType         { return BlockTypeOperation }
func (*Negate) Type() BlockType            { return BlockTypeNegate }
func (*Boolean) Type() BlockType           { return BlockTypeBoolean }
func (*Ternary) Type() BlockType           { return BlockTypeTernary }
func (b *UnknownBlock) Type() BlockType    { return b.Tag }

// IsValue reports whether b produces an expression rather than a statement.
func IsValue(b Block) bool {
	switch b.(type) {
	case *GyroAngle, *RawAxis, *Compare, *Operation, *Negate, *Boolean, *Ternary:
		return true
	}
	return false
}
