package codegen

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"robotblocks/internal/domain"
)

// Indent is one level of generated Python indentation.
const Indent = "  "

// Placeholders emitted where a block has no real rendering for the chosen
// option.
const (
	PlaceholderValue      = "None"
	PlaceholderRawAxis    = "RAW_AXIS"
	PlaceholderButtonHold = "BTN_HOLD"
	PlaceholderButtonPush = "BTN_PRESS"
)

// scanAngle tilts the top-to-bottom scan of top-level stacks slightly so that
// stacks on the same row are taken left to right.
const scanAngle = 3 * math.Pi / 180

// Generate renders the workspace as one Python document. Stacks are rendered
// top to bottom and separated by a blank line.
func Generate(ws *domain.Workspace) string {
	var parts []string
	for _, stack := range OrderedStacks(ws) {
		g := &generator{p: NewPrinter(Indent)}
		g.stack(stack)
		if g.p.Len() > 0 {
			parts = append(parts, g.p.String())
		}
	}
	return strings.Join(parts, "\n")
}

// OrderedStacks returns the workspace's stacks in display order.
func OrderedStacks(ws *domain.Workspace) []domain.Statements {
	stacks := make([]domain.Statements, 0, len(ws.Stacks))
	for _, s := range ws.Stacks {
		if len(s) > 0 {
			stacks = append(stacks, s)
		}
	}
	offset := math.Sin(scanAngle)
	key := func(s domain.Statements) float64 {
		m := s[0].Meta()
		var x, y float64
		if m.X != nil {
			x = *m.X
		}
		if m.Y != nil {
			y = *m.Y
		}
		return y + offset*x
	}
	slices.SortStableFunc(stacks, func(a, b domain.Statements) int {
		return cmp.Compare(key(a), key(b))
	})
	return stacks
}

type generator struct {
	p *Printer
}

// stack renders a top-level stack. A value block left on its own renders as
// a bare expression line.
func (g *generator) stack(s domain.Statements) {
	if len(s) == 1 && domain.IsValue(s[0]) {
		if s[0].Meta().Disabled {
			return
		}
		g.comment(s[0])
		code, _ := g.expr(s[0])
		g.p.Line(code)
		return
	}
	g.statements(s)
}

func (g *generator) statements(stmts domain.Statements) {
	for _, b := range stmts {
		if b == nil || b.Meta().Disabled {
			continue
		}
		g.comment(b)
		g.statement(b)
	}
}

func (g *generator) comment(b domain.Block) {
	if c := b.Meta().Comment; c != "" {
		g.p.Comment(c)
	}
}

func (g *generator) statement(b domain.Block) {
	switch v := b.(type) {
	case *domain.RobotInit:
		g.event("robotInit", v.Do)
	case *domain.RobotPeriodic:
		g.event("robotPeriodic", v.Do)
	case *domain.InitCANMotor:
		g.p.Linef("self.motor_can_%s = %s", v.CANID, canMotor(v.MotorType))
	case *domain.InitPWMMotor:
		g.p.Linef("self.motor_pwm_%s = %s", v.Port, pwmMotor(v.MotorType, v.Port))
	case *domain.SetPWM:
		g.p.Linef("self.motor_pwm_%s.set(%s)", v.Channel, v.Value)
	case *domain.InitGyro:
		g.p.Linef("self.gyro_%s = %s", strings.ToLower(v.GyroType), gyro(v.GyroType))
	case *domain.WhileButtonHeld:
		g.p.Line(PlaceholderButtonHold)
	case *domain.WhenButtonPressed:
		g.p.Line(PlaceholderButtonPush)
	case *domain.If:
		g.ifBlock(v)
	case *domain.UnknownBlock:
		g.p.Comment("unsupported block: " + string(v.Tag))
		g.p.Line("pass")
	default:
		// A value block chained as a statement.
		code, _ := g.expr(b)
		g.p.Line(code)
	}
}

func (g *generator) event(name string, body domain.Statements) {
	g.p.Linef("def %s(self):", name)
	g.p.Suite(func() {
		g.p.Comment("autogenerated code")
		g.statements(body)
	})
}

func (g *generator) ifBlock(b *domain.If) {
	branches := b.Branches
	if len(branches) == 0 {
		branches = []domain.IfBranch{{}}
	}
	for i, br := range branches {
		cond := g.valueToCode(br.Cond, OrderNone)
		if cond == "" {
			cond = "False"
		}
		keyword := "if"
		if i > 0 {
			keyword = "elif"
		}
		g.p.Linef("%s %s:", keyword, cond)
		g.p.Suite(func() { g.statements(br.Do) })
	}
	if b.HasElse {
		g.p.Line("else:")
		g.p.Suite(func() { g.statements(b.Else) })
	}
}

// valueToCode renders an input's block for use at outer precedence. Missing
// or disabled blocks yield "".
func (g *generator) valueToCode(b domain.Block, outer Order) string {
	if b == nil || b.Meta().Disabled {
		return ""
	}
	code, inner := g.expr(b)
	return parenthesize(code, inner, outer)
}

func orDefault(code, def string) string {
	if code == "" {
		return def
	}
	return code
}

func (g *generator) expr(b domain.Block) (string, Order) {
	switch v := b.(type) {
	case *domain.GyroAngle:
		return "self.gyro_navx.get()", OrderFunctionCall
	case *domain.RawAxis:
		return PlaceholderRawAxis, OrderFunctionCall
	case *domain.Boolean:
		switch v.Value {
		case "TRUE":
			return "True", OrderAtomic
		case "FALSE":
			return "False", OrderAtomic
		}
		return PlaceholderValue, OrderAtomic
	case *domain.Compare:
		op, ok := compareOps[v.Op]
		if !ok {
			return PlaceholderValue, OrderAtomic
		}
		a := orDefault(g.valueToCode(v.A, OrderRelational), "0")
		c := orDefault(g.valueToCode(v.B, OrderRelational), "0")
		return a + " " + op + " " + c, OrderRelational
	case *domain.Operation:
		var op string
		var order Order
		switch v.Op {
		case "AND":
			op, order = "and", OrderLogicalAnd
		case "OR":
			op, order = "or", OrderLogicalOr
		default:
			return PlaceholderValue, OrderAtomic
		}
		a := g.valueToCode(v.A, order)
		c := g.valueToCode(v.B, order)
		if a == "" && c == "" {
			a, c = "False", "False"
		} else {
			def := "False"
			if op == "and" {
				def = "True"
			}
			a, c = orDefault(a, def), orDefault(c, def)
		}
		return a + " " + op + " " + c, order
	case *domain.Negate:
		return "not " + orDefault(g.valueToCode(v.Bool, OrderLogicalNot), "True"), OrderLogicalNot
	case *domain.Ternary:
		cond := orDefault(g.valueToCode(v.If, OrderConditional), "False")
		then := orDefault(g.valueToCode(v.Then, OrderConditional), "None")
		els := orDefault(g.valueToCode(v.Else, OrderConditional), "None")
		return then + " if " + cond + " else " + els, OrderConditional
	}
	return PlaceholderValue, OrderAtomic
}

var compareOps = map[string]string{
	"EQ":  "==",
	"NEQ": "!=",
	"LT":  "<",
	"LTE": "<=",
	"GT":  ">",
	"GTE": ">=",
}

// canMotor has no CAN motor controller bindings yet; every type is a
// placeholder.
func canMotor(string) string {
	return PlaceholderValue
}

func pwmMotor(motorType string, port domain.Number) string {
	switch motorType {
	case "SPARK":
		return "wpilib.Spark(" + port.String() + ")"
	case "TALON":
		return "wpilib.Talon(" + port.String() + ")"
	case "JAGUAR":
		return "wpilib.Jaguar(" + port.String() + ")"
	}
	return PlaceholderValue
}

// gyro has no gyro bindings yet; every type is a placeholder.
func gyro(string) string {
	return PlaceholderValue
}
