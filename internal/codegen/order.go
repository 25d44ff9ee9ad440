package codegen

import "math"

// Order is Python operator precedence as Blockly numbers it: lower binds
// tighter.
type Order float64

const (
	OrderAtomic         Order = 0
	OrderCollection     Order = 1
	OrderMember         Order = 2.1
	OrderFunctionCall   Order = 2.2
	OrderExponentiation Order = 3
	OrderUnarySign      Order = 4
	OrderMultiplicative Order = 5
	OrderAdditive       Order = 6
	OrderRelational     Order = 11
	OrderLogicalNot     Order = 12
	OrderLogicalAnd     Order = 13
	OrderLogicalOr      Order = 14
	OrderConditional    Order = 15
	OrderLambda         Order = 16
	OrderNone           Order = 99
)

// orderOverrides are (outer, inner) pairs that never need parentheses even
// though they share a precedence class.
var orderOverrides = [][2]Order{
	{OrderFunctionCall, OrderMember},
	{OrderFunctionCall, OrderFunctionCall},
	{OrderMember, OrderMember},
	{OrderMember, OrderFunctionCall},
	{OrderLogicalNot, OrderLogicalNot},
	{OrderLogicalAnd, OrderLogicalAnd},
	{OrderLogicalOr, OrderLogicalOr},
}

// parenthesize wraps code produced at inner precedence for use in a context
// of outer precedence.
func parenthesize(code string, inner, outer Order) string {
	if code == "" {
		return ""
	}
	outerClass := math.Floor(float64(outer))
	innerClass := math.Floor(float64(inner))
	if outerClass > innerClass {
		return code
	}
	if outerClass == innerClass && (outerClass == float64(OrderAtomic) || outerClass == float64(OrderNone)) {
		return code
	}
	for _, o := range orderOverrides {
		if o[0] == outer && o[1] == inner {
			return code
		}
	}
	return "(" + code + ")"
}
