package registry

import (
	"fmt"
	"math"
	"slices"

	"robotblocks/internal/domain"
)

// Violation is a field value outside its declared constraint.
type Violation struct {
	BlockID string `json:"blockId"`
	Type    string `json:"type"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Reason  string `json:"reason"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s %s.%s=%q: %s", v.Type, v.BlockID, v.Field, v.Value, v.Reason)
}

// Validate checks every field of every registered block in ws against its
// shape. Unknown block types are not checked.
func Validate(ws *domain.Workspace) []Violation {
	var out []Violation
	ws.Walk(func(b domain.Block) bool {
		out = append(out, ValidateBlock(b)...)
		return true
	})
	return out
}

// ValidateBlock checks b's own fields, not its children.
func ValidateBlock(b domain.Block) []Violation {
	shape, ok := Lookup(b.Type())
	if !ok {
		return nil
	}
	var out []Violation
	for _, fv := range domain.Fields(b) {
		f, ok := shape.Field(fv.Name)
		if !ok {
			continue
		}
		if reason := f.check(fv.Value); reason != "" {
			out = append(out, Violation{
				BlockID: b.Meta().ID,
				Type:    string(b.Type()),
				Field:   fv.Name,
				Value:   fv.Value,
				Reason:  reason,
			})
		}
	}
	return out
}

func (f Field) check(value string) string {
	switch f.Kind {
	case FieldNumber:
		n, ok := domain.Number(value).Float()
		if !ok {
			return "not a number"
		}
		if n < f.Min || n > f.Max {
			return fmt.Sprintf("out of range [%g, %g]", f.Min, f.Max)
		}
		if f.Precision > 0 {
			steps := n / f.Precision
			if math.Abs(steps-math.Round(steps)) > 1e-9 {
				return fmt.Sprintf("not a multiple of %g", f.Precision)
			}
		}
	case FieldDropdown:
		if !slices.ContainsFunc(f.Options, func(o Option) bool { return o.Value == value }) {
			return "not one of the dropdown options"
		}
	}
	return ""
}
