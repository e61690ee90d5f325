package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/accentsync/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// makeShiftFunc creates an HCL function that shifts a color's lightness.
// Usage: lighten("#hex", 0.1) or darken("#hex", 0.1)
func makeShiftFunc(description string, shift func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "amount",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()

			return cty.StringVal(shift(c, amount).Hex()), nil
		},
	})
}

// EvalContext exposes the lighten and darken functions to config expressions.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"lighten": makeShiftFunc("Raises a color's HSL lightness by amount (0.0 to 1.0)", color.Lighten),
			"darken":  makeShiftFunc("Lowers a color's HSL lightness by amount (0.0 to 1.0)", color.Darken),
		},
	}
}
