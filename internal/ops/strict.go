package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// strictVariant wraps a broadcasting operator into its deprecated
// non-broadcasting form. The wrapper normalizes both operands, rejects
// unequal shapes with *ShapeMismatchError, reports one deprecation notice,
// and delegates; with equal shapes the delegate broadcasts trivially, so the
// gradient behavior is inherited unchanged.
func strictVariant(name, replacement string, delegate BinaryOp) BinaryOp {
	return func(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
		x, err := tensor.FromAny(a, "a", name)
		if err != nil {
			return nil, err
		}
		y, err := tensor.FromAny(b, "b", name)
		if err != nil {
			return nil, err
		}

		if !x.Shape().Equal(y.Shape()) {
			return nil, &tensor.ShapeMismatchError{
				Op:     name,
				ShapeA: x.Shape().Clone(),
				ShapeB: y.Shape().Clone(),
			}
		}

		eng.ReportDeprecation(name, replacement)
		return delegate(eng, x, y)
	}
}

// Deprecated strict entry points. Each requires exactly matching shapes and
// otherwise behaves like its broadcasting counterpart.
var (
	AddStrict               = strictVariant("addStrict", "add", Add)
	SubStrict               = strictVariant("subStrict", "sub", Sub)
	MulStrict               = strictVariant("mulStrict", "mul", Mul)
	DivStrict               = strictVariant("divStrict", "div", Div)
	ModStrict               = strictVariant("modStrict", "mod", Mod)
	MinimumStrict           = strictVariant("minimumStrict", "minimum", Minimum)
	MaximumStrict           = strictVariant("maximumStrict", "maximum", Maximum)
	PowStrict               = strictVariant("powStrict", "pow", Pow)
	SquaredDifferenceStrict = strictVariant("squaredDifferenceStrict", "squaredDifference", SquaredDifference)
)
