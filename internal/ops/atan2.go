package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Atan2 computes atan2(a, b) element-wise with broadcasting: the angle of
// the point (b, a), with the quadrant chosen by the signs of both operands.
//
// Gradients (shared denominator a² + b²):
//   - grad_a = dy * b / (a² + b²)
//   - grad_b = -dy * a / (a² + b²)
func Atan2(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "atan2", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("atan2", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Atan2(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			denom := func() *tensor.RawTensor {
				return be.Add(be.Mul(x, x), be.Mul(y, y))
			}
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					g := be.Div(be.Mul(dy, y), denom())
					return reduceGrad(g, x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					g := be.Neg(be.Div(be.Mul(dy, x), denom()))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
