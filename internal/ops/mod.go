package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Mod computes the floored modulo a mod b element-wise with broadcasting.
// The result takes the sign of the divisor: mod(a, b) = a - floor(a/b)*b.
//
// Gradients:
//   - grad_a = dy (mod is piecewise linear in a with unit slope a.e.)
//   - grad_b = -dy * floor(a/b), from a = floor(a/b)*b + mod(a, b)
func Mod(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "mod", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("mod", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Mod(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(dy, x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					g := be.Neg(be.Mul(dy, be.FloorDiv(x, y)))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
