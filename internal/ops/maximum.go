package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Maximum computes the element-wise maximum of a and b with broadcasting.
//
// Gradient routing mirrors Minimum: grad_a = dy * [a >= b],
// grad_b = dy * [a < b], with ties routed to a.
func Maximum(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "maximum", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("maximum", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Maximum(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					g := be.Mul(dy, mask(be.GreaterEqual(x, y), dy.DType(), be))
					return reduceGrad(g, x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					g := be.Mul(dy, mask(be.Lower(x, y), dy.DType(), be))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
