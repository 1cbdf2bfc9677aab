package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Minimum computes the element-wise minimum of a and b with broadcasting.
//
// The upstream gradient is routed to whichever input supplied each element:
// grad_a = dy * [a <= b], grad_b = dy * [a > b]. Ties route to a, so the
// masks always partition dy.
func Minimum(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "minimum", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("minimum", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Minimum(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					g := be.Mul(dy, mask(be.LowerEqual(x, y), dy.DType(), be))
					return reduceGrad(g, x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					g := be.Mul(dy, mask(be.Greater(x, y), dy.DType(), be))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
