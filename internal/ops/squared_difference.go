package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// SquaredDifference computes (a - b)² element-wise with broadcasting.
//
// Gradients: grad_a = dy * 2(a-b), grad_b = -dy * 2(a-b).
func SquaredDifference(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "squaredDifference", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("squaredDifference", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.SquaredDifference(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			twoDiff := func() *tensor.RawTensor {
				d := be.Sub(x, y)
				return be.Add(d, d)
			}
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(be.Mul(dy, twoDiff()), x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					return reduceGrad(be.Neg(be.Mul(dy, twoDiff())), y.Shape(), be)
				},
			}
		})
	return out, nil
}
