package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Mul computes a * b element-wise with broadcasting.
//
// Gradients:
//   - d(a*b)/da = b, so grad_a = dy * b
//   - d(a*b)/db = a, so grad_b = dy * a
func Mul(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "mul", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("mul", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Mul(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(be.Mul(dy, y), x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					return reduceGrad(be.Mul(dy, x), y.Shape(), be)
				},
			}
		})
	return out, nil
}
