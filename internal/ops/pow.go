package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Pow computes a^b element-wise with broadcasting.
//
// Gradients (the forward result y = a^b is saved to avoid recomputing it):
//   - grad_a = dy * b * a^(b-1)
//   - grad_b = dy * y * ln(a) where a > 0, and 0 elsewhere (the derivative
//     w.r.t. the exponent is undefined for non-positive bases)
func Pow(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "pow", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("pow", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			result := be.Pow(x, y)
			save(x, y, result)
			return result
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y, result := saved[0], saved[1], saved[2]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					expm1 := be.Sub(y, onesLike(y, be))
					g := be.Mul(dy, be.Mul(y, be.Pow(x, expm1)))
					return reduceGrad(g, x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					// Log(x) is NaN for negative bases; Where selects those
					// lanes away before they reach the product.
					zeros := zerosLike(x, be)
					logX := be.Where(be.Greater(x, zeros), be.Log(x), zeros)
					g := be.Mul(dy, be.Mul(result, logX))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
