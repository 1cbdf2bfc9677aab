package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Div computes a / b element-wise with broadcasting (true division).
//
// Gradients:
//   - grad_a = dy / b
//   - grad_b = -dy * a / b²
func Div(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "div", a, b)
	if err != nil {
		return nil, err
	}

	out := eng.RunKernel("div", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor {
			save(x, y)
			return be.Div(x, y)
		},
		func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]engine.Thunk {
			x, y := saved[0], saved[1]
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(be.Div(dy, y), x.Shape(), be)
				},
				"b": func() *tensor.RawTensor {
					ySq := be.Mul(y, y)
					g := be.Neg(be.Div(be.Mul(dy, x), ySq))
					return reduceGrad(g, y.Shape(), be)
				},
			}
		})
	return out, nil
}
