package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Sub computes a - b element-wise with broadcasting.
//
// Gradients: grad_a = dy, grad_b = -dy. Like Add, only the input shapes are
// retained.
func Sub(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "sub", a, b)
	if err != nil {
		return nil, err
	}
	aShape, bShape := x.Shape().Clone(), y.Shape().Clone()

	out := eng.RunKernel("sub", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, _ func(...*tensor.RawTensor)) *tensor.RawTensor {
			return be.Sub(x, y)
		},
		func(dy *tensor.RawTensor, _ []*tensor.RawTensor) map[string]engine.Thunk {
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(dy, aShape, be)
				},
				"b": func() *tensor.RawTensor {
					return reduceGrad(be.Neg(dy), bShape, be)
				},
			}
		})
	return out, nil
}
