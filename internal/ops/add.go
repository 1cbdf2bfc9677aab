package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Add computes a + b element-wise with broadcasting.
// The upstream gradient flows to both inputs unchanged (modulo broadcast
// reduction). Only the input shapes are needed for that, so nothing is
// saved and no buffer outlives the forward call.
func Add(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	x, y, err := normalizePair(eng, "add", a, b)
	if err != nil {
		return nil, err
	}
	aShape, bShape := x.Shape().Clone(), y.Shape().Clone()

	out := eng.RunKernel("add", engine.Inputs{"a": x, "b": y},
		func(be tensor.Backend, _ func(...*tensor.RawTensor)) *tensor.RawTensor {
			return be.Add(x, y)
		},
		func(dy *tensor.RawTensor, _ []*tensor.RawTensor) map[string]engine.Thunk {
			be := eng.Backend()
			return map[string]engine.Thunk{
				"a": func() *tensor.RawTensor {
					return reduceGrad(dy, aShape, be)
				},
				"b": func() *tensor.RawTensor {
					return reduceGrad(dy, bShape, be)
				},
			}
		})
	return out, nil
}
