package ops

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// BinaryOp is the signature every broadcast binary operator shares.
// Operands may be tensors or raw nested literals.
type BinaryOp func(eng *engine.Engine, a, b any) (*tensor.RawTensor, error)

// normalizePair coerces both operands into tensors, promotes them to a
// common dtype and validates broadcast compatibility. Every operator enters
// through here before touching the backend, so a failed call can never have
// registered a gradient node.
func normalizePair(eng *engine.Engine, op string, a, b any) (*tensor.RawTensor, *tensor.RawTensor, error) {
	x, err := tensor.FromAny(a, "a", op)
	if err != nil {
		return nil, nil, err
	}
	y, err := tensor.FromAny(b, "b", op)
	if err != nil {
		return nil, nil, err
	}

	x, y = tensor.MatchDTypes(x, y, eng.Backend())

	if _, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape()); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// reduceGrad reduces a broadcast-shaped gradient back down to the target
// input shape: sum over the input's reduction axes (keepDim so axis indices
// stay stable), then reshape to the exact target. A gradient already in
// target shape is cloned so accumulation never aliases the upstream tensor.
func reduceGrad(g *tensor.RawTensor, target tensor.Shape, be tensor.Backend) *tensor.RawTensor {
	if g.Shape().Equal(target) {
		return g.Clone()
	}

	for _, axis := range tensor.ReductionAxes(target, g.Shape()) {
		g = be.SumDim(g, axis, true)
	}
	if !g.Shape().Equal(target) {
		g = be.Reshape(g, target)
	}
	return g
}

// zerosLike allocates a zero tensor matching shape and dtype.
func zerosLike(t *tensor.RawTensor, be tensor.Backend) *tensor.RawTensor {
	z, err := tensor.NewRaw(t.Shape(), t.DType(), be.Device())
	if err != nil {
		panic(err)
	}
	return z
}

// onesLike allocates a ones tensor matching shape and dtype.
// Float dtypes only; gradient algebra never needs integer ones.
func onesLike(t *tensor.RawTensor, be tensor.Backend) *tensor.RawTensor {
	o := zerosLike(t, be)
	switch o.DType() {
	case tensor.Float32:
		data := o.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := o.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic("onesLike: only float32 and float64 are supported")
	}
	return o
}

// mask converts a Bool comparison result into a multiplicative gradient mask
// of the given dtype.
func mask(cond *tensor.RawTensor, dtype tensor.DataType, be tensor.Backend) *tensor.RawTensor {
	return be.Cast(cond, dtype)
}
