package cpu

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// Greater returns a Bool tensor of a > b with broadcasting.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b, func(x, y float64) bool { return x > y })
}

// GreaterEqual returns a Bool tensor of a >= b with broadcasting.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greaterEqual", a, b, func(x, y float64) bool { return x >= y })
}

// Lower returns a Bool tensor of a < b with broadcasting.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lower", a, b, func(x, y float64) bool { return x < y })
}

// LowerEqual returns a Bool tensor of a <= b with broadcasting.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lowerEqual", a, b, func(x, y float64) bool { return x <= y })
}

// compare runs a comparison kernel into a Bool result. Comparing through
// float64 is exact for every supported dtype except the int64 tail range,
// which the operator layer never produces for comparison masks.
func (cpu *CPUBackend) compare(name string, a, b *tensor.RawTensor, f func(x, y float64) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Bool, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)

	dst := result.AsBool()
	load := loadFloat(a.DType())

	for i := range dst {
		ai := computeFlatIndex(i, outStrides, aStrides)
		bi := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = f(load(a, ai), load(b, bi))
	}

	return result
}

// loadFloat returns an element accessor converting to float64.
func loadFloat(dt tensor.DataType) func(*tensor.RawTensor, int) float64 {
	switch dt {
	case tensor.Float32:
		return func(t *tensor.RawTensor, i int) float64 { return float64(t.AsFloat32()[i]) }
	case tensor.Float64:
		return func(t *tensor.RawTensor, i int) float64 { return t.AsFloat64()[i] }
	case tensor.Int32:
		return func(t *tensor.RawTensor, i int) float64 { return float64(t.AsInt32()[i]) }
	case tensor.Int64:
		return func(t *tensor.RawTensor, i int) float64 { return float64(t.AsInt64()[i]) }
	case tensor.Uint8:
		return func(t *tensor.RawTensor, i int) float64 { return float64(t.AsUint8()[i]) }
	default:
		panic(fmt.Sprintf("compare: unsupported dtype %s", dt))
	}
}
