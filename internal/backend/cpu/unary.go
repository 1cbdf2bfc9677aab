package cpu

import (
	"fmt"
	"math"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("neg: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = -v
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = -v
		}
	case tensor.Int32:
		src := x.AsInt32()
		dst := result.AsInt32()
		for i, v := range src {
			dst[i] = -v
		}
	case tensor.Int64:
		src := x.AsInt64()
		dst := result.AsInt64()
		for i, v := range src {
			dst[i] = -v
		}
	default:
		panic(fmt.Sprintf("neg: unsupported dtype %s", x.DType()))
	}

	return result
}

// Floor computes the element-wise floor. Integer tensors pass through as a
// copy.
func (cpu *CPUBackend) Floor(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("floor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Floor(float64(v)))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Floor(v)
		}
	case tensor.Int32:
		copy(result.AsInt32(), x.AsInt32())
	case tensor.Int64:
		copy(result.AsInt64(), x.AsInt64())
	default:
		panic(fmt.Sprintf("floor: unsupported dtype %s", x.DType()))
	}

	return result
}

// Log computes the element-wise natural logarithm. Non-positive values
// produce NaN/-Inf per IEEE semantics; callers mask them where needed.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("log: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Log(float64(v)))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Log(v)
		}
	default:
		panic(fmt.Sprintf("log: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
