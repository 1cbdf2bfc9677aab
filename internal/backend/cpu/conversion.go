package cpu

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
	"github.com/x448/float16"
)

// Cast converts the tensor to a different data type.
// Returns the input unchanged when the dtype already matches.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	n := x.NumElements()
	read := readAsFloat64(x)
	write := writeFromFloat64(result)
	for i := 0; i < n; i++ {
		write(i, read(i))
	}

	return result
}

// readAsFloat64 returns an element reader converting to float64.
// float64 round-trips every supported dtype except the int64 tail range.
func readAsFloat64(x *tensor.RawTensor) func(int) float64 {
	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		return func(i int) float64 { return float64(src[i]) }
	case tensor.Float64:
		src := x.AsFloat64()
		return func(i int) float64 { return src[i] }
	case tensor.Float16:
		src := x.AsFloat16()
		return func(i int) float64 { return float64(src[i].Float32()) }
	case tensor.Int32:
		src := x.AsInt32()
		return func(i int) float64 { return float64(src[i]) }
	case tensor.Int64:
		src := x.AsInt64()
		return func(i int) float64 { return float64(src[i]) }
	case tensor.Uint8:
		src := x.AsUint8()
		return func(i int) float64 { return float64(src[i]) }
	case tensor.Bool:
		src := x.AsBool()
		return func(i int) float64 {
			if src[i] {
				return 1
			}
			return 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}

func writeFromFloat64(result *tensor.RawTensor) func(int, float64) {
	switch result.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		return func(i int, v float64) { dst[i] = float32(v) }
	case tensor.Float64:
		dst := result.AsFloat64()
		return func(i int, v float64) { dst[i] = v }
	case tensor.Float16:
		dst := result.AsFloat16()
		return func(i int, v float64) { dst[i] = float16.Fromfloat32(float32(v)) }
	case tensor.Int32:
		dst := result.AsInt32()
		return func(i int, v float64) { dst[i] = int32(v) }
	case tensor.Int64:
		dst := result.AsInt64()
		return func(i int, v float64) { dst[i] = int64(v) }
	case tensor.Uint8:
		dst := result.AsUint8()
		return func(i int, v float64) { dst[i] = uint8(v) }
	case tensor.Bool:
		dst := result.AsBool()
		return func(i int, v float64) { dst[i] = v != 0 }
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", result.DType()))
	}
}
