package cpu

import (
	"fmt"
	"math"

	"github.com/cinder-ml/cinder/internal/parallel"
	"github.com/cinder-ml/cinder/internal/tensor"
	"golang.org/x/exp/constraints"
)

// parallelCfg is shared by all kernel loops.
var parallelCfg = parallel.DefaultConfig()

// number covers the dtypes CPU kernels compute in.
type number interface {
	constraints.Integer | constraints.Float
}

// binaryKernels bundles the per-dtype scalar kernels of one binary operator.
// A nil entry means the dtype is unsupported by that operator.
type binaryKernels struct {
	name string
	f32  func(float32, float32) float32
	f64  func(float64, float64) float64
	i32  func(int32, int32) int32
	i64  func(int64, int64) int64
}

// binary validates shapes, allocates the broadcast-shaped result and runs
// the scalar kernel for the operands' dtype. Operands must share a dtype;
// promotion happens in the normalizer, not here.
func (cpu *CPUBackend) binary(k binaryKernels, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", k.name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", k.name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", k.name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		runBinary(k.name, k.f32, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Float64:
		runBinary(k.name, k.f64, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int32:
		runBinary(k.name, k.i32, result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	case tensor.Int64:
		runBinary(k.name, k.i64, result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, needsBroadcast)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", k.name, a.DType()))
	}

	return result
}

// runBinary applies the scalar kernel over the output, resolving broadcast
// source indices through zero-strided dimensions when needed.
func runBinary[T any](name string, f func(T, T) T, dst, aData, bData []T, aShape, bShape, outShape tensor.Shape, needsBroadcast bool) {
	if f == nil {
		panic(fmt.Sprintf("%s: unsupported dtype for this operator", name))
	}

	if !needsBroadcast {
		parallel.For(len(dst), func(i int) {
			dst[i] = f(aData[i], bData[i])
		}, parallelCfg)
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.For(len(dst), func(i int) {
		dst[i] = f(aData[computeFlatIndex(i, outStrides, aStrides)],
			bData[computeFlatIndex(i, outStrides, bStrides)])
	}, parallelCfg)
}

// computeBroadcastStridesForShape computes strides for broadcasting a shape
// to outShape. Broadcast and left-padded dimensions get stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex maps a flat output index to the flat source index using
// broadcast-adjusted strides.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// floorMod implements modulo with the sign of the divisor.
func floorMod(x, y float64) float64 {
	return x - math.Floor(x/y)*y
}

func floorDivInt[T constraints.Signed](x, y T) T {
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return q
}

func floorModInt[T constraints.Signed](x, y T) T {
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

func minOf[T number](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func maxOf[T number](x, y T) T {
	if x > y {
		return x
	}
	return y
}

func sqDiff[T number](x, y T) T {
	d := x - y
	return d * d
}
