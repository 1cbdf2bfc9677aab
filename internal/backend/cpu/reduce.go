package cpu

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// SumDim sums a tensor along the specified dimension.
// With keepDim the reduced axis survives as size 1, otherwise it is removed.
// Negative dim counts from the last axis.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDim(x.AsFloat64(), result.AsFloat64(), shape, dim)
	case tensor.Int32:
		sumDim(x.AsInt32(), result.AsInt32(), shape, dim)
	case tensor.Int64:
		sumDim(x.AsInt64(), result.AsInt64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}

	return result
}

// sumDim accumulates src into dst with the reduced axis collapsed.
// dst is laid out as the input shape minus the reduced dimension; with
// keepDim that layout is identical because the kept axis has size 1.
func sumDim[T number](src, dst []T, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()

	// outer: product of dims before 'dim'; inner: product after.
	outer := 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	inner := strides[dim]
	n := shape[dim]

	for o := 0; o < outer; o++ {
		srcBase := o * n * inner
		dstBase := o * inner
		for j := 0; j < n; j++ {
			row := srcBase + j*inner
			for k := 0; k < inner; k++ {
				dst[dstBase+k] += src[row+k]
			}
		}
	}
}
