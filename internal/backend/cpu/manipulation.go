package cpu

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape.
// The element count must be preserved.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), t.Data()[:t.ByteSize()])
	return result
}

// Expand materializes a tensor broadcast to the given shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, _, err := tensor.BroadcastShapes(x.Shape(), shape)
	if err != nil || !out.Equal(shape) {
		panic(fmt.Sprintf("expand: cannot expand %v to %v", x.Shape(), shape))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	outStrides := shape.ComputeStrides()
	srcStrides := computeBroadcastStridesForShape(x.Shape(), shape)
	elemSize := x.DType().Size()
	srcData := x.Data()
	dstData := result.Data()

	for i := 0; i < shape.NumElements(); i++ {
		si := computeFlatIndex(i, outStrides, srcStrides)
		copy(dstData[i*elemSize:(i+1)*elemSize], srcData[si*elemSize:(si+1)*elemSize])
	}

	return result
}
