package cpu

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// Where selects x where condition is true, else y.
// All operands must share a shape; condition must be Bool.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition dtype must be bool, got %s", condition.DType()))
	}
	if !condition.Shape().Equal(x.Shape()) || !x.Shape().Equal(y.Shape()) {
		panic(fmt.Sprintf("where: shape mismatch: cond %v, x %v, y %v",
			condition.Shape(), x.Shape(), y.Shape()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	cond := condition.AsBool()
	elemSize := x.DType().Size()
	xData, yData, dst := x.Data(), y.Data(), result.Data()

	for i, c := range cond {
		src := yData
		if c {
			src = xData
		}
		copy(dst[i*elemSize:(i+1)*elemSize], src[i*elemSize:(i+1)*elemSize])
	}

	return result
}
