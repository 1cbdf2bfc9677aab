// Package cpu implements the CPU backend: pure Go kernels for the broadcast
// binary operators and the support operations gradient rules decompose into.
package cpu

import (
	"math"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "add",
		f32:  func(x, y float32) float32 { return x + y },
		f64:  func(x, y float64) float64 { return x + y },
		i32:  func(x, y int32) int32 { return x + y },
		i64:  func(x, y int64) int64 { return x + y },
	}, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "sub",
		f32:  func(x, y float32) float32 { return x - y },
		f64:  func(x, y float64) float64 { return x - y },
		i32:  func(x, y int32) int32 { return x - y },
		i64:  func(x, y int64) int64 { return x - y },
	}, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "mul",
		f32:  func(x, y float32) float32 { return x * y },
		f64:  func(x, y float64) float64 { return x * y },
		i32:  func(x, y int32) int32 { return x * y },
		i64:  func(x, y int64) int64 { return x * y },
	}, a, b)
}

// Div performs element-wise true division with broadcasting.
// Float dtypes only; integer operands must go through FloorDiv.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "div",
		f32:  func(x, y float32) float32 { return x / y },
		f64:  func(x, y float64) float64 { return x / y },
	}, a, b)
}

// FloorDiv performs element-wise floored division with broadcasting.
func (cpu *CPUBackend) FloorDiv(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "floorDiv",
		f32: func(x, y float32) float32 {
			return float32(math.Floor(float64(x) / float64(y)))
		},
		f64: func(x, y float64) float64 { return math.Floor(x / y) },
		i32: floorDivInt[int32],
		i64: floorDivInt[int64],
	}, a, b)
}

// Mod performs element-wise floored modulo with broadcasting.
// The result takes the sign of the divisor: mod(a, b) = a - floor(a/b)*b.
func (cpu *CPUBackend) Mod(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "mod",
		f32: func(x, y float32) float32 {
			return float32(floorMod(float64(x), float64(y)))
		},
		f64: floorMod,
		i32: floorModInt[int32],
		i64: floorModInt[int64],
	}, a, b)
}

// Pow performs element-wise exponentiation with broadcasting.
func (cpu *CPUBackend) Pow(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "pow",
		f32: func(x, y float32) float32 {
			return float32(math.Pow(float64(x), float64(y)))
		},
		f64: math.Pow,
	}, a, b)
}

// Minimum computes the element-wise minimum with broadcasting.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "minimum",
		f32:  minOf[float32],
		f64:  minOf[float64],
		i32:  minOf[int32],
		i64:  minOf[int64],
	}, a, b)
}

// Maximum computes the element-wise maximum with broadcasting.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "maximum",
		f32:  maxOf[float32],
		f64:  maxOf[float64],
		i32:  maxOf[int32],
		i64:  maxOf[int64],
	}, a, b)
}

// SquaredDifference computes (a-b)^2 element-wise with broadcasting.
func (cpu *CPUBackend) SquaredDifference(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "squaredDifference",
		f32:  sqDiff[float32],
		f64:  sqDiff[float64],
		i32:  sqDiff[int32],
		i64:  sqDiff[int64],
	}, a, b)
}

// Atan2 computes the two-argument arctangent element-wise with broadcasting.
func (cpu *CPUBackend) Atan2(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(binaryKernels{
		name: "atan2",
		f32: func(x, y float32) float32 {
			return float32(math.Atan2(float64(x), float64(y)))
		},
		f64: math.Atan2,
	}, a, b)
}
