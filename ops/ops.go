// Package ops exposes the element-wise binary operators.
//
// Every operator accepts tensors, Go scalars, typed slices, or nested slice
// literals for either operand, promotes dtypes, broadcasts shapes, and
// records itself on the engine's tape when recording is on.
//
// Example:
//
//	eng := engine.New(cpu.New())
//	y, err := ops.Mul(eng, []float32{1, 2, 3, 4}, 5.0)
package ops

import (
	"github.com/cinder-ml/cinder/engine"
	"github.com/cinder-ml/cinder/internal/ops"
	"github.com/cinder-ml/cinder/tensor"
)

// BinaryOp is the signature shared by all element-wise binary operators.
type BinaryOp = ops.BinaryOp

// Add computes a + b element-wise with broadcasting.
func Add(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Add(eng, a, b)
}

// Sub computes a - b element-wise with broadcasting.
func Sub(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Sub(eng, a, b)
}

// Mul computes a * b element-wise with broadcasting.
func Mul(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Mul(eng, a, b)
}

// Div computes a / b element-wise with broadcasting.
func Div(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Div(eng, a, b)
}

// FloorDiv computes floor(a / b) element-wise with broadcasting.
func FloorDiv(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.FloorDiv(eng, a, b)
}

// Mod computes the floored modulo a - floor(a/b)*b element-wise with
// broadcasting. The result takes the sign of the divisor.
func Mod(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Mod(eng, a, b)
}

// Pow computes a raised to the power b element-wise with broadcasting.
func Pow(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Pow(eng, a, b)
}

// Minimum computes the element-wise minimum with broadcasting.
func Minimum(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Minimum(eng, a, b)
}

// Maximum computes the element-wise maximum with broadcasting.
func Maximum(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Maximum(eng, a, b)
}

// SquaredDifference computes (a - b)^2 element-wise with broadcasting.
func SquaredDifference(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.SquaredDifference(eng, a, b)
}

// Atan2 computes atan2(a, b) element-wise with broadcasting.
func Atan2(eng *engine.Engine, a, b any) (*tensor.RawTensor, error) {
	return ops.Atan2(eng, a, b)
}

// Deprecated strict variants. These require exactly equal operand shapes and
// report a deprecation notice on every call; use the broadcasting operators
// instead.
var (
	AddStrict               = ops.AddStrict
	SubStrict               = ops.SubStrict
	MulStrict               = ops.MulStrict
	DivStrict               = ops.DivStrict
	ModStrict               = ops.ModStrict
	MinimumStrict           = ops.MinimumStrict
	MaximumStrict           = ops.MaximumStrict
	PowStrict               = ops.PowStrict
	SquaredDifferenceStrict = ops.SquaredDifferenceStrict
)
