package tensor

import (
	"github.com/cinder-ml/cinder/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsInt64(), etc.
//   - Copy-on-Write semantics via Clone()
//   - Reference counting for buffer reuse
//
// The engine and ops packages operate on RawTensor; typed host data is
// better served by the high-level Tensor[T, B] type.
type RawTensor = tensor.RawTensor

// NewRaw allocates a tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes computes the broadcast result shape of two shapes under
// NumPy-style rules. The bool reports whether any stretching is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// ReductionAxes returns the output axes that must be summed to reduce a
// gradient of the broadcast shape back to the input shape.
func ReductionAxes(in, out Shape) []int {
	return tensor.ReductionAxes(in, out)
}

// PromoteTypes returns the common dtype two operands promote to.
func PromoteTypes(a, b DataType) DataType {
	return tensor.PromoteTypes(a, b)
}

// FromAny converts user input (RawTensor, Go scalar, typed slice, or nested
// slice literal) into a RawTensor. role and op name the argument for errors.
func FromAny(value any, role, op string) (*RawTensor, error) {
	return tensor.FromAny(value, role, op)
}

// MatchDTypes casts both tensors to their promoted common dtype.
func MatchDTypes(a, b *RawTensor, be Backend) (*RawTensor, *RawTensor) {
	return tensor.MatchDTypes(a, b, be)
}

// BroadcastError reports two shapes that cannot be broadcast together.
type BroadcastError = tensor.BroadcastError

// InvalidInputError reports an operand that cannot be converted to a tensor.
type InvalidInputError = tensor.InvalidInputError

// ShapeMismatchError reports unequal shapes passed to a strict operator.
type ShapeMismatchError = tensor.ShapeMismatchError
