package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
//  1. Compare shapes element-wise from right to left
//  2. Dimensions are compatible if they are equal, or one of them is 1
//  3. Missing leading dimensions are treated as 1
//
// Returns the broadcast shape, a flag indicating whether broadcasting is
// needed, and a *BroadcastError naming both shapes and the first conflicting
// axis (indexed in the output shape) when the shapes are incompatible.
//
// Examples:
//
//	(3, 1) x (3, 5) → (3, 5), true, nil
//	(3, 5) x (3, 5) → (3, 5), false, nil
//	(3, 4) x (3, 5) → nil, false, *BroadcastError
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := false

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, &BroadcastError{
				ShapeA: a.Clone(),
				ShapeB: b.Clone(),
				Axis:   maxLen - 1 - i,
			}
		}
	}

	return result, needsBroadcast, nil
}

// ReductionAxes returns the output-shape axes a gradient must be summed over
// to reduce an out-shaped tensor down to in. Right-aligning in under out, an
// axis qualifies when the padded input size is 1 while the output size is
// greater than 1, or when the axis exists only in the output. The caller
// still has to reshape after summing: summation with keepDim=false removes
// axes outright while a broadcast axis may need to survive as size 1.
//
// Axes are returned in ascending order.
func ReductionAxes(in, out Shape) []int {
	var axes []int
	pad := len(out) - len(in)
	for i := range out {
		inIdx := i - pad
		if inIdx < 0 {
			axes = append(axes, i)
			continue
		}
		if in[inIdx] == 1 && out[i] > 1 {
			axes = append(axes, i)
		}
	}
	return axes
}
