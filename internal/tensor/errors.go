package tensor

import "fmt"

// BroadcastError reports two shapes that cannot be aligned under NumPy
// broadcasting rules. Axis is indexed in the would-be output shape.
type BroadcastError struct {
	ShapeA Shape
	ShapeB Shape
	Axis   int
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("shapes %v and %v are not broadcast-compatible (conflict at axis %d)",
		e.ShapeA, e.ShapeB, e.Axis)
}

// InvalidInputError reports a raw literal that could not be converted into a
// rectangular numeric tensor. Role names the operand ("a", "b") and Op the
// operator that rejected it.
type InvalidInputError struct {
	Role   string
	Op     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q to %s: %s", e.Role, e.Op, e.Reason)
}

// ShapeMismatchError reports a strict-variant operator invoked with operands
// of different shapes.
type ShapeMismatchError struct {
	Op     string
	ShapeA Shape
	ShapeB Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: operand shapes must match exactly, got %v and %v",
		e.Op, e.ShapeA, e.ShapeB)
}
