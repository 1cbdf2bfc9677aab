// Package tensor provides the core tensor types for the Cinder autodiff engine.
package tensor

// DType is a constraint for element types usable with the generic Tensor view.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
//
// Float16 is a storage-only dtype: kernels never compute in it. The input
// normalizer promotes Float16 operands to Float32 before dispatch, and Cast
// converts to/from the IEEE 754 half-precision encoding.
const (
	Float32 DataType = iota
	Float64
	Float16
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Float16:
		return 2
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Float16:
		return "float16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// promotionRank orders dtypes for PromoteTypes. A higher rank absorbs a
// lower one.
func promotionRank(dt DataType) int {
	switch dt {
	case Bool:
		return 0
	case Uint8:
		return 1
	case Int32:
		return 2
	case Int64:
		return 3
	case Float16:
		return 4
	case Float32:
		return 5
	case Float64:
		return 6
	default:
		panic("unknown data type")
	}
}

// PromoteTypes returns the common dtype two operands are promoted to before
// a binary kernel runs. The higher-ranked dtype wins, with one exception:
// Int64 paired with Float16 promotes to Float32, since half precision cannot
// represent int64 magnitudes at all.
func PromoteTypes(a, b DataType) DataType {
	if a == b {
		return a
	}
	lo, hi := a, b
	if promotionRank(lo) > promotionRank(hi) {
		lo, hi = hi, lo
	}
	if hi == Float16 && (lo == Int64 || lo == Int32) {
		return Float32
	}
	return hi
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
