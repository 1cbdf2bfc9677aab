package tensor

import (
	"reflect"

	"github.com/pkg/errors"
)

// FromAny coerces an arbitrary operand into a RawTensor.
//
// Accepted forms:
//   - *RawTensor (returned as-is)
//   - Go scalars (float32, float64, int, int32, int64, uint8, bool)
//   - flat typed slices ([]float32, []float64, []int, []int32, []int64,
//     []uint8, []bool)
//   - arbitrarily nested slices, including []any trees produced by JSON
//     decoding, as long as they are rectangular
//
// The element dtype is inferred from the leaf Go types; mixed numeric leaves
// are promoted via PromoteTypes. Ragged or non-numeric input fails with
// *InvalidInputError naming the operand role and the operator.
func FromAny(value any, role, op string) (*RawTensor, error) {
	if t, ok := value.(*RawTensor); ok {
		return t, nil
	}
	if value == nil {
		return nil, &InvalidInputError{Role: role, Op: op, Reason: "value is nil"}
	}

	shape, dtype, err := inspectLiteral(reflect.ValueOf(value))
	if err != nil {
		return nil, &InvalidInputError{Role: role, Op: op, Reason: err.Error()}
	}

	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, &InvalidInputError{Role: role, Op: op, Reason: err.Error()}
	}

	idx := 0
	if err := fillLiteral(raw, reflect.ValueOf(value), &idx); err != nil {
		return nil, &InvalidInputError{Role: role, Op: op, Reason: err.Error()}
	}
	return raw, nil
}

// MatchDTypes promotes two operands to their common dtype before a binary
// kernel runs, using the backend's Cast. Operands already sharing a
// computable dtype pass through untouched, so applying MatchDTypes twice is
// the same as applying it once. Float16 operands are computed in Float32
// (Float16 is storage-only).
func MatchDTypes(a, b *RawTensor, be Backend) (*RawTensor, *RawTensor) {
	common := PromoteTypes(a.DType(), b.DType())
	if common == Float16 {
		common = Float32
	}
	if a.DType() != common {
		a = be.Cast(a, common)
	}
	if b.DType() != common {
		b = be.Cast(b, common)
	}
	return a, b
}

// inspectLiteral walks a nested literal and returns its shape and inferred
// dtype. Errors on ragged nesting and non-numeric leaves.
func inspectLiteral(rv reflect.Value) (Shape, DataType, error) {
	rv = unwrapInterface(rv)

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		dt, err := leafDataType(rv)
		if err != nil {
			return nil, 0, err
		}
		return Shape{}, dt, nil
	}

	if rv.Len() == 0 {
		return nil, 0, errors.New("empty dimension in nested literal")
	}

	firstShape, dtype, err := inspectLiteral(rv.Index(0))
	if err != nil {
		return nil, 0, err
	}
	for i := 1; i < rv.Len(); i++ {
		s, dt, err := inspectLiteral(rv.Index(i))
		if err != nil {
			return nil, 0, err
		}
		if !s.Equal(firstShape) {
			return nil, 0, errors.Errorf("ragged literal: element 0 has shape %v, element %d has shape %v", firstShape, i, s)
		}
		dtype = PromoteTypes(dtype, dt)
	}

	return append(Shape{rv.Len()}, firstShape...), dtype, nil
}

// fillLiteral flattens a nested literal into raw in row-major order.
// The shape and dtype were already validated by inspectLiteral.
func fillLiteral(raw *RawTensor, rv reflect.Value, idx *int) error {
	rv = unwrapInterface(rv)

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if err := fillLiteral(raw, rv.Index(i), idx); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setLeaf(raw, *idx, rv); err != nil {
		return err
	}
	*idx++
	return nil
}

func unwrapInterface(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

// leafDataType maps a scalar leaf's Go kind to a tensor dtype.
func leafDataType(rv reflect.Value) (DataType, error) {
	switch rv.Kind() {
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	case reflect.Int, reflect.Int64:
		return Int64, nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int32, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Bool:
		return Bool, nil
	default:
		return 0, errors.Errorf("unsupported leaf type %s in literal", rv.Kind())
	}
}

func setLeaf(raw *RawTensor, idx int, rv reflect.Value) error {
	switch raw.DType() {
	case Float32:
		raw.AsFloat32()[idx] = float32(numericValue(rv))
	case Float64:
		raw.AsFloat64()[idx] = numericValue(rv)
	case Int32:
		raw.AsInt32()[idx] = int32(numericValue(rv))
	case Int64:
		raw.AsInt64()[idx] = int64(numericValue(rv))
	case Uint8:
		raw.AsUint8()[idx] = uint8(numericValue(rv))
	case Bool:
		if rv.Kind() != reflect.Bool {
			raw.AsBool()[idx] = numericValue(rv) != 0
		} else {
			raw.AsBool()[idx] = rv.Bool()
		}
	default:
		return errors.Errorf("cannot fill literal of dtype %s", raw.DType())
	}
	return nil
}

func numericValue(rv reflect.Value) float64 {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	default:
		panic("numericValue: non-numeric leaf escaped validation")
	}
}
