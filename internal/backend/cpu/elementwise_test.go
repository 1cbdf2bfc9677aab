package cpu

import (
	"math"
	"testing"

	"github.com/cinder-ml/cinder/internal/tensor"
)

func rawF64(t *testing.T, shape tensor.Shape, data []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

func rawI64(t *testing.T, shape tensor.Shape, data []int64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsInt64(), data)
	return raw
}

func float64SliceEqual(a, b []float64) bool {
	const epsilon = 1e-12
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestCPUBackend_Mul tests element-wise multiplication.
func TestCPUBackend_Mul(t *testing.T) {
	backend := New()

	t.Run("SameShape", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{4}, []float64{1, 2, 3, 4})
		b := rawF64(t, tensor.Shape{4}, []float64{2, 3, 4, 5})

		result := backend.Mul(a, b)

		if !float64SliceEqual(result.AsFloat64(), []float64{2, 6, 12, 20}) {
			t.Errorf("Mul = %v, want [2 6 12 20]", result.AsFloat64())
		}
	})

	t.Run("ScalarBroadcast", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{4}, []float64{1, 2, 3, 4})
		b := rawF64(t, tensor.Shape{}, []float64{5})

		result := backend.Mul(a, b)

		if !result.Shape().Equal(tensor.Shape{4}) {
			t.Fatalf("broadcast result shape = %v, want [4]", result.Shape())
		}
		if !float64SliceEqual(result.AsFloat64(), []float64{5, 10, 15, 20}) {
			t.Errorf("Mul scalar = %v, want [5 10 15 20]", result.AsFloat64())
		}
	})

	t.Run("ColumnRowBroadcast", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{2, 1}, []float64{2, 3})
		b := rawF64(t, tensor.Shape{3}, []float64{10, 20, 30})

		result := backend.Mul(a, b)

		if !result.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("broadcast result shape = %v, want [2 3]", result.Shape())
		}
		want := []float64{20, 40, 60, 30, 60, 90}
		if !float64SliceEqual(result.AsFloat64(), want) {
			t.Errorf("Mul broadcast = %v, want %v", result.AsFloat64(), want)
		}
	})

	t.Run("Int64", func(t *testing.T) {
		a := rawI64(t, tensor.Shape{3}, []int64{2, 3, 4})
		b := rawI64(t, tensor.Shape{3}, []int64{10, 10, 10})

		result := backend.Mul(a, b)

		if !int64SliceEqual(result.AsInt64(), []int64{20, 30, 40}) {
			t.Errorf("Mul int64 = %v, want [20 30 40]", result.AsInt64())
		}
	})
}

// TestCPUBackend_Mod tests floored modulo: the result takes the divisor's
// sign and floor(a/b)*b + mod(a,b) == a.
func TestCPUBackend_Mod(t *testing.T) {
	backend := New()

	t.Run("Basic", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{4}, []float64{1, 4, 3, 16})
		b := rawF64(t, tensor.Shape{4}, []float64{1, 2, 9, 4})

		result := backend.Mod(a, b)

		if !float64SliceEqual(result.AsFloat64(), []float64{0, 0, 3, 0}) {
			t.Errorf("Mod = %v, want [0 0 3 0]", result.AsFloat64())
		}
	})

	t.Run("SignFollowsDivisor", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{4}, []float64{-7, 7, -7, 7})
		b := rawF64(t, tensor.Shape{4}, []float64{2, -2, -2, 2})

		result := backend.Mod(a, b)

		want := []float64{1, -1, -1, 1}
		if !float64SliceEqual(result.AsFloat64(), want) {
			t.Errorf("Mod = %v, want %v", result.AsFloat64(), want)
		}
	})

	t.Run("Int64SignFollowsDivisor", func(t *testing.T) {
		a := rawI64(t, tensor.Shape{4}, []int64{-7, 7, -7, 7})
		b := rawI64(t, tensor.Shape{4}, []int64{2, -2, -2, 2})

		result := backend.Mod(a, b)

		want := []int64{1, -1, -1, 1}
		if !int64SliceEqual(result.AsInt64(), want) {
			t.Errorf("Mod int64 = %v, want %v", result.AsInt64(), want)
		}
	})
}

// TestCPUBackend_FloorDiv tests floored division.
func TestCPUBackend_FloorDiv(t *testing.T) {
	backend := New()

	t.Run("Float64", func(t *testing.T) {
		a := rawF64(t, tensor.Shape{4}, []float64{7, -7, 7, -7})
		b := rawF64(t, tensor.Shape{4}, []float64{2, 2, -2, -2})

		result := backend.FloorDiv(a, b)

		want := []float64{3, -4, -4, 3}
		if !float64SliceEqual(result.AsFloat64(), want) {
			t.Errorf("FloorDiv = %v, want %v", result.AsFloat64(), want)
		}
	})

	t.Run("Int64", func(t *testing.T) {
		a := rawI64(t, tensor.Shape{4}, []int64{7, -7, 7, -7})
		b := rawI64(t, tensor.Shape{4}, []int64{2, 2, -2, -2})

		result := backend.FloorDiv(a, b)

		want := []int64{3, -4, -4, 3}
		if !int64SliceEqual(result.AsInt64(), want) {
			t.Errorf("FloorDiv int64 = %v, want %v", result.AsInt64(), want)
		}
	})
}

// TestCPUBackend_DivisionIdentity tests floor(a/b)*b + mod(a,b) == a across
// sign combinations.
func TestCPUBackend_DivisionIdentity(t *testing.T) {
	backend := New()

	a := rawF64(t, tensor.Shape{8}, []float64{7, -7, 7, -7, 13, -13, 1, 16})
	b := rawF64(t, tensor.Shape{8}, []float64{2, 2, -2, -2, 5, -5, 1, 4})

	q := backend.FloorDiv(a, b)
	r := backend.Mod(a, b)
	reconstructed := backend.Add(backend.Mul(q, b), r)

	if !float64SliceEqual(reconstructed.AsFloat64(), a.AsFloat64()) {
		t.Errorf("floor(a/b)*b + mod(a,b) = %v, want %v", reconstructed.AsFloat64(), a.AsFloat64())
	}
}

// TestCPUBackend_Atan2 tests quadrant-aware arctangent.
func TestCPUBackend_Atan2(t *testing.T) {
	backend := New()

	a := rawF64(t, tensor.Shape{4}, []float64{1, 1, -1, 0})
	b := rawF64(t, tensor.Shape{4}, []float64{1, -1, -1, 1})

	result := backend.Atan2(a, b)

	want := []float64{
		math.Pi / 4,
		3 * math.Pi / 4,
		-3 * math.Pi / 4,
		0,
	}
	if !float64SliceEqual(result.AsFloat64(), want) {
		t.Errorf("Atan2 = %v, want %v", result.AsFloat64(), want)
	}
}

// TestCPUBackend_MinimumMaximum tests element-wise extrema.
func TestCPUBackend_MinimumMaximum(t *testing.T) {
	backend := New()

	a := rawF64(t, tensor.Shape{4}, []float64{1, 5, -2, 3})
	b := rawF64(t, tensor.Shape{4}, []float64{2, 4, -3, 3})

	lo := backend.Minimum(a, b)
	hi := backend.Maximum(a, b)

	if !float64SliceEqual(lo.AsFloat64(), []float64{1, 4, -3, 3}) {
		t.Errorf("Minimum = %v, want [1 4 -3 3]", lo.AsFloat64())
	}
	if !float64SliceEqual(hi.AsFloat64(), []float64{2, 5, -2, 3}) {
		t.Errorf("Maximum = %v, want [2 5 -2 3]", hi.AsFloat64())
	}
}

// TestCPUBackend_SquaredDifference tests (a-b)^2.
func TestCPUBackend_SquaredDifference(t *testing.T) {
	backend := New()

	a := rawF64(t, tensor.Shape{3}, []float64{1, 5, -2})
	b := rawF64(t, tensor.Shape{3}, []float64{4, 2, -2})

	result := backend.SquaredDifference(a, b)

	if !float64SliceEqual(result.AsFloat64(), []float64{9, 9, 0}) {
		t.Errorf("SquaredDifference = %v, want [9 9 0]", result.AsFloat64())
	}
}

// TestCPUBackend_Pow tests exponentiation.
func TestCPUBackend_Pow(t *testing.T) {
	backend := New()

	a := rawF64(t, tensor.Shape{3}, []float64{2, 3, 9})
	b := rawF64(t, tensor.Shape{3}, []float64{3, 2, 0.5})

	result := backend.Pow(a, b)

	if !float64SliceEqual(result.AsFloat64(), []float64{8, 9, 3}) {
		t.Errorf("Pow = %v, want [8 9 3]", result.AsFloat64())
	}
}

// TestCPUBackend_IntKernelPanics tests that float-only operators reject
// integer operands loudly.
func TestCPUBackend_IntKernelPanics(t *testing.T) {
	backend := New()

	a := rawI64(t, tensor.Shape{2}, []int64{1, 2})
	b := rawI64(t, tensor.Shape{2}, []int64{3, 4})

	defer func() {
		if recover() == nil {
			t.Error("Div on int64 should panic")
		}
	}()
	backend.Div(a, b)
}
