package tensor_test

import (
	"testing"

	"github.com/cinder-ml/cinder/internal/backend/cpu"
	"github.com/cinder-ml/cinder/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if len(raw.AsFloat32()) != 6 {
		t.Errorf("AsFloat32() length = %d, want 6", len(raw.AsFloat32()))
	}
}

// TestCreationHelpers verifies the typed creation functions through the
// facade.
func TestCreationHelpers(t *testing.T) {
	backend := cpu.New()

	x := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	for i, v := range x.Raw().AsFloat32() {
		if v != 1 {
			t.Errorf("Ones[%d] = %v, want 1", i, v)
		}
	}

	y := tensor.Full[float64](tensor.Shape{3}, 2.5, backend)
	for i, v := range y.Raw().AsFloat64() {
		if v != 2.5 {
			t.Errorf("Full[%d] = %v, want 2.5", i, v)
		}
	}

	s := tensor.Scalar[int64](7, backend)
	if len(s.Shape()) != 0 || s.Raw().AsInt64()[0] != 7 {
		t.Errorf("Scalar = shape %v value %d, want rank 0 value 7", s.Shape(), s.Raw().AsInt64()[0])
	}
}

// TestBroadcastShapes exercises the facade re-export.
func TestBroadcastShapes(t *testing.T) {
	shape, spread, err := tensor.BroadcastShapes(tensor.Shape{2, 1}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !shape.Equal(tensor.Shape{2, 3}) || !spread {
		t.Errorf("BroadcastShapes = %v, %v, want [2 3], true", shape, spread)
	}
}
