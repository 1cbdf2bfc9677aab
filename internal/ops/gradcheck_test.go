package ops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinder-ml/cinder/internal/backend/cpu"
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/ops"
	"github.com/cinder-ml/cinder/internal/tensor"
)

const (
	gradCheckEps = 1e-6
	gradCheckTol = 1e-4
)

func rawVector(t *testing.T, data []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(data)}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), data)
	return raw
}

// sumForward evaluates op on fresh operand tensors and returns the sum of
// the output elements. The backward pass seeds with ones, so analytic
// gradients correspond to d(sum)/d(input).
func sumForward(t *testing.T, op ops.BinaryOp, aData, bData []float64) float64 {
	t.Helper()
	eng := engine.New(cpu.New())
	out, err := op(eng, rawVector(t, aData), rawVector(t, bData))
	require.NoError(t, err)

	total := 0.0
	for _, v := range out.AsFloat64() {
		total += v
	}
	return total
}

// checkGradients compares tape gradients against central finite differences
// for both operands.
func checkGradients(t *testing.T, op ops.BinaryOp, aData, bData []float64) {
	t.Helper()

	eng := engine.New(cpu.New())
	eng.Tape().StartRecording()

	a := rawVector(t, aData)
	b := rawVector(t, bData)
	eng.Watch(a)
	eng.Watch(b)

	out, err := op(eng, a, b)
	require.NoError(t, err)

	grads := eng.Backward(out)
	require.Contains(t, grads, a)
	require.Contains(t, grads, b)

	gradA := grads[a].AsFloat64()
	gradB := grads[b].AsFloat64()

	for i := range aData {
		plus := append([]float64(nil), aData...)
		minus := append([]float64(nil), aData...)
		plus[i] += gradCheckEps
		minus[i] -= gradCheckEps
		numeric := (sumForward(t, op, plus, bData) - sumForward(t, op, minus, bData)) / (2 * gradCheckEps)
		require.InDelta(t, numeric, gradA[i], gradCheckTol, "grad_a[%d]", i)
	}

	for i := range bData {
		plus := append([]float64(nil), bData...)
		minus := append([]float64(nil), bData...)
		plus[i] += gradCheckEps
		minus[i] -= gradCheckEps
		numeric := (sumForward(t, op, aData, plus) - sumForward(t, op, aData, minus)) / (2 * gradCheckEps)
		require.InDelta(t, numeric, gradB[i], gradCheckTol, "grad_b[%d]", i)
	}
}

// Operand values stay away from singularities and tie points: mod and
// floorDiv discontinuities, pow's non-positive bases, atan2's origin.

func TestGradCheck_Add(t *testing.T) {
	checkGradients(t, ops.Add, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Sub(t *testing.T) {
	checkGradients(t, ops.Sub, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Mul(t *testing.T) {
	checkGradients(t, ops.Mul, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Div(t *testing.T) {
	checkGradients(t, ops.Div, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Pow(t *testing.T) {
	checkGradients(t, ops.Pow, []float64{1.3, 2.1, 0.4}, []float64{0.7, 1.9, -1.2})
}

func TestGradCheck_Atan2(t *testing.T) {
	checkGradients(t, ops.Atan2, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_SquaredDifference(t *testing.T) {
	checkGradients(t, ops.SquaredDifference, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Minimum(t *testing.T) {
	checkGradients(t, ops.Minimum, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Maximum(t *testing.T) {
	checkGradients(t, ops.Maximum, []float64{1.3, -2.1, 0.4}, []float64{0.7, 1.9, -3.2})
}

func TestGradCheck_Mod(t *testing.T) {
	// Points chosen so a/b is far from an integer; mod is locally linear
	// there and the finite difference is valid.
	checkGradients(t, ops.Mod, []float64{7.3, -6.6}, []float64{2.1, 1.7})
}
