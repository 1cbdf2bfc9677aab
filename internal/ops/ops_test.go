package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinder-ml/cinder/internal/backend/cpu"
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/internal/ops"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func newEngine() *engine.Engine {
	return engine.New(cpu.New())
}

func fromLiteral(t *testing.T, v any) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromAny(v, "a", "test")
	require.NoError(t, err)
	return raw
}

func TestMul_Forward(t *testing.T) {
	eng := newEngine()

	out, err := ops.Mul(eng, []float64{1, 2, 3, 4}, []float64{2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6, 12, 20}, out.AsFloat64())

	scaled, err := ops.Mul(eng, []float64{1, 2, 3, 4}, 5.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10, 15, 20}, scaled.AsFloat64())
}

func TestMod_Forward(t *testing.T) {
	eng := newEngine()

	out, err := ops.Mod(eng, []float64{1, 4, 3, 16}, []float64{1, 2, 9, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 3, 0}, out.AsFloat64())

	// Floored semantics: the result takes the divisor's sign.
	signs, err := ops.Mod(eng, []float64{-7, 7}, []float64{2, -2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1}, signs.AsFloat64())
}

func TestFloorDiv_Forward(t *testing.T) {
	eng := newEngine()

	out, err := ops.FloorDiv(eng, []float64{7, -7, 7, -7}, []float64{2, 2, -2, -2})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -4, -4, 3}, out.AsFloat64())
}

func TestAtan2_Forward(t *testing.T) {
	eng := newEngine()

	out, err := ops.Atan2(eng, []float64{1, -1}, []float64{1, -1})
	require.NoError(t, err)
	assert.InDelta(t, 0.7853981633974483, out.AsFloat64()[0], 1e-15)
	assert.InDelta(t, -2.356194490192345, out.AsFloat64()[1], 1e-15)
}

func TestBinaryOps_DTypePromotion(t *testing.T) {
	eng := newEngine()

	// int64 literal * float64 scalar computes in float64.
	out, err := ops.Mul(eng, []int{2, 3}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.DType())
	assert.Equal(t, []float64{3, 4.5}, out.AsFloat64())

	// int64 on both sides stays integral.
	ints, err := ops.Mod(eng, []int{7, -7}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, ints.DType())
	assert.Equal(t, []int64{1, 1}, ints.AsInt64())
}

func TestBinaryOps_BroadcastOutputShape(t *testing.T) {
	eng := newEngine()

	out, err := ops.Atan2(eng, [][]float64{{1}, {2}}, []float64{3, 4, 5})
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
}

func TestBinaryOps_BroadcastError(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	for name, op := range map[string]ops.BinaryOp{
		"mul":               ops.Mul,
		"floorDiv":          ops.FloorDiv,
		"mod":               ops.Mod,
		"atan2":             ops.Atan2,
		"squaredDifference": ops.SquaredDifference,
	} {
		_, err := op(eng, []float64{1, 2, 3}, []float64{1, 2})
		require.Error(t, err, name)

		var berr *tensor.BroadcastError
		require.ErrorAs(t, err, &berr, name)
	}

	assert.Equal(t, 0, eng.Tape().NumOps(), "failed calls must not register nodes")
}

func TestBinaryOps_InvalidInput(t *testing.T) {
	eng := newEngine()

	_, err := ops.Mul(eng, "nonsense", []float64{1})
	require.Error(t, err)

	var ierr *tensor.InvalidInputError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "a", ierr.Role)
	assert.Equal(t, "mul", ierr.Op)
}

// TestGradientShapes verifies the gradient-shape invariant: for every
// operator and broadcast pair, each input's gradient has exactly the input's
// shape.
func TestGradientShapes(t *testing.T) {
	operators := map[string]ops.BinaryOp{
		"add":               ops.Add,
		"sub":               ops.Sub,
		"mul":               ops.Mul,
		"div":               ops.Div,
		"floorDiv":          ops.FloorDiv,
		"mod":               ops.Mod,
		"pow":               ops.Pow,
		"minimum":           ops.Minimum,
		"maximum":           ops.Maximum,
		"squaredDifference": ops.SquaredDifference,
		"atan2":             ops.Atan2,
	}

	shapePairs := []struct {
		a, b tensor.Shape
	}{
		{tensor.Shape{2, 3}, tensor.Shape{2, 3}},
		{tensor.Shape{2, 3}, tensor.Shape{3}},
		{tensor.Shape{4, 1}, tensor.Shape{4, 5}},
		{tensor.Shape{}, tensor.Shape{2, 2}},
		{tensor.Shape{2, 1, 3}, tensor.Shape{4, 1}},
	}

	for name, op := range operators {
		for _, pair := range shapePairs {
			t.Run(name, func(t *testing.T) {
				eng := newEngine()
				eng.Tape().StartRecording()

				a := fill(t, pair.a, 2.5)
				b := fill(t, pair.b, 1.5)
				eng.Watch(a)
				eng.Watch(b)

				out, err := op(eng, a, b)
				require.NoError(t, err)

				grads := eng.Backward(out)
				require.Contains(t, grads, a)
				require.Contains(t, grads, b)
				assert.True(t, grads[a].Shape().Equal(a.Shape()),
					"grad_a shape %v, want %v", grads[a].Shape(), a.Shape())
				assert.True(t, grads[b].Shape().Equal(b.Shape()),
					"grad_b shape %v, want %v", grads[b].Shape(), b.Shape())
			})
		}
	}
}

// fill creates a float64 tensor of the given shape with every element set
// to a constant offset by its index, keeping values away from operator
// singularities.
func fill(t *testing.T, shape tensor.Shape, base float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	data := raw.AsFloat64()
	for i := range data {
		data[i] = base + float64(i)*0.25
	}
	return raw
}

func TestBackward_OnlyWatchedInputsGetGradients(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{1, 2, 3})
	b := fromLiteral(t, []float64{4, 5, 6})
	eng.Watch(a)

	out, err := ops.Mul(eng, a, b)
	require.NoError(t, err)

	grads := eng.Backward(out)
	assert.Contains(t, grads, a)
	assert.NotContains(t, grads, b)
	assert.Equal(t, []float64{4, 5, 6}, grads[a].AsFloat64())
}

func TestMinimum_TiesRouteToA(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{2, 1, 5})
	b := fromLiteral(t, []float64{2, 3, 4})
	eng.Watch(a)
	eng.Watch(b)

	out, err := ops.Minimum(eng, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 4}, out.AsFloat64())

	grads := eng.Backward(out)
	assert.Equal(t, []float64{1, 1, 0}, grads[a].AsFloat64())
	assert.Equal(t, []float64{0, 0, 1}, grads[b].AsFloat64())
}

func TestMaximum_TiesRouteToA(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{2, 1, 5})
	b := fromLiteral(t, []float64{2, 3, 4})
	eng.Watch(a)
	eng.Watch(b)

	out, err := ops.Maximum(eng, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 5}, out.AsFloat64())

	grads := eng.Backward(out)
	assert.Equal(t, []float64{1, 0, 1}, grads[a].AsFloat64())
	assert.Equal(t, []float64{0, 1, 0}, grads[b].AsFloat64())
}

func TestPow_GradientAtNonPositiveBase(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{-2, 0, 2})
	b := fromLiteral(t, []float64{2, 2, 2})
	eng.Watch(b)

	out, err := ops.Pow(eng, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0, 4}, out.AsFloat64())

	// d(a^b)/db = a^b * ln(a) is undefined for a <= 0; those lanes are 0,
	// not NaN.
	grads := eng.Backward(out)
	gb := grads[b].AsFloat64()
	assert.Equal(t, 0.0, gb[0])
	assert.Equal(t, 0.0, gb[1])
	assert.InDelta(t, 4*0.6931471805599453, gb[2], 1e-12)
}

func TestFloorDiv_DivGradientConvention(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{7, 9})
	b := fromLiteral(t, []float64{2, 4})
	eng.Watch(a)
	eng.Watch(b)

	out, err := ops.FloorDiv(eng, a, b)
	require.NoError(t, err)

	// The forward is piecewise constant, but the gradient follows true
	// division: grad_a = 1/b, grad_b = -a/b^2.
	grads := eng.Backward(out)
	assert.InDelta(t, 0.5, grads[a].AsFloat64()[0], 1e-12)
	assert.InDelta(t, 0.25, grads[a].AsFloat64()[1], 1e-12)
	assert.InDelta(t, -7.0/4.0, grads[b].AsFloat64()[0], 1e-12)
	assert.InDelta(t, -9.0/16.0, grads[b].AsFloat64()[1], 1e-12)
}

func TestMod_GradientConvention(t *testing.T) {
	eng := newEngine()
	eng.Tape().StartRecording()

	a := fromLiteral(t, []float64{7, -7})
	b := fromLiteral(t, []float64{2, 2})
	eng.Watch(a)
	eng.Watch(b)

	out, err := ops.Mod(eng, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, out.AsFloat64())

	// grad_a = dy, grad_b = -floor(a/b) * dy.
	grads := eng.Backward(out)
	assert.Equal(t, []float64{1, 1}, grads[a].AsFloat64())
	assert.Equal(t, []float64{-3, 4}, grads[b].AsFloat64())
}

func TestStrictVariants(t *testing.T) {
	t.Run("ShapeMismatch", func(t *testing.T) {
		eng := newEngine()
		eng.Tape().StartRecording()

		_, err := ops.MulStrict(eng, []float64{1, 2}, []float64{1, 2, 3})
		require.Error(t, err)

		var serr *tensor.ShapeMismatchError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "mulStrict", serr.Op)
		assert.True(t, serr.ShapeA.Equal(tensor.Shape{2}))
		assert.True(t, serr.ShapeB.Equal(tensor.Shape{3}))
		assert.Equal(t, 0, eng.Tape().NumOps(), "rejected call must not record")
	})

	t.Run("MatchingShapesDelegate", func(t *testing.T) {
		eng := newEngine()

		strict, err := ops.MulStrict(eng, []float64{1, 2}, []float64{3, 4})
		require.NoError(t, err)
		loose, err := ops.Mul(eng, []float64{1, 2}, []float64{3, 4})
		require.NoError(t, err)
		assert.Equal(t, loose.AsFloat64(), strict.AsFloat64())
	})

	t.Run("ReportsDeprecationOncePerCall", func(t *testing.T) {
		reporter := &countingReporter{}
		eng := engine.New(cpu.New(), engine.WithDeprecationReporter(reporter))

		_, err := ops.AddStrict(eng, []float64{1}, []float64{2})
		require.NoError(t, err)
		_, err = ops.AddStrict(eng, []float64{1}, []float64{2})
		require.NoError(t, err)

		assert.Equal(t, 2, reporter.count)
		assert.Equal(t, "addStrict", reporter.lastOp)
		assert.Equal(t, "add", reporter.lastReplacement)
	})

	t.Run("MismatchDoesNotReport", func(t *testing.T) {
		reporter := &countingReporter{}
		eng := engine.New(cpu.New(), engine.WithDeprecationReporter(reporter))

		_, err := ops.ModStrict(eng, []float64{1, 2}, []float64{1, 2, 3})
		require.Error(t, err)
		assert.Equal(t, 0, reporter.count)
	})
}

type countingReporter struct {
	count           int
	lastOp          string
	lastReplacement string
}

func (r *countingReporter) Deprecated(op, replacement string) {
	r.count++
	r.lastOp = op
	r.lastReplacement = replacement
}
