package tensor

// Backend is the capability set a compute device must provide: one method per
// broadcast binary operator, plus the unary, comparison, reduction and shape
// kernels the gradient rules are decomposed into.
//
// Binary kernels accept operands of broadcast-compatible shapes and return a
// result of the broadcast shape. Kernels panic on programmer error
// (unsupported dtype, incompatible shapes that slipped past validation);
// callers do not retry or translate those failures.
//
// Implementations:
//   - backend/cpu: pure Go kernels
//   - backend/webgpu: WGSL compute kernels via go-webgpu
//
// The engine layer wraps a Backend and records gradient nodes; a Backend
// itself is oblivious to differentiation.
type Backend interface {
	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	FloorDiv(a, b *RawTensor) *RawTensor          // floor(a / b)
	Mod(a, b *RawTensor) *RawTensor               // a - floor(a/b)*b, sign follows b
	Pow(a, b *RawTensor) *RawTensor               // a^b
	Minimum(a, b *RawTensor) *RawTensor           // element-wise min
	Maximum(a, b *RawTensor) *RawTensor           // element-wise max
	SquaredDifference(a, b *RawTensor) *RawTensor // (a-b)^2
	Atan2(a, b *RawTensor) *RawTensor             // atan2(a, b)

	// Element-wise unary operations.
	Neg(x *RawTensor) *RawTensor
	Floor(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor

	// Comparison operations (broadcasting, Bool result).
	Greater(a, b *RawTensor) *RawTensor
	GreaterEqual(a, b *RawTensor) *RawTensor
	Lower(a, b *RawTensor) *RawTensor
	LowerEqual(a, b *RawTensor) *RawTensor

	// Where selects x where condition is true, else y. All three operands
	// share a shape; condition is Bool.
	Where(condition, x, y *RawTensor) *RawTensor

	// Reduction.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Type conversion.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
