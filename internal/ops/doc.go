// Package ops implements the broadcast binary operators of the Cinder
// engine and their gradient rules.
//
// Every operator follows the same pipeline:
//  1. normalize both operands into typed tensors (literals accepted)
//  2. promote the operands to a common dtype
//  3. validate broadcast compatibility of the shapes
//  4. dispatch the forward kernel through engine.RunKernel, saving the
//     tensors the gradient rule needs
//  5. attach a gradient function returning one lazy thunk per input,
//     each reduced back to that input's pre-broadcast shape
//
// The reduction in step 5 is the correctness contract of the package: for
// every operator the returned gradient for input a has a's shape, and the
// gradient for input b has b's shape, whatever broadcasting the forward
// pass did.
//
// Operators:
//   - Add, Sub, Mul, Div: elementary arithmetic
//   - FloorDiv, Mod: floored division and the matching modulo
//     (floor(a/b)*b + mod(a,b) == a)
//   - Pow: exponentiation (d/db defined for positive bases)
//   - Minimum, Maximum: element-wise extrema
//   - SquaredDifference: (a-b)^2
//   - Atan2: two-argument arctangent
//
// The *Strict variants are deprecated legacy entry points that reject
// broadcasting and delegate to the operators above.
package ops
