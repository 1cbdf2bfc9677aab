package tensor

import "github.com/cinder-ml/cinder/internal/tensor"

// Backend defines the interface that all compute backends implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: pure Go kernels
//   - backend/webgpu: GPU compute via WebGPU (Windows)
//
// Binary operators broadcast their operands; kernels panic on programmer
// errors such as dtype mismatches, which callers rule out up front.
type Backend = tensor.Backend
