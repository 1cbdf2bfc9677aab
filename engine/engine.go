// Package engine provides the execution engine that runs kernels and records
// them on a gradient tape for reverse-mode automatic differentiation.
//
// Example:
//
//	import (
//	    "github.com/cinder-ml/cinder/backend/cpu"
//	    "github.com/cinder-ml/cinder/engine"
//	    "github.com/cinder-ml/cinder/ops"
//	)
//
//	func main() {
//	    eng := engine.New(cpu.New())
//	    eng.Tape().StartRecording()
//
//	    x, _ := tensor.FromAny([]float32{1, 2, 3}, "a", "mul")
//	    eng.Watch(x)
//	    y, _ := ops.Mul(eng, x, 2.0)
//
//	    grads := eng.Backward(y)
//	    _ = grads[x]
//	}
package engine

import (
	"github.com/cinder-ml/cinder/internal/engine"
	"github.com/cinder-ml/cinder/tensor"
)

// Engine executes kernels against a backend and records them on a tape.
type Engine = engine.Engine

// Option configures an Engine.
type Option = engine.Option

// New creates an engine over the given backend.
func New(backend tensor.Backend, opts ...Option) *Engine {
	return engine.New(backend, opts...)
}

// WithDeprecationReporter overrides how deprecated operator use is reported.
func WithDeprecationReporter(r DeprecationReporter) Option {
	return engine.WithDeprecationReporter(r)
}

// DeprecationReporter receives notices when deprecated operators run.
type DeprecationReporter = engine.DeprecationReporter

// Tape records executed operations for the backward pass.
type Tape = engine.Tape

// NewTape creates an empty, non-recording tape.
func NewTape() *Tape {
	return engine.NewTape()
}

// Thunk lazily computes the gradient for one input of a recorded operation.
type Thunk = engine.Thunk

// Inputs names the operands of a recorded operation.
type Inputs = engine.Inputs

// ForwardFunc computes an operation's output and saves tensors for backward.
type ForwardFunc = engine.ForwardFunc

// GradFunc builds the per-input gradient thunks for a recorded operation.
type GradFunc = engine.GradFunc
