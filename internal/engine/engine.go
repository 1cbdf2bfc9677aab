// Package engine implements reverse-mode automatic differentiation as an
// explicit execution context over a tensor.Backend.
//
// An Engine bundles a backend with a gradient Tape. Operators run through
// Engine.RunKernel, which executes the forward kernel eagerly, lets the
// operator save exactly the tensors its gradient rule needs, and records a
// node whose backward behavior is a GradFunc. Nothing gradient-related is
// computed until Backward walks the tape.
//
// The engine is call-site context, never process-global state: every
// operator takes the Engine it runs on.
//
// Usage:
//
//	eng := engine.New(cpu.New())
//	eng.Tape().StartRecording()
//	y, _ := ops.Mul(eng, a, b)
//	grads := eng.Backward(y)
package engine

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
	"k8s.io/klog/v2"
)

// Thunk is a deferred gradient computation. A thunk for an input that ends
// up not needing a gradient is never invoked.
type Thunk func() *tensor.RawTensor

// Inputs names the operands of a forward invocation. The names are the keys
// gradient thunks are returned under.
type Inputs map[string]*tensor.RawTensor

// ForwardFunc runs the numeric kernel. It must call save with exactly the
// tensors the gradient rule will need, then return the result tensor.
type ForwardFunc func(b tensor.Backend, save func(...*tensor.RawTensor)) *tensor.RawTensor

// GradFunc maps an upstream gradient and the saved tensors to one lazy
// gradient per input name.
type GradFunc func(dy *tensor.RawTensor, saved []*tensor.RawTensor) map[string]Thunk

// DeprecationReporter receives one notice per call into a deprecated entry
// point. Fire-and-forget.
type DeprecationReporter interface {
	Deprecated(op, replacement string)
}

// klogReporter is the default DeprecationReporter.
type klogReporter struct{}

func (klogReporter) Deprecated(op, replacement string) {
	klog.Warningf("%s is deprecated, use %s instead", op, replacement)
}

// Engine executes differentiable operators against a backend and records
// them on a tape.
type Engine struct {
	backend      tensor.Backend
	tape         *Tape
	deprecations DeprecationReporter
}

// Option configures an Engine.
type Option func(*Engine)

// WithDeprecationReporter overrides the default klog-backed reporter.
func WithDeprecationReporter(r DeprecationReporter) Option {
	return func(e *Engine) {
		e.deprecations = r
	}
}

// New creates an Engine over the given backend. Recording starts disabled;
// call Tape().StartRecording() before operations whose gradients are needed.
func New(backend tensor.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend:      backend,
		tape:         NewTape(),
		deprecations: klogReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the wrapped backend.
func (e *Engine) Backend() tensor.Backend {
	return e.backend
}

// Tape returns the gradient tape for manual control.
func (e *Engine) Tape() *Tape {
	return e.tape
}

// Watch marks a tensor as requiring a gradient. During Backward, thunks are
// only evaluated for tensors that are watched or feed a recorded node.
// If nothing is watched, every input is treated as watched.
func (e *Engine) Watch(t *tensor.RawTensor) {
	e.tape.watch(t)
}

// ReportDeprecation forwards one deprecation notice to the configured
// reporter.
func (e *Engine) ReportDeprecation(op, replacement string) {
	e.deprecations.Deprecated(op, replacement)
}

// RunKernel executes forward eagerly and, if the tape is recording, registers
// a node keyed by label whose backward behavior is grad applied to the saved
// tensors.
//
// A node is recorded only after forward returns: a kernel failure leaves the
// tape untouched and retains nothing. Saved tensors and inputs are
// reference-pinned for the node's lifetime so a later in-place optimization
// cannot clobber values the backward pass still needs.
func (e *Engine) RunKernel(label string, inputs Inputs, forward ForwardFunc, grad GradFunc) *tensor.RawTensor {
	var saved []*tensor.RawTensor
	save := func(ts ...*tensor.RawTensor) {
		saved = append(saved, ts...)
	}

	// Pin operands for the duration of the kernel so the backend cannot
	// write results into them in place.
	for _, in := range inputs {
		defer in.Retain()()
	}

	result := forward(e.backend, save)

	if e.tape.IsRecording() {
		e.tape.record(&node{
			label:  label,
			inputs: inputs,
			saved:  saved,
			output: result,
			grad:   grad,
		})
	}

	return result
}

// Backward seeds a ones gradient shaped like output and walks the tape in
// reverse, returning accumulated gradients per tensor.
func (e *Engine) Backward(output *tensor.RawTensor) map[*tensor.RawTensor]*tensor.RawTensor {
	seed, err := tensor.NewRaw(output.Shape(), output.DType(), e.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}

	switch output.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1.0
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1.0
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", output.DType()))
	}

	return e.tape.Backward(output, seed, e.backend)
}
