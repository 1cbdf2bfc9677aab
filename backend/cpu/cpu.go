// Package cpu provides the pure Go CPU backend.
package cpu

import (
	internalcpu "github.com/cinder-ml/cinder/internal/backend/cpu"
	"github.com/cinder-ml/cinder/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	eng := engine.New(backend)
func New() *Backend {
	return internalcpu.New()
}
