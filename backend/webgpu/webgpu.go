//go:build windows

// Package webgpu provides the WebGPU backend for GPU-accelerated element-wise
// operations. Operators without a GPU kernel fall back to the CPU backend.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	eng := engine.New(gpu)
package webgpu

import (
	internalwebgpu "github.com/cinder-ml/cinder/internal/backend/webgpu"
	"github.com/cinder-ml/cinder/tensor"
)

// Backend is the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend. Call Release when done to free GPU
// resources. Returns an error if no compatible GPU is present.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be initialized on this
// system. Useful for choosing a backend at startup.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
