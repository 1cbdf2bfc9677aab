//go:build windows

package main

import (
	"github.com/pkg/errors"

	"github.com/cinder-ml/cinder/backend/webgpu"
	"github.com/cinder-ml/cinder/engine"
)

func gpuAvailable() bool {
	return webgpu.IsAvailable()
}

// gpuEngine creates an engine over the WebGPU backend. The returned cleanup
// releases GPU resources.
func gpuEngine() (*engine.Engine, func(), error) {
	gpu, err := webgpu.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "initializing webgpu backend")
	}
	return engine.New(gpu), gpu.Release, nil
}
