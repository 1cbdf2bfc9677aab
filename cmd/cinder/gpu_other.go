//go:build !windows

package main

import (
	"github.com/pkg/errors"

	"github.com/cinder-ml/cinder/engine"
)

func gpuAvailable() bool {
	return false
}

func gpuEngine() (*engine.Engine, func(), error) {
	return nil, nil, errors.New("webgpu backend is only available on windows")
}
