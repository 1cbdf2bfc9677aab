//go:build windows

// Package webgpu implements the WebGPU backend: the broadcast binary
// operators run as WGSL compute kernels, everything else (casts, reductions,
// shape surgery, non-float32 dtypes) falls back to the host kernels.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO bindings.
package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/cinder-ml/cinder/internal/backend/cpu"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// Backend implements tensor.Backend with GPU compute kernels.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache, keyed by kernel name.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// Host kernels for operations without a GPU path.
	host *cpu.CPUBackend
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// The native library loads lazily and panics when missing.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrap(adapterErr, "webgpu: failed to request adapter")
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(deviceErr, "webgpu: failed to request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		host:      cpu.New(),
	}, nil
}

// IsAvailable checks if WebGPU is usable on this system.
func IsAvailable() (available bool) {
	defer func() {
		if recover() != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{})
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Release frees all GPU resources held by the backend.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = make(map[string]*wgpu.ComputePipeline)
	b.shaders = make(map[string]*wgpu.ShaderModule)
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Add performs element-wise addition with broadcasting.
func (b *Backend) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("add", a, c, b.host.Add)
}

// Sub performs element-wise subtraction with broadcasting.
func (b *Backend) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("sub", a, c, b.host.Sub)
}

// Mul performs element-wise multiplication with broadcasting.
func (b *Backend) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("mul", a, c, b.host.Mul)
}

// Div performs element-wise true division with broadcasting.
func (b *Backend) Div(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("div", a, c, b.host.Div)
}

// FloorDiv performs element-wise floored division with broadcasting.
func (b *Backend) FloorDiv(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("floorDiv", a, c, b.host.FloorDiv)
}

// Mod performs element-wise floored modulo with broadcasting.
func (b *Backend) Mod(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("mod", a, c, b.host.Mod)
}

// Pow performs element-wise exponentiation with broadcasting.
func (b *Backend) Pow(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("pow", a, c, b.host.Pow)
}

// Minimum computes the element-wise minimum with broadcasting.
func (b *Backend) Minimum(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("minimum", a, c, b.host.Minimum)
}

// Maximum computes the element-wise maximum with broadcasting.
func (b *Backend) Maximum(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("maximum", a, c, b.host.Maximum)
}

// SquaredDifference computes (a-b)^2 element-wise with broadcasting.
func (b *Backend) SquaredDifference(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("squaredDifference", a, c, b.host.SquaredDifference)
}

// Atan2 computes the two-argument arctangent element-wise with broadcasting.
func (b *Backend) Atan2(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("atan2", a, c, b.host.Atan2)
}

// Neg computes element-wise negation on the host.
func (b *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Neg(x)
}

// Floor computes the element-wise floor on the host.
func (b *Backend) Floor(x *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Floor(x)
}

// Log computes the element-wise natural logarithm on the host.
func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Log(x)
}

// Greater returns a Bool tensor of a > b.
func (b *Backend) Greater(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Greater(a, c)
}

// GreaterEqual returns a Bool tensor of a >= b.
func (b *Backend) GreaterEqual(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.host.GreaterEqual(a, c)
}

// Lower returns a Bool tensor of a < b.
func (b *Backend) Lower(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Lower(a, c)
}

// LowerEqual returns a Bool tensor of a <= b.
func (b *Backend) LowerEqual(a, c *tensor.RawTensor) *tensor.RawTensor {
	return b.host.LowerEqual(a, c)
}

// Where selects x where condition is true, else y.
func (b *Backend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Where(condition, x, y)
}

// SumDim sums along a dimension on the host.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.host.SumDim(x, dim, keepDim)
}

// Reshape returns a tensor with the same data and a new shape.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return b.host.Reshape(t, newShape)
}

// Expand materializes a tensor broadcast to the given shape.
func (b *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return b.host.Expand(x, shape)
}

// Cast converts the tensor to a different data type.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.host.Cast(x, dtype)
}
