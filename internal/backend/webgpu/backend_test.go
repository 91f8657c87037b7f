//go:build windows

package webgpu

import (
	"math"
	"testing"

	"github.com/born-ml/activations/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(backend.Release)
	return backend
}

func rawFloat32(t *testing.T, shape tensor.Shape, values ...float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), values)
	return raw
}

func assertClose(t *testing.T, want, got *tensor.RawTensor) {
	t.Helper()
	require.True(t, want.Shape().Equal(got.Shape()), "shape %v vs %v", want.Shape(), got.Shape())
	assert.InDeltaSlice(t, want.AsFloat32(), got.AsFloat32(), 1e-5)
}

func TestNew(t *testing.T) {
	backend := newTestBackend(t)
	assert.NotEmpty(t, backend.Name())
	assert.Equal(t, tensor.WebGPU, backend.Device())
}

func TestNameFromAdapterInfo(t *testing.T) {
	b := &Backend{adapterInfo: &wgpu.AdapterInfoGo{Vendor: "nvidia", Device: "RTX 4090"}}
	assert.Equal(t, "WebGPU (nvidia RTX 4090)", b.Name())

	assert.Equal(t, "WebGPU", (&Backend{}).Name())
}

func TestKernelsMatchReference(t *testing.T) {
	backend := newTestBackend(t)
	ref := tensor.NewMockBackend()

	x := rawFloat32(t, tensor.Shape{2, 3, 4},
		-3, -2.5, -1, -0.5, 0, 0.25, 0.5, 1, 1.5, 2, 3, 300,
		-300, -7, 4, 0.1, -0.1, 5, 6, -6, 2.5, 1e-3, -1e-3, 0.9)

	capped := tensor.DefaultReLUParams()
	capped.MaxValue = 2
	leaky := tensor.ReLUParams{NegativeSlope: 0.1, MaxValue: math.Inf(1)}
	shifted := tensor.ReLUParams{NegativeSlope: 0.2, MaxValue: 6, Threshold: 0.5}

	assertClose(t, ref.ReLU(x, tensor.DefaultReLUParams()), backend.ReLU(x, tensor.DefaultReLUParams()))
	assertClose(t, ref.ReLU(x, capped), backend.ReLU(x, capped))
	assertClose(t, ref.ReLU(x, leaky), backend.ReLU(x, leaky))
	assertClose(t, ref.ReLU(x, shifted), backend.ReLU(x, shifted))
	assertClose(t, ref.ThresholdedReLU(x, 1), backend.ThresholdedReLU(x, 1))
	assertClose(t, ref.ELU(x, 0.5), backend.ELU(x, 0.5))

	for _, axis := range []int{0, 1, 2, -1} {
		assertClose(t, ref.Softmax(x, axis), backend.Softmax(x, axis))
	}

	alpha := rawFloat32(t, tensor.Shape{1, 4}, 0.1, 0.2, 0.3, 0.4)
	assertClose(t, ref.PReLU(x, alpha), backend.PReLU(x, alpha))
}

func TestResultDevice(t *testing.T) {
	backend := newTestBackend(t)

	x := rawFloat32(t, tensor.Shape{4}, -1, 0, 1, 2)
	assert.Equal(t, tensor.WebGPU, backend.ELU(x, 1).Device())

	x64, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(x64.AsFloat64(), []float64{-1, 3})
	y := backend.ReLU(x64, tensor.DefaultReLUParams())
	assert.Equal(t, tensor.WebGPU, y.Device())
	assert.Equal(t, []float64{0, 3}, y.AsFloat64())
}

func TestResultBuffersAreReused(t *testing.T) {
	backend := newTestBackend(t)

	x := rawFloat32(t, tensor.Shape{8}, 1, 2, 3, 4, 5, 6, 7, 8)
	backend.ELU(x, 1)
	backend.ELU(x, 1)

	hits, misses, pooled := backend.PoolStats()
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, 1, pooled)
}

func TestSoftmaxInvalidAxisPanics(t *testing.T) {
	backend := newTestBackend(t)
	x := rawFloat32(t, tensor.Shape{2, 2}, 1, 2, 3, 4)
	assert.Panics(t, func() { backend.Softmax(x, 2) })
}
