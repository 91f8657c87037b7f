//go:build !windows

package webgpu

import "github.com/born-ml/activations/internal/tensor"

// Verify that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Backend is a placeholder on platforms without the WebGPU path.
// New always fails, so its kernels are never reached.
type Backend struct{}

// New returns ErrUnavailable.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports false.
func IsAvailable() bool { return false }

// Release is a no-op.
func (b *Backend) Release() {}

// Name returns "WebGPU".
func (b *Backend) Name() string { return "WebGPU" }

// Device returns tensor.WebGPU.
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

// PoolStats reports an empty pool.
func (b *Backend) PoolStats() (hits, misses uint64, pooled int) { return 0, 0, 0 }

// ReLU panics with ErrUnavailable.
func (b *Backend) ReLU(*tensor.RawTensor, tensor.ReLUParams) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// ThresholdedReLU panics with ErrUnavailable.
func (b *Backend) ThresholdedReLU(*tensor.RawTensor, float64) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// ELU panics with ErrUnavailable.
func (b *Backend) ELU(*tensor.RawTensor, float64) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// PReLU panics with ErrUnavailable.
func (b *Backend) PReLU(_, _ *tensor.RawTensor) *tensor.RawTensor {
	panic(ErrUnavailable)
}

// Softmax panics with ErrUnavailable.
func (b *Backend) Softmax(*tensor.RawTensor, int) *tensor.RawTensor {
	panic(ErrUnavailable)
}
