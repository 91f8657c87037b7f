package tensor

import "math"

// ReLUParams configures the generalized rectifier computed by Backend.ReLU:
//
//	f(x) = min(x, MaxValue)        for x >= Threshold
//	f(x) = NegativeSlope * (x - Threshold) otherwise
//
// NaN inputs yield NaN. Start from DefaultReLUParams: a zero MaxValue clamps
// every output to 0.
type ReLUParams struct {
	NegativeSlope float64
	MaxValue      float64
	Threshold     float64
}

// DefaultReLUParams returns max(x, 0) with no upper bound.
func DefaultReLUParams() ReLUParams {
	return ReLUParams{MaxValue: math.Inf(1)}
}

// HasMax reports whether an upper bound is in effect.
func (p ReLUParams) HasMax() bool {
	return !math.IsInf(p.MaxValue, 1)
}

// Backend defines the operations a compute backend must provide for the
// activation layers. Backends panic on invalid arguments; callers validate
// shapes and axes before dispatching.
//
// Implementations:
//   - cpu.CPUBackend: pure Go, parallel over elements or softmax rows
//   - webgpu.Backend: WGSL compute shaders (Windows)
//   - MockBackend: reference kernels from raw_ops.go, used in tests
type Backend interface {
	// ReLU applies the generalized rectifier described by ReLUParams.
	ReLU(x *RawTensor, params ReLUParams) *RawTensor

	// ThresholdedReLU keeps x where x > theta and zeroes the rest.
	ThresholdedReLU(x *RawTensor, theta float64) *RawTensor

	// ELU applies x for x > 0 and alpha*(exp(x)-1) otherwise.
	ELU(x *RawTensor, alpha float64) *RawTensor

	// PReLU applies x for x >= 0 and alpha*x otherwise, with alpha broadcast
	// right-aligned against x.
	PReLU(x, alpha *RawTensor) *RawTensor

	// Softmax normalizes exponentials along dim (negative dims count from the end).
	Softmax(x *RawTensor, dim int) *RawTensor

	Name() string
	Device() Device
}
