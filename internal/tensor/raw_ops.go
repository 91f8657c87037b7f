// Package tensor raw_ops provides the reference activation kernels. Backends
// may implement faster versions but must agree with these results.
package tensor

import (
	"fmt"
	"math"
)

type float interface {
	~float32 | ~float64
}

// mapElements writes f(in[i]) into out for float32 and float64 tensors.
func mapElements(op string, x *RawTensor, f func(float64) float64) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: input tensor is nil", op)
	}
	result, err := NewRaw(x.shape, x.dtype, x.device)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch x.dtype {
	case Float32:
		applyUnary(x.AsFloat32(), result.AsFloat32(), f)
	case Float64:
		applyUnary(x.AsFloat64(), result.AsFloat64(), f)
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %v", op, x.dtype)
	}
	return result, nil
}

func applyUnary[T float](in, out []T, f func(float64) float64) {
	for i := range in {
		out[i] = T(f(float64(in[i])))
	}
}

// ReLUScalar is the scalar form of the generalized rectifier. NaN passes through.
func ReLUScalar(v float64, p ReLUParams) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v >= p.Threshold {
		if v > p.MaxValue {
			return p.MaxValue
		}
		return v
	}
	if p.NegativeSlope == 0 {
		return 0
	}
	return p.NegativeSlope * (v - p.Threshold)
}

// ThresholdedReLUScalar returns v when v > theta, else 0. NaN passes through.
func ThresholdedReLUScalar(v, theta float64) float64 {
	if v > theta || math.IsNaN(v) {
		return v
	}
	return 0
}

// ELUScalar returns v for v > 0, else alpha*(exp(v)-1).
func ELUScalar(v, alpha float64) float64 {
	if v > 0 {
		return v
	}
	return alpha * math.Expm1(v)
}

// ReLU applies the generalized rectifier element-wise.
func ReLU(x *RawTensor, p ReLUParams) (*RawTensor, error) {
	return mapElements("ReLU", x, func(v float64) float64 { return ReLUScalar(v, p) })
}

// LeakyReLU applies x for x >= 0 and alpha*x otherwise.
func LeakyReLU(x *RawTensor, alpha float64) (*RawTensor, error) {
	p := DefaultReLUParams()
	p.NegativeSlope = alpha
	return ReLU(x, p)
}

// ThresholdedReLU keeps values strictly above theta.
func ThresholdedReLU(x *RawTensor, theta float64) (*RawTensor, error) {
	return mapElements("ThresholdedReLU", x, func(v float64) float64 { return ThresholdedReLUScalar(v, theta) })
}

// ELU applies the exponential linear unit.
func ELU(x *RawTensor, alpha float64) (*RawTensor, error) {
	return mapElements("ELU", x, func(v float64) float64 { return ELUScalar(v, alpha) })
}

// PReLU applies x for x >= 0 and alpha*x otherwise, where alpha broadcasts
// against x under NumPy rules and must not change x's shape.
func PReLU(x, alpha *RawTensor) (*RawTensor, error) {
	if x == nil || alpha == nil {
		return nil, fmt.Errorf("PReLU: input tensors cannot be nil")
	}
	if x.dtype != alpha.dtype {
		return nil, fmt.Errorf("PReLU: dtype mismatch %s vs %s", x.dtype, alpha.dtype)
	}
	out, _, err := BroadcastShapes(x.shape, alpha.shape)
	if err != nil {
		return nil, fmt.Errorf("PReLU: %w", err)
	}
	if !out.Equal(x.shape) {
		return nil, fmt.Errorf("PReLU: alpha shape %v would broadcast input %v to %v", alpha.shape, x.shape, out)
	}

	result, err := NewRaw(x.shape, x.dtype, x.device)
	if err != nil {
		return nil, fmt.Errorf("PReLU: %w", err)
	}

	switch x.dtype {
	case Float32:
		preluKernel(x.AsFloat32(), alpha.AsFloat32(), result.AsFloat32(), x.shape, alpha.shape)
	case Float64:
		preluKernel(x.AsFloat64(), alpha.AsFloat64(), result.AsFloat64(), x.shape, alpha.shape)
	default:
		return nil, fmt.Errorf("PReLU: unsupported dtype %v", x.dtype)
	}
	return result, nil
}

func preluKernel[T float](in, alpha, out []T, shape, alphaShape Shape) {
	for i, v := range in {
		if v >= 0 {
			out[i] = v
			continue
		}
		out[i] = alpha[BroadcastIndex(i, shape, alphaShape)] * v
	}
}

// Softmax applies softmax along the specified axis (negative axes count from the end).
func Softmax(x *RawTensor, axis int) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("Softmax: input tensor is nil")
	}

	axis, err := NormalizeAxis(axis, len(x.shape))
	if err != nil {
		return nil, fmt.Errorf("Softmax: %w", err)
	}

	result, err := NewRaw(x.shape, x.dtype, x.device)
	if err != nil {
		return nil, fmt.Errorf("Softmax: %w", err)
	}

	switch x.dtype {
	case Float32:
		softmaxKernel(x.AsFloat32(), result.AsFloat32(), x.shape, axis)
	case Float64:
		softmaxKernel(x.AsFloat64(), result.AsFloat64(), x.shape, axis)
	default:
		return nil, fmt.Errorf("Softmax: unsupported dtype %v", x.dtype)
	}
	return result, nil
}

// SoftmaxLayout splits a shape around axis into outer, axis and inner extents.
// Element (o, a, i) lives at o*axisSize*innerSize + a*innerSize + i.
func SoftmaxLayout(shape Shape, axis int) (outerSize, axisSize, innerSize int) {
	outerSize = 1
	for i := 0; i < axis; i++ {
		outerSize *= shape[i]
	}
	axisSize = shape[axis]
	innerSize = 1
	for i := axis + 1; i < len(shape); i++ {
		innerSize *= shape[i]
	}
	return outerSize, axisSize, innerSize
}

// SoftmaxRow normalizes one (outer, inner) row. Accumulation is done in
// float64 and the row max is subtracted for numerical stability.
func SoftmaxRow[T float](in, out []T, base, axisSize, innerSize int) {
	maxVal := math.Inf(-1)
	for a := 0; a < axisSize; a++ {
		if v := float64(in[base+a*innerSize]); v > maxVal {
			maxVal = v
		}
	}
	sum := 0.0
	for a := 0; a < axisSize; a++ {
		idx := base + a*innerSize
		e := math.Exp(float64(in[idx]) - maxVal)
		out[idx] = T(e)
		sum += e
	}
	for a := 0; a < axisSize; a++ {
		idx := base + a*innerSize
		out[idx] = T(float64(out[idx]) / sum)
	}
}

func softmaxKernel[T float](in, out []T, shape Shape, axis int) {
	outerSize, axisSize, innerSize := SoftmaxLayout(shape, axis)
	for outer := 0; outer < outerSize; outer++ {
		for inner := 0; inner < innerSize; inner++ {
			SoftmaxRow(in, out, outer*axisSize*innerSize+inner, axisSize, innerSize)
		}
	}
}
