//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/activations/internal/tensor"
)

// ReLU applies the generalized rectifier.
func (b *Backend) ReLU(x *tensor.RawTensor, params tensor.ReLUParams) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host("relu", x, func() (*tensor.RawTensor, error) { return tensor.ReLU(x, params) })
	}

	p := make([]byte, 20)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(p[0:4], uint32(x.NumElements()))
	if params.HasMax() {
		binary.LittleEndian.PutUint32(p[4:8], 1)
	}
	putFloat(p[8:12], params.NegativeSlope)
	putFloat(p[12:16], params.Threshold)
	putFloat(p[16:20], params.MaxValue)

	return b.elementwise("relu", reluShader, x, p)
}

// ThresholdedReLU keeps values strictly above theta.
func (b *Backend) ThresholdedReLU(x *tensor.RawTensor, theta float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host("thresholded_relu", x, func() (*tensor.RawTensor, error) { return tensor.ThresholdedReLU(x, theta) })
	}
	return b.elementwise("thresholded_relu", thresholdedReLUShader, x, sizeAndScalar(x, theta))
}

// ELU applies x for x > 0 and alpha*(exp(x)-1) otherwise.
func (b *Backend) ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host("elu", x, func() (*tensor.RawTensor, error) { return tensor.ELU(x, alpha) })
	}
	return b.elementwise("elu", eluShader, x, sizeAndScalar(x, alpha))
}

// PReLU applies x for x >= 0 and alpha*x otherwise. Alpha is expanded to
// x's shape before upload.
func (b *Backend) PReLU(x, alpha *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != alpha.DType() {
		panic(fmt.Sprintf("prelu: dtype mismatch %s vs %s", x.DType(), alpha.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(x.Shape(), alpha.Shape())
	if err != nil {
		panic(fmt.Sprintf("prelu: %v", err))
	}
	if !outShape.Equal(x.Shape()) {
		panic(fmt.Sprintf("prelu: alpha shape %v does not broadcast to input shape %v", alpha.Shape(), x.Shape()))
	}
	if x.DType() != tensor.Float32 {
		return b.host("prelu", x, func() (*tensor.RawTensor, error) { return tensor.PReLU(x, alpha) })
	}

	expanded := alpha
	if !alpha.Shape().Equal(x.Shape()) {
		expanded = expandTo(alpha, x.Shape())
	}

	p := make([]byte, 4)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(p, uint32(x.NumElements()))

	out, err := b.run(kernel{
		name:        "prelu",
		code:        preluShader,
		inputs:      [][]byte{x.Data(), expanded.Data()},
		params:      p,
		resultSize:  uint64(x.ByteSize()), //nolint:gosec // G115: ByteSize() is non-negative
		invocations: x.NumElements(),
	})
	if err != nil {
		panic(fmt.Sprintf("prelu: %v", err))
	}
	return b.result("prelu", x, out)
}

// Softmax normalizes along dim, one row per invocation.
func (b *Backend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	axis, err := tensor.NormalizeAxis(dim, len(x.Shape()))
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}
	if x.DType() != tensor.Float32 {
		return b.host("softmax", x, func() (*tensor.RawTensor, error) { return tensor.Softmax(x, axis) })
	}

	outer, axisSize, inner := tensor.SoftmaxLayout(x.Shape(), axis)
	rows := outer * inner
	if rows == 0 || axisSize == 0 {
		return b.result("softmax", x, []byte{})
	}

	p := make([]byte, 12)
	//nolint:gosec // G115: layout extents are non-negative
	binary.LittleEndian.PutUint32(p[0:4], uint32(rows))
	//nolint:gosec // G115: layout extents are non-negative
	binary.LittleEndian.PutUint32(p[4:8], uint32(axisSize))
	//nolint:gosec // G115: layout extents are non-negative
	binary.LittleEndian.PutUint32(p[8:12], uint32(inner))

	out, err := b.run(kernel{
		name:        "softmax",
		code:        softmaxShader,
		inputs:      [][]byte{x.Data()},
		params:      p,
		resultSize:  uint64(x.ByteSize()), //nolint:gosec // G115: ByteSize() is non-negative
		invocations: rows,
	})
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}
	return b.result("softmax", x, out)
}

// elementwise runs a single-input shader over every element of x.
func (b *Backend) elementwise(name, code string, x *tensor.RawTensor, params []byte) *tensor.RawTensor {
	out, err := b.run(kernel{
		name:        name,
		code:        code,
		inputs:      [][]byte{x.Data()},
		params:      params,
		resultSize:  uint64(x.ByteSize()), //nolint:gosec // G115: ByteSize() is non-negative
		invocations: x.NumElements(),
	})
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	return b.result(name, x, out)
}

// result wraps kernel output in a tensor shaped like x.
func (b *Backend) result(op string, x *tensor.RawTensor, data []byte) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), tensor.WebGPU)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	copy(result.Data(), data)
	return result
}

// host runs a reference kernel for dtypes the shaders do not cover.
func (b *Backend) host(op string, x *tensor.RawTensor, f func() (*tensor.RawTensor, error)) *tensor.RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}
	result, err := f()
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result.WithDevice(tensor.WebGPU)
}

func sizeAndScalar(x *tensor.RawTensor, v float64) []byte {
	p := make([]byte, 8)
	//nolint:gosec // G115: Safe conversion, NumElements() returns non-negative int
	binary.LittleEndian.PutUint32(p[0:4], uint32(x.NumElements()))
	putFloat(p[4:8], v)
	return p
}

// putFloat writes v as an f32. Infinities survive the narrowing.
func putFloat(dst []byte, v float64) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
}

// expandTo materializes alpha broadcast to shape.
func expandTo(alpha *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	expanded, err := tensor.NewRaw(shape, alpha.DType(), alpha.Device())
	if err != nil {
		panic(fmt.Sprintf("prelu: failed to expand alpha: %v", err))
	}
	src := alpha.AsFloat32()
	dst := expanded.AsFloat32()
	for i := range dst {
		dst[i] = src[tensor.BroadcastIndex(i, shape, alpha.Shape())]
	}
	return expanded
}
