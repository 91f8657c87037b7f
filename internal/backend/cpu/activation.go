package cpu

import (
	"fmt"

	"github.com/born-ml/activations/internal/parallel"
	"github.com/born-ml/activations/internal/tensor"
)

type float interface {
	~float32 | ~float64
}

// ReLU applies the generalized rectifier element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor, params tensor.ReLUParams) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float64) float64 { return tensor.ReLUScalar(v, params) })
}

// ThresholdedReLU keeps values strictly above theta.
func (cpu *CPUBackend) ThresholdedReLU(x *tensor.RawTensor, theta float64) *tensor.RawTensor {
	return cpu.unary("thresholded_relu", x, func(v float64) float64 { return tensor.ThresholdedReLUScalar(v, theta) })
}

// ELU applies x for x > 0 and alpha*(exp(x)-1) otherwise.
func (cpu *CPUBackend) ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	return cpu.unary("elu", x, func(v float64) float64 { return tensor.ELUScalar(v, alpha) })
}

// PReLU applies x for x >= 0 and alpha*x otherwise. Alpha broadcasts against x
// and must not grow it.
func (cpu *CPUBackend) PReLU(x, alpha *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != alpha.DType() {
		panic(fmt.Sprintf("prelu: dtype mismatch %s vs %s", x.DType(), alpha.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), alpha.Shape())
	if err != nil {
		panic(fmt.Sprintf("prelu: %v", err))
	}
	if !outShape.Equal(x.Shape()) {
		panic(fmt.Sprintf("prelu: alpha shape %v does not broadcast to input shape %v", alpha.Shape(), x.Shape()))
	}

	result := cpu.newResult("prelu", x)
	switch x.DType() {
	case tensor.Float32:
		preluFloat(cpu.parallel, x.AsFloat32(), alpha.AsFloat32(), result.AsFloat32(), x.Shape(), alpha.Shape(), needsBroadcast)
	case tensor.Float64:
		preluFloat(cpu.parallel, x.AsFloat64(), alpha.AsFloat64(), result.AsFloat64(), x.Shape(), alpha.Shape(), needsBroadcast)
	default:
		panic(fmt.Sprintf("prelu: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return result
}

// Softmax computes softmax along the specified dimension.
// Softmax(x_i) = exp(x_i - max) / sum(exp(x_j - max)) for all j in dimension.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := tensor.NormalizeAxis(dim, len(shape))
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	result := cpu.newResult("softmax", x)
	switch x.DType() {
	case tensor.Float32:
		softmaxFloat(cpu.parallel, x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		softmaxFloat(cpu.parallel, x.AsFloat64(), result.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return result
}

func (cpu *CPUBackend) newResult(op string, x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.newResult(op, x)
	switch x.DType() {
	case tensor.Float32:
		unaryFloat(cpu.parallel, x.AsFloat32(), result.AsFloat32(), f)
	case tensor.Float64:
		unaryFloat(cpu.parallel, x.AsFloat64(), result.AsFloat64(), f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}
	return result
}

func unaryFloat[T float](cfg parallel.Config, src, dst []T, f func(float64) float64) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = T(f(float64(src[i])))
		}
	}, cfg)
}

func preluFloat[T float](cfg parallel.Config, src, alpha, dst []T, shape, alphaShape tensor.Shape, broadcast bool) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			v := src[i]
			if v >= 0 {
				dst[i] = v
				continue
			}
			a := i
			if broadcast {
				a = tensor.BroadcastIndex(i, shape, alphaShape)
			}
			dst[i] = alpha[a] * v
		}
	}, cfg)
}

// softmaxFloat normalizes every (outer, inner) row independently, so rows are
// the unit of parallel work.
func softmaxFloat[T float](cfg parallel.Config, src, dst []T, shape tensor.Shape, dim int) {
	outerSize, axisSize, innerSize := tensor.SoftmaxLayout(shape, dim)
	rowCfg := cfg
	rowCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(axisSize, 1))

	parallel.For(outerSize*innerSize, func(row int) {
		outer, inner := row/innerSize, row%innerSize
		tensor.SoftmaxRow(src, dst, outer*axisSize*innerSize+inner, axisSize, innerSize)
	}, rowCfg)
}
