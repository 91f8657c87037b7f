package nn

import (
	"math"
	"regexp"
	"testing"

	"github.com/born-ml/activations/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReLUMaxValue(t *testing.T) {
	relu, err := NewReLU[testBackend](ReLUOptions{MaxValue: Ptr(250.0)})
	require.NoError(t, err)

	out := relu.Forward(newInput(t, []float32{-100, -200, 0, 300, 200, 200}, 6))
	assert.Equal(t, tensor.Shape{6}, out.Shape())
	assertValues(t, []float32{0, 0, 0, 250, 200, 200}, out)
}

func TestReLUUnbounded(t *testing.T) {
	relu, err := NewReLU[testBackend](ReLUOptions{})
	require.NoError(t, err)
	assert.Nil(t, relu.MaxValue())

	out := relu.Forward(newInput(t, []float32{-1, 0, 1e6}, 3))
	assertValues(t, []float32{0, 0, 1e6}, out)
	assert.Nil(t, relu.Parameters())
}

func TestReLURejectsNegativeMaxValue(t *testing.T) {
	_, err := NewReLU[testBackend](ReLUOptions{MaxValue: Ptr(-1.0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ReLU", cfgErr.Class)
	assert.Equal(t, "maxValue", cfgErr.Key)
}

func TestLeakyReLU(t *testing.T) {
	leaky, err := NewLeakyReLU[testBackend](LeakyReLUOptions{Alpha: Ptr(0.1)})
	require.NoError(t, err)

	out := leaky.Forward(newInput(t, []float32{-1, -2, 0, 3}, 2, 2))
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assertValues(t, []float32{-0.1, -0.2, 0, 3}, out)
}

func TestLeakyReLUDefaultAlpha(t *testing.T) {
	leaky, err := NewLeakyReLU[testBackend](LeakyReLUOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, leaky.Alpha(), 1e-12)

	_, err = NewLeakyReLU[testBackend](LeakyReLUOptions{Alpha: Ptr(math.NaN())})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestELU(t *testing.T) {
	elu, err := NewELU[testBackend](ELUOptions{Alpha: Ptr(1.0)})
	require.NoError(t, err)

	out := elu.Forward(newInput(t, []float32{-1, -2, 0, 3}, 2, 2))
	want := []float32{
		float32(math.Exp(-1) - 1),
		float32(math.Exp(-2) - 1),
		0,
		3,
	}
	assertValues(t, want, out)
}

func TestELUAlpha(t *testing.T) {
	elu, err := NewELU[testBackend](ELUOptions{Alpha: Ptr(0.5)})
	require.NoError(t, err)
	out := elu.Forward(newInput(t, []float32{-1, 2}, 2))
	assertValues(t, []float32{float32(0.5 * (math.Exp(-1) - 1)), 2}, out)

	_, err = NewELU[testBackend](ELUOptions{Alpha: Ptr(-0.5)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestThresholdedReLU(t *testing.T) {
	thresholded, err := NewThresholdedReLU[testBackend](ThresholdedReLUOptions{Theta: Ptr(1.0)})
	require.NoError(t, err)

	out := thresholded.Forward(newInput(t, []float32{-1, 0.5, 1, 3}, 2, 2))
	assertValues(t, []float32{0, 0, 0, 3}, out)

	_, err = NewThresholdedReLU[testBackend](ThresholdedReLUOptions{Theta: Ptr(-0.1)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestElementwiseLayersPreserveShape(t *testing.T) {
	layers := map[string]func() (Layer[testBackend], error){
		"ReLU": func() (Layer[testBackend], error) {
			return NewReLU[testBackend](ReLUOptions{MaxValue: Ptr(6.0)})
		},
		"LeakyReLU": func() (Layer[testBackend], error) {
			return NewLeakyReLU[testBackend](LeakyReLUOptions{})
		},
		"ELU": func() (Layer[testBackend], error) {
			return NewELU[testBackend](ELUOptions{})
		},
		"ThresholdedReLU": func() (Layer[testBackend], error) {
			return NewThresholdedReLU[testBackend](ThresholdedReLUOptions{})
		},
		"Softmax": func() (Layer[testBackend], error) {
			return NewSoftmax[testBackend](SoftmaxOptions{})
		},
	}
	shapes := []tensor.SymbolicShape{
		{tensor.UnknownDim, 3},
		{2, 3},
		{tensor.UnknownDim, 2, 3, 4},
		{7},
	}

	for name, build := range layers {
		t.Run(name, func(t *testing.T) {
			layer, err := build()
			require.NoError(t, err)
			for _, shape := range shapes {
				got, err := layer.ComputeOutputShape(shape)
				require.NoError(t, err, "shape %s", shape)
				assert.Equal(t, shape, got)

				out, err := layer.Apply(placeholder(t, shape...))
				require.NoError(t, err)
				assert.Equal(t, shape, out.Shape())
				assert.Equal(t, tensor.Float32, out.DType())
				assert.Equal(t, layer.Name()+"/output", out.Name())

				if concrete, err := shape.Concrete(); err == nil {
					x := newInput(t, make([]float32, concrete.NumElements()), concrete...)
					assert.Equal(t, concrete, layer.Forward(x).Shape())
				}
			}
		})
	}
}

func TestApplyRejectsNonFloatPlaceholder(t *testing.T) {
	relu, err := NewReLU[testBackend](ReLUOptions{})
	require.NoError(t, err)

	p, err := tensor.NewSymbolic(tensor.Int32, tensor.SymbolicShape{tensor.UnknownDim, 2}, "ids")
	require.NoError(t, err)
	_, err = relu.Apply(p)
	assert.Error(t, err)

	_, err = relu.Apply(nil)
	assert.Error(t, err)
}

func TestApplyRejectsDTypeMismatch(t *testing.T) {
	relu, err := NewReLU[testBackend](ReLUOptions{LayerOptions: LayerOptions{DType: tensor.Float64}})
	require.NoError(t, err)

	f32, err := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape{tensor.UnknownDim, 4}, "input")
	require.NoError(t, err)
	_, err = relu.Apply(f32)
	require.ErrorIs(t, err, ErrDTypeMismatch)
	assert.Contains(t, err.Error(), "float64")

	f64, err := tensor.NewSymbolic(tensor.Float64, tensor.SymbolicShape{tensor.UnknownDim, 4}, "input")
	require.NoError(t, err)
	out, err := relu.Apply(f64)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.DType())
	assert.Equal(t, "[null,4]", out.Shape().String())

	// Default layers are float32.
	softmax, err := NewSoftmax[testBackend](SoftmaxOptions{})
	require.NoError(t, err)
	_, err = softmax.Apply(f64)
	assert.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestDefaultLayerNames(t *testing.T) {
	a, err := NewReLU[testBackend](ReLUOptions{})
	require.NoError(t, err)
	b, err := NewReLU[testBackend](ReLUOptions{})
	require.NoError(t, err)
	leaky, err := NewLeakyReLU[testBackend](LeakyReLUOptions{})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^re_lu_\d+$`), a.Name())
	assert.Regexp(t, regexp.MustCompile(`^leaky_re_lu_\d+$`), leaky.Name())
	assert.NotEqual(t, a.Name(), b.Name())

	named, err := NewReLU[testBackend](ReLUOptions{LayerOptions: LayerOptions{Name: "clip"}})
	require.NoError(t, err)
	assert.Equal(t, "clip", named.Name())
	assert.True(t, named.Trainable())
}

func TestLayerRejectsIntegerDType(t *testing.T) {
	_, err := NewELU[testBackend](ELUOptions{LayerOptions: LayerOptions{DType: tensor.Int64}})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "dtype", cfgErr.Key)
}
