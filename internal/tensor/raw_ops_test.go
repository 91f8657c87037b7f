package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFloat32(t *testing.T, data []float32, shape Shape) *RawTensor {
	t.Helper()
	x, err := FromSlice(data, shape, NewMockBackend())
	require.NoError(t, err)
	return x.Raw()
}

func TestReLUWithMaxValue(t *testing.T) {
	x := rawFloat32(t, []float32{-100, -200, 0, 300, 200, 200}, Shape{6})
	p := DefaultReLUParams()
	p.MaxValue = 250

	out, err := ReLU(x, p)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 250, 200, 200}, out.AsFloat32())
}

func TestReLUThresholdAndSlope(t *testing.T) {
	x := rawFloat32(t, []float32{-2, 0.5, 1, 3}, Shape{4})
	p := ReLUParams{NegativeSlope: 0.5, MaxValue: math.Inf(1), Threshold: 1}

	out, err := ReLU(x, p)
	require.NoError(t, err)
	// Below threshold: 0.5 * (x - 1)
	assert.InDeltaSlice(t, []float32{-1.5, -0.25, 1, 3}, out.AsFloat32(), 1e-6)
}

func TestRectifiersPropagateNaN(t *testing.T) {
	nan := float32(math.NaN())
	x := rawFloat32(t, []float32{nan, -1, 2}, Shape{3})

	capped := DefaultReLUParams()
	capped.MaxValue = 1
	for name, p := range map[string]ReLUParams{"relu": DefaultReLUParams(), "capped": capped} {
		out, err := ReLU(x, p)
		require.NoError(t, err, name)
		got := out.AsFloat32()
		assert.True(t, math.IsNaN(float64(got[0])), "%s: ReLU(NaN) = %v", name, got[0])
		assert.Zero(t, got[1], name)
	}

	out, err := ThresholdedReLU(x, 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(out.AsFloat32()[0])))
	assert.Equal(t, float32(2), out.AsFloat32()[2])

	out, err = ELU(x, 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(out.AsFloat32()[0])))
}

func TestLeakyReLU(t *testing.T) {
	x := rawFloat32(t, []float32{-1, -2, 0, 3}, Shape{2, 2})
	out, err := LeakyReLU(x, 0.1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-0.1, -0.2, 0, 3}, out.AsFloat32(), 1e-6)
	assert.True(t, out.Shape().Equal(Shape{2, 2}))
}

func TestThresholdedReLU(t *testing.T) {
	x := rawFloat32(t, []float32{-1, 0.5, 1, 3}, Shape{2, 2})
	out, err := ThresholdedReLU(x, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 3}, out.AsFloat32())
}

func TestELU(t *testing.T) {
	x := rawFloat32(t, []float32{-1, -2, 0, 3}, Shape{2, 2})
	out, err := ELU(x, 1)
	require.NoError(t, err)
	want := []float32{float32(math.Exp(-1) - 1), float32(math.Exp(-2) - 1), 0, 3}
	assert.InDeltaSlice(t, want, out.AsFloat32(), 1e-6)
}

func TestELUFloat64(t *testing.T) {
	x, err := FromSlice([]float64{-1, 2}, Shape{2}, NewMockBackend())
	require.NoError(t, err)
	out, err := ELU(x.Raw(), 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5 * (math.Exp(-1) - 1), 2}, out.AsFloat64(), 1e-12)
}

func TestPReLUScalarAlpha(t *testing.T) {
	x := rawFloat32(t, []float32{-1, 2, -3, 4}, Shape{1, 4})
	alpha := rawFloat32(t, []float32{0.3}, Shape{})

	out, err := PReLU(x, alpha)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-0.3, 2, -0.9, 4}, out.AsFloat32(), 1e-6)
}

func TestPReLUPerChannelAlpha(t *testing.T) {
	x := rawFloat32(t, []float32{-1, -1, -1, -2, -2, -2}, Shape{2, 3})
	alpha := rawFloat32(t, []float32{0.1, 0.2, 0.3}, Shape{3})

	out, err := PReLU(x, alpha)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-0.1, -0.2, -0.3, -0.2, -0.4, -0.6}, out.AsFloat32(), 1e-6)
}

func TestPReLUSharedAxisAlpha(t *testing.T) {
	// Alpha shared along the last axis: shape [2, 1] against input [1, 2, 2].
	x := rawFloat32(t, []float32{-1, -1, -1, -1}, Shape{1, 2, 2})
	alpha := rawFloat32(t, []float32{0.5, 0.25}, Shape{2, 1})

	out, err := PReLU(x, alpha)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{-0.5, -0.5, -0.25, -0.25}, out.AsFloat32(), 1e-6)
}

func TestPReLURejectsGrowingAlpha(t *testing.T) {
	x := rawFloat32(t, []float32{1, 2}, Shape{2})
	alpha := rawFloat32(t, []float32{1, 2, 3, 4}, Shape{2, 2})
	_, err := PReLU(x, alpha)
	assert.Error(t, err)
}

func TestSoftmaxLastAxis(t *testing.T) {
	x := rawFloat32(t, []float32{0, 1, 5, 5}, Shape{2, 2})
	out, err := Softmax(x, -1)
	require.NoError(t, err)

	e := math.E
	want := []float32{float32(1 / (1 + e)), float32(e / (1 + e)), 0.5, 0.5}
	assert.InDeltaSlice(t, want, out.AsFloat32(), 1e-6)
}

func TestSoftmaxFirstAxis(t *testing.T) {
	x := rawFloat32(t, []float32{0, 5, 1, 5}, Shape{2, 2})
	out, err := Softmax(x, 0)
	require.NoError(t, err)

	e := math.E
	want := []float32{float32(1 / (1 + e)), 0.5, float32(e / (1 + e)), 0.5}
	assert.InDeltaSlice(t, want, out.AsFloat32(), 1e-6)
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	backend := NewMockBackend()
	x := RandUniform(Shape{2, 3, 4}, -10, 10, nil, backend)

	for _, axis := range []int{0, 1, 2, -1} {
		out, err := Softmax(x.Raw(), axis)
		require.NoError(t, err)

		norm, _ := NormalizeAxis(axis, 3)
		outer, size, inner := SoftmaxLayout(x.Shape(), norm)
		data := out.AsFloat32()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				sum := float32(0)
				for a := 0; a < size; a++ {
					sum += data[o*size*inner+a*inner+i]
				}
				assert.InDelta(t, 1.0, sum, 1e-5, "axis %d row (%d,%d)", axis, o, i)
			}
		}
	}
}

func TestSoftmaxLargeInputsStable(t *testing.T) {
	x := rawFloat32(t, []float32{1000, 1000}, Shape{1, 2})
	out, err := Softmax(x, -1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.5, 0.5}, out.AsFloat32(), 1e-6)
}

func TestSoftmaxAxisOutOfRange(t *testing.T) {
	x := rawFloat32(t, []float32{1, 2}, Shape{1, 2})
	_, err := Softmax(x, 2)
	assert.Error(t, err)
}

func TestRawOpsRejectIntegers(t *testing.T) {
	x, err := NewRaw(Shape{2}, Int32, CPU)
	require.NoError(t, err)

	_, err = ELU(x, 1)
	assert.Error(t, err)
	_, err = Softmax(x, 0)
	assert.Error(t, err)
	_, err = ReLU(nil, DefaultReLUParams())
	assert.Error(t, err)
}
