package nn

import (
	"testing"

	"github.com/born-ml/activations/internal/backend/cpu"
	"github.com/born-ml/activations/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBackend = *cpu.CPUBackend

func newInput(t *testing.T, data []float32, shape ...int) *tensor.Tensor[float32, testBackend] {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), cpu.New())
	require.NoError(t, err)
	return x
}

func placeholder(t *testing.T, shape ...int) *tensor.SymbolicTensor {
	t.Helper()
	p, err := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape(shape), "input")
	require.NoError(t, err)
	return p
}

func assertValues(t *testing.T, want []float32, got *tensor.Tensor[float32, testBackend]) {
	t.Helper()
	data := got.Data()
	require.Len(t, data, len(want))
	for i := range want {
		assert.InDelta(t, want[i], data[i], 1e-6, "element %d", i)
	}
}
