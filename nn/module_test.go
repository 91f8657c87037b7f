// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/born-ml/activations/backend/cpu"
	"github.com/born-ml/activations/nn"
	"github.com/born-ml/activations/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLayerInterface verifies that every public layer satisfies nn.Layer.
func TestLayerInterface(t *testing.T) {
	backend := cpu.New()

	relu, err := nn.NewReLU[*cpu.Backend](nn.ReLUOptions{MaxValue: nn.Ptr(6.0)})
	require.NoError(t, err)
	leaky, err := nn.NewLeakyReLU[*cpu.Backend](nn.LeakyReLUOptions{})
	require.NoError(t, err)
	prelu, err := nn.NewPReLU(nn.PReLUOptions{AlphaInitializer: nn.Constant{Value: 0.5}}, backend)
	require.NoError(t, err)
	elu, err := nn.NewELU[*cpu.Backend](nn.ELUOptions{})
	require.NoError(t, err)
	thresholded, err := nn.NewThresholdedReLU[*cpu.Backend](nn.ThresholdedReLUOptions{})
	require.NoError(t, err)
	softmax, err := nn.NewSoftmax[*cpu.Backend](nn.SoftmaxOptions{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		layer nn.Layer[*cpu.Backend]
	}{
		{"ReLU", relu},
		{"LeakyReLU", leaky},
		{"PReLU", prelu},
		{"ELU", elu},
		{"ThresholdedReLU", thresholded},
		{"Softmax", softmax},
		{"Sequential", nn.NewSequential[*cpu.Backend](relu, softmax)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.layer.ClassName())

			input, err := tensor.FromSlice([]float32{-2, -0.5, 0.5, 8}, tensor.Shape{1, 4}, backend)
			require.NoError(t, err)
			out := tt.layer.Forward(input)
			assert.Equal(t, tensor.Shape{1, 4}, out.Shape())

			placeholder, err := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape{tensor.UnknownDim, 4}, "input")
			require.NoError(t, err)
			sym, err := tt.layer.Apply(placeholder)
			require.NoError(t, err)
			assert.Equal(t, placeholder.Shape(), sym.Shape())
		})
	}
}

func TestPythonicRoundTrip(t *testing.T) {
	backend := cpu.New()
	relu, err := nn.NewReLU[*cpu.Backend](nn.ReLUOptions{MaxValue: nn.Ptr(28.0)})
	require.NoError(t, err)

	serialized := nn.SerializePythonic(relu)
	assert.Equal(t, "ReLU", serialized["class_name"])

	layer, err := nn.NewRegistry(backend).DeserializePythonic(serialized)
	require.NoError(t, err)
	assert.Equal(t, relu.GetConfig(), layer.GetConfig())
	assert.Equal(t, 28.0, *layer.(*nn.ReLU[*cpu.Backend]).MaxValue())
}

func TestRegisteredClasses(t *testing.T) {
	assert.Equal(t, []string{"ELU", "LeakyReLU", "PReLU", "ReLU", "Sequential", "Softmax", "ThresholdedReLU"}, nn.RegisteredClasses())
}

func TestUnknownClass(t *testing.T) {
	_, err := nn.Deserialize(nn.Config{"className": "Swish", "config": nn.Config{}}, cpu.New())
	assert.ErrorIs(t, err, nn.ErrUnknownClass)
}
