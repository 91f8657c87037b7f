package main

import (
	"path/filepath"
	"testing"

	"github.com/born-ml/activations/backend/cpu"
	"github.com/born-ml/activations/internal/serialization"
	"github.com/born-ml/activations/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShape(t *testing.T) {
	shape, err := parseShape("[null, 3, 4]")
	require.NoError(t, err)
	assert.Equal(t, tensor.SymbolicShape{tensor.UnknownDim, 3, 4}, shape)

	_, err = parseShape("2,x")
	assert.Error(t, err)
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("-1, 0.5,3")
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0.5, 3}, values)

	_, err = parseValues("1,,2")
	assert.Error(t, err)
}

func TestLoadLayerFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relu.yaml")
	require.NoError(t, serialization.WriteFile(path, map[string]any{
		"class_name": "ReLU",
		"config":     map[string]any{"max_value": 28.0},
	}))

	backend := cpu.New()
	layer, err := loadLayer(path, backend)
	require.NoError(t, err)
	assert.Equal(t, 28.0, layer.GetConfig()["maxValue"])

	x, err := tensor.FromSlice([]float32{-5, 10, 50}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 10, 28}, layer.Forward(x).Data())
}
