package nn

import (
	"testing"

	"github.com/born-ml/activations/internal/backend/cpu"
	"github.com/born-ml/activations/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryClasses(t *testing.T) {
	want := []string{"ELU", "LeakyReLU", "PReLU", "ReLU", "Sequential", "Softmax", "ThresholdedReLU"}
	assert.Equal(t, want, NewRegistry(cpu.New()).Classes())
	assert.Equal(t, want, RegisteredClasses())
}

func TestRegistryUnknownClass(t *testing.T) {
	registry := NewRegistry(cpu.New())

	_, err := registry.FromConfig("Swish", nil)
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = registry.Deserialize(Config{"className": "Swish"})
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, ok := registry.Get("Swish")
	assert.False(t, ok)
}

func TestRegistryRejectsMalformedRecords(t *testing.T) {
	registry := NewRegistry(cpu.New())

	_, err := registry.Deserialize(Config{"config": Config{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = registry.Deserialize(Config{"className": "ReLU", "config": "maxValue=3"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = registry.Deserialize(Config{"className": "ReLU", "weights": []any{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRegistryRegisterCustomClass(t *testing.T) {
	registry := NewRegistry(cpu.New())
	registry.Register("Relu6", func(cfg Config, _ testBackend) (Layer[testBackend], error) {
		opts, err := ReLUOptionsFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.MaxValue = Ptr(6.0)
		return NewReLU[testBackend](opts)
	})

	layer, err := registry.Deserialize(Config{"className": "Relu6"})
	require.NoError(t, err)
	assert.Contains(t, registry.Classes(), "Relu6")

	out := layer.Forward(newInput(t, []float32{-1, 3, 9}, 3))
	assertValues(t, []float32{0, 3, 6}, out)
}

func TestDeserializeHelperShorthands(t *testing.T) {
	layer, err := Deserialize(Config{
		"className": "PReLU",
		"config": Config{
			"alphaInitializer": "ones",
			"alphaConstraint":  "non_neg",
			"alphaRegularizer": Config{"className": "L2", "config": Config{"l2": 0.5}},
		},
	}, cpu.New())
	require.NoError(t, err)

	prelu, ok := layer.(*PReLU[testBackend])
	require.True(t, ok)
	require.NoError(t, prelu.Build(tensor.SymbolicShape{tensor.UnknownDim, 2}))

	weights, err := prelu.Weights()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, weights)
	assert.Equal(t, NonNeg{}, prelu.Alpha().Constraint())
	assert.Equal(t, L1L2{L2: 0.5}, prelu.Alpha().Regularizer())

	cfg := prelu.GetConfig()
	assert.Equal(t, Config{"className": "Ones", "config": Config{}}, cfg["alphaInitializer"])
	assert.Equal(t, Config{"className": "L1L2", "config": Config{"l1": 0.0, "l2": 0.5}}, cfg["alphaRegularizer"])
}

func TestDeserializePythonic(t *testing.T) {
	registry := NewRegistry(cpu.New())
	layer, err := registry.DeserializePythonic(map[string]any{
		"class_name": "ReLU",
		"config":     map[string]any{"max_value": 28, "name": "capped"},
	})
	require.NoError(t, err)

	relu, ok := layer.(*ReLU[testBackend])
	require.True(t, ok)
	assert.Equal(t, "capped", relu.Name())
	assert.Equal(t, 28.0, *relu.MaxValue())

	pythonic := SerializePythonic(relu)
	assert.Equal(t, "ReLU", pythonic["class_name"])
	cfg := pythonic["config"].(map[string]any)
	assert.Equal(t, 28.0, cfg["max_value"])
}
