package nn

import (
	"fmt"

	"github.com/born-ml/activations/internal/tensor"
)

// Sequential is a container layer that chains layers together.
//
// Each layer's output becomes the next layer's input, both for concrete
// tensors and for placeholders.
//
// Example:
//
//	model := nn.NewSequential[B](prelu, softmax)
//	output := model.Forward(input)
//	placeholder, err := model.Apply(symbolic)
type Sequential[B tensor.Backend] struct {
	baseLayer
	layers []Layer[B]
}

// NewSequential creates a new Sequential container with a default name.
func NewSequential[B tensor.Backend](layers ...Layer[B]) *Sequential[B] {
	s, _ := NewSequentialWithOptions(LayerOptions{}, layers...)
	return s
}

// NewSequentialWithOptions creates a Sequential container with explicit
// base options.
func NewSequentialWithOptions[B tensor.Backend](opts LayerOptions, layers ...Layer[B]) (*Sequential[B], error) {
	base, err := newBaseLayer("Sequential", opts)
	if err != nil {
		return nil, err
	}
	return &Sequential[B]{baseLayer: base, layers: append([]Layer[B](nil), layers...)}, nil
}

// sequentialFromConfig rebuilds the contained layers through the registry.
func sequentialFromConfig[B tensor.Backend](reg *Registry[B], cfg Config) (*Sequential[B], error) {
	r := newConfigReader("Sequential", cfg)
	opts := readLayerOptions(r)
	rawLayers := r.raw("layers")
	if err := r.done(); err != nil {
		return nil, err
	}

	var items []any
	switch list := rawLayers.(type) {
	case nil:
	case []any:
		items = list
	case []Config:
		for _, item := range list {
			items = append(items, item)
		}
	default:
		return nil, &ConfigError{Class: "Sequential", Key: "layers", Details: fmt.Sprintf("expected a list, got %T", rawLayers)}
	}

	layers := make([]Layer[B], 0, len(items))
	for i, item := range items {
		serialized, ok := item.(map[string]any)
		if !ok {
			return nil, &ConfigError{Class: "Sequential", Key: "layers", Details: fmt.Sprintf("element %d: expected an object, got %T", i, item)}
		}
		layer, err := reg.Deserialize(serialized)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, layer)
	}
	return NewSequentialWithOptions(opts, layers...)
}

// Forward applies all layers in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input
	for _, layer := range s.layers {
		output = layer.Forward(output)
	}
	return output
}

// Apply threads a placeholder through every layer.
func (s *Sequential[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	output := input
	for i, layer := range s.layers {
		var err error
		if output, err = layer.Apply(output); err != nil {
			return nil, fmt.Errorf("Sequential %q: layer %d: %w", s.name, i, err)
		}
	}
	return output, nil
}

// ComputeOutputShape composes the shape inference of every layer.
func (s *Sequential[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	shape := inputShape.Clone()
	for i, layer := range s.layers {
		var err error
		if shape, err = layer.ComputeOutputShape(shape); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return shape, nil
}

// GetConfig returns the container config with every layer serialized.
func (s *Sequential[B]) GetConfig() Config {
	cfg := s.baseConfig()
	layers := make([]any, len(s.layers))
	for i, layer := range s.layers {
		layers[i] = Serialize(layer)
	}
	cfg["layers"] = layers
	return cfg
}

// Parameters returns the parameters of all layers in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, layer := range s.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Add appends a layer to the sequence.
func (s *Sequential[B]) Add(layer Layer[B]) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Layer(index int) Layer[B] {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}
