// Package nn implements the activation layers of the Born ML Framework.
//
// This package provides:
//   - Module and Layer interfaces shared by every layer
//   - Activations: ReLU, LeakyReLU, PReLU, ELU, ThresholdedReLU, Softmax
//   - Parameter with initializers, regularizers and constraints (PReLU alpha)
//   - Sequential: container for stacking layers
//   - Registry: reconstructing layers from serialized configs
//
// Every layer runs on concrete tensors through a tensor.Backend and on
// symbolic placeholders for shape inference.
package nn

import (
	"fmt"
	"sync"

	"github.com/born-ml/activations/internal/serialization"
	"github.com/born-ml/activations/internal/tensor"
)

// Module is the minimal computation interface.
//
// Forward panics on invalid input, like the backend operations it calls.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for a concrete tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's weights. Activations without weights
	// return nil.
	Parameters() []*Parameter[B]
}

// Layer is a Module with a name, a serializable configuration and a
// symbolic execution path.
type Layer[B tensor.Backend] interface {
	Module[B]

	// ClassName identifies the layer type in serialized configs (e.g. "ReLU").
	ClassName() string

	Name() string
	Trainable() bool
	DType() tensor.DataType

	// Apply maps a placeholder to the placeholder of the layer's output.
	Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error)

	// ComputeOutputShape infers the output shape for an input shape whose
	// entries may be tensor.UnknownDim.
	ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error)

	// GetConfig returns the options needed to rebuild the layer, keyed in
	// camelCase.
	GetConfig() Config
}

// LayerOptions holds the options every layer accepts.
type LayerOptions struct {
	// Name defaults to snake_case(ClassName) followed by a process-wide counter.
	Name string
	// Trainable defaults to true.
	Trainable *bool
	// DType is the layer's compute type. Zero value is tensor.Float32.
	// Apply rejects placeholders of any other dtype.
	DType tensor.DataType
}

type baseLayer struct {
	className string
	name      string
	trainable bool
	dtype     tensor.DataType
}

func newBaseLayer(className string, opts LayerOptions) (baseLayer, error) {
	if !opts.DType.IsFloat() {
		return baseLayer{}, &ConfigError{Class: className, Key: "dtype", Details: fmt.Sprintf("unsupported dtype %s", opts.DType)}
	}
	name := opts.Name
	if name == "" {
		name = uniqueName(serialization.ToSnakeCase(className))
	}
	trainable := true
	if opts.Trainable != nil {
		trainable = *opts.Trainable
	}
	return baseLayer{className: className, name: name, trainable: trainable, dtype: opts.DType}, nil
}

// ClassName returns the serialized class name.
func (b *baseLayer) ClassName() string { return b.className }

// Name returns the layer name.
func (b *baseLayer) Name() string { return b.name }

// Trainable reports whether the layer's weights may be updated.
func (b *baseLayer) Trainable() bool { return b.trainable }

// DType returns the layer's compute type.
func (b *baseLayer) DType() tensor.DataType { return b.dtype }

func (b *baseLayer) baseConfig() Config {
	return Config{
		"name":      b.name,
		"trainable": b.trainable,
		"dtype":     b.dtype.String(),
	}
}

// checkInput validates a placeholder handed to Apply.
func (b *baseLayer) checkInput(input *tensor.SymbolicTensor) error {
	if input == nil {
		return fmt.Errorf("%s %q: input placeholder is nil", b.className, b.name)
	}
	if !input.DType().IsFloat() {
		return fmt.Errorf("%s %q: dtype %s is not a float type", b.className, b.name, input.DType())
	}
	if input.DType() != b.dtype {
		return fmt.Errorf("%s %q: %w: layer is %s, input is %s", b.className, b.name, ErrDTypeMismatch, b.dtype, input.DType())
	}
	return nil
}

// apply runs shape inference on a placeholder and wraps the result in a
// placeholder named after the layer.
func (b *baseLayer) apply(
	input *tensor.SymbolicTensor,
	compute func(tensor.SymbolicShape) (tensor.SymbolicShape, error),
) (*tensor.SymbolicTensor, error) {
	if err := b.checkInput(input); err != nil {
		return nil, err
	}
	shape, err := compute(input.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.className, b.name, err)
	}
	out, err := tensor.NewSymbolic(input.DType(), shape, b.name+"/output")
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.className, b.name, err)
	}
	return out, nil
}

// wrap pairs a backend result with the input's backend.
func wrap[B tensor.Backend](input *tensor.Tensor[float32, B], raw *tensor.RawTensor) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](raw, input.Backend())
}

// readLayerOptions consumes the base keys from a config.
func readLayerOptions(r *configReader) LayerOptions {
	opts := LayerOptions{
		Name:      r.str("name", ""),
		Trainable: r.optBool("trainable"),
	}
	if name := r.str("dtype", ""); name != "" {
		dt, err := tensor.ParseDataType(name)
		if err != nil {
			r.fail("dtype", "%v", err)
		}
		opts.DType = dt
	}
	return opts
}

var names = struct {
	sync.Mutex
	counters map[string]int
}{counters: make(map[string]int)}

// uniqueName returns prefix_N with N counting from 1 per prefix.
func uniqueName(prefix string) string {
	names.Lock()
	defer names.Unlock()
	names.counters[prefix]++
	return fmt.Sprintf("%s_%d", prefix, names.counters[prefix])
}

// shapePreserving is ComputeOutputShape for layers whose output shape equals
// their input shape.
func shapePreserving(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	if err := inputShape.Validate(); err != nil {
		return nil, err
	}
	return inputShape.Clone(), nil
}
