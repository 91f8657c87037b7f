package nn

import (
	"fmt"

	"github.com/born-ml/activations/internal/tensor"
)

// SoftmaxOptions configures a Softmax layer.
type SoftmaxOptions struct {
	LayerOptions
	// Axis to normalize over. Nil means the last axis.
	Axis *int
}

// Softmax normalizes exponentials along one axis so they sum to 1.
//
//	softmax(x)_i = exp(x_i - max(x)) / sum_j exp(x_j - max(x))
//
// The axis is checked against the input rank when the layer is applied, so
// one layer can serve inputs of different ranks.
type Softmax[B tensor.Backend] struct {
	baseLayer
	axis *int
}

// NewSoftmax creates a Softmax layer.
func NewSoftmax[B tensor.Backend](opts SoftmaxOptions) (*Softmax[B], error) {
	base, err := newBaseLayer("Softmax", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	s := &Softmax[B]{baseLayer: base}
	if opts.Axis != nil {
		s.axis = Ptr(*opts.Axis)
	}
	return s, nil
}

// SoftmaxOptionsFromConfig reads Softmax options from a camelCase config.
func SoftmaxOptionsFromConfig(cfg Config) (SoftmaxOptions, error) {
	r := newConfigReader("Softmax", cfg)
	opts := SoftmaxOptions{
		LayerOptions: readLayerOptions(r),
		Axis:         r.optInt("axis"),
	}
	return opts, r.done()
}

// Axis returns the configured axis, or nil for the last axis.
func (s *Softmax[B]) Axis() *int {
	if s.axis == nil {
		return nil
	}
	return Ptr(*s.axis)
}

// resolveAxis maps the configured axis to a non-negative axis for the rank.
func (s *Softmax[B]) resolveAxis(rank int) (int, error) {
	axis := -1
	if s.axis != nil {
		axis = *s.axis
	}
	normalized, err := tensor.NormalizeAxis(axis, rank)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIncompatibleShape, err)
	}
	return normalized, nil
}

// Forward applies softmax along the layer's axis.
// Panics if the axis is out of range for the input rank.
func (s *Softmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	axis, err := s.resolveAxis(len(input.Shape()))
	if err != nil {
		panic(fmt.Sprintf("Softmax %q: %v", s.name, err))
	}
	return wrap(input, input.Backend().Softmax(input.Raw(), axis))
}

// Apply infers the output placeholder, which has the input's shape.
func (s *Softmax[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return s.apply(input, s.ComputeOutputShape)
}

// ComputeOutputShape returns the input shape after checking the axis.
func (s *Softmax[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	if _, err := s.resolveAxis(len(inputShape)); err != nil {
		return nil, err
	}
	return shapePreserving(inputShape)
}

// GetConfig returns the layer config. A layer using the last axis reports
// axis nil.
func (s *Softmax[B]) GetConfig() Config {
	cfg := s.baseConfig()
	if s.axis != nil {
		cfg["axis"] = *s.axis
	} else {
		cfg["axis"] = nil
	}
	return cfg
}

// Parameters returns nil (Softmax has no weights).
func (s *Softmax[B]) Parameters() []*Parameter[B] {
	return nil
}
