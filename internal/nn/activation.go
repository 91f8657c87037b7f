package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/activations/internal/tensor"
)

// Default option values.
const (
	DefaultLeakyReLUAlpha = 0.3
	DefaultELUAlpha       = 1.0
	DefaultTheta          = 1.0
)

func checkNonNegative(class, key string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return &ConfigError{Class: class, Key: key, Details: fmt.Sprintf("must be a non-negative number, got %v", v)}
	}
	return nil
}

// ReLUOptions configures a ReLU layer.
type ReLUOptions struct {
	LayerOptions
	// MaxValue caps the output. Nil leaves it unbounded.
	MaxValue *float64
}

// ReLU is a Rectified Linear Unit activation with an optional upper bound.
//
// Applies the element-wise function: f(x) = min(max(0, x), maxValue)
//
// Example:
//
//	relu, err := nn.NewReLU[B](nn.ReLUOptions{MaxValue: nn.Ptr(6.0)})
//	output := relu.Forward(input)
type ReLU[B tensor.Backend] struct {
	baseLayer
	maxValue *float64
}

// NewReLU creates a ReLU layer. A negative MaxValue is rejected.
func NewReLU[B tensor.Backend](opts ReLUOptions) (*ReLU[B], error) {
	if opts.MaxValue != nil {
		if err := checkNonNegative("ReLU", "maxValue", *opts.MaxValue); err != nil {
			return nil, err
		}
	}
	base, err := newBaseLayer("ReLU", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	r := &ReLU[B]{baseLayer: base}
	if opts.MaxValue != nil {
		r.maxValue = Ptr(*opts.MaxValue)
	}
	return r, nil
}

// ReLUOptionsFromConfig reads ReLU options from a camelCase config.
func ReLUOptionsFromConfig(cfg Config) (ReLUOptions, error) {
	r := newConfigReader("ReLU", cfg)
	opts := ReLUOptions{
		LayerOptions: readLayerOptions(r),
		MaxValue:     r.optFloat("maxValue"),
	}
	return opts, r.done()
}

// MaxValue returns the upper bound, or nil when unbounded.
func (r *ReLU[B]) MaxValue() *float64 {
	if r.maxValue == nil {
		return nil
	}
	return Ptr(*r.maxValue)
}

func (r *ReLU[B]) params() tensor.ReLUParams {
	p := tensor.DefaultReLUParams()
	if r.maxValue != nil {
		p.MaxValue = *r.maxValue
	}
	return p
}

// Forward applies the bounded rectifier.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(input, input.Backend().ReLU(input.Raw(), r.params()))
}

// Apply infers the output placeholder, which has the input's shape.
func (r *ReLU[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return r.apply(input, r.ComputeOutputShape)
}

// ComputeOutputShape returns the input shape.
func (r *ReLU[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	return shapePreserving(inputShape)
}

// GetConfig returns the layer config. An unbounded layer reports maxValue nil.
func (r *ReLU[B]) GetConfig() Config {
	cfg := r.baseConfig()
	if r.maxValue != nil {
		cfg["maxValue"] = *r.maxValue
	} else {
		cfg["maxValue"] = nil
	}
	return cfg
}

// Parameters returns nil (ReLU has no weights).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// LeakyReLUOptions configures a LeakyReLU layer.
type LeakyReLUOptions struct {
	LayerOptions
	// Alpha is the slope for negative inputs. Defaults to 0.3.
	Alpha *float64
}

// LeakyReLU lets a small gradient through for negative inputs.
//
// Applies the element-wise function: f(x) = x for x >= 0, alpha*x otherwise
type LeakyReLU[B tensor.Backend] struct {
	baseLayer
	alpha float64
}

// NewLeakyReLU creates a LeakyReLU layer. Alpha must be non-negative.
func NewLeakyReLU[B tensor.Backend](opts LeakyReLUOptions) (*LeakyReLU[B], error) {
	alpha := DefaultLeakyReLUAlpha
	if opts.Alpha != nil {
		alpha = *opts.Alpha
	}
	if err := checkNonNegative("LeakyReLU", "alpha", alpha); err != nil {
		return nil, err
	}
	base, err := newBaseLayer("LeakyReLU", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	return &LeakyReLU[B]{baseLayer: base, alpha: alpha}, nil
}

// LeakyReLUOptionsFromConfig reads LeakyReLU options from a camelCase config.
func LeakyReLUOptionsFromConfig(cfg Config) (LeakyReLUOptions, error) {
	r := newConfigReader("LeakyReLU", cfg)
	opts := LeakyReLUOptions{
		LayerOptions: readLayerOptions(r),
		Alpha:        r.optFloat("alpha"),
	}
	return opts, r.done()
}

// Alpha returns the negative slope.
func (l *LeakyReLU[B]) Alpha() float64 {
	return l.alpha
}

// Forward applies the leaky rectifier.
func (l *LeakyReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	p := tensor.DefaultReLUParams()
	p.NegativeSlope = l.alpha
	return wrap(input, input.Backend().ReLU(input.Raw(), p))
}

// Apply infers the output placeholder, which has the input's shape.
func (l *LeakyReLU[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return l.apply(input, l.ComputeOutputShape)
}

// ComputeOutputShape returns the input shape.
func (l *LeakyReLU[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	return shapePreserving(inputShape)
}

// GetConfig returns the layer config.
func (l *LeakyReLU[B]) GetConfig() Config {
	cfg := l.baseConfig()
	cfg["alpha"] = l.alpha
	return cfg
}

// Parameters returns nil (LeakyReLU has no weights).
func (l *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// ELUOptions configures an ELU layer.
type ELUOptions struct {
	LayerOptions
	// Alpha scales the negative branch. Defaults to 1.0.
	Alpha *float64
}

// ELU is the Exponential Linear Unit.
//
// Applies the element-wise function: f(x) = x for x > 0, alpha*(exp(x)-1) otherwise
type ELU[B tensor.Backend] struct {
	baseLayer
	alpha float64
}

// NewELU creates an ELU layer. Alpha must be non-negative.
func NewELU[B tensor.Backend](opts ELUOptions) (*ELU[B], error) {
	alpha := DefaultELUAlpha
	if opts.Alpha != nil {
		alpha = *opts.Alpha
	}
	if err := checkNonNegative("ELU", "alpha", alpha); err != nil {
		return nil, err
	}
	base, err := newBaseLayer("ELU", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	return &ELU[B]{baseLayer: base, alpha: alpha}, nil
}

// ELUOptionsFromConfig reads ELU options from a camelCase config.
func ELUOptionsFromConfig(cfg Config) (ELUOptions, error) {
	r := newConfigReader("ELU", cfg)
	opts := ELUOptions{
		LayerOptions: readLayerOptions(r),
		Alpha:        r.optFloat("alpha"),
	}
	return opts, r.done()
}

// Alpha returns the negative-branch scale.
func (e *ELU[B]) Alpha() float64 {
	return e.alpha
}

// Forward applies ELU.
func (e *ELU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(input, input.Backend().ELU(input.Raw(), e.alpha))
}

// Apply infers the output placeholder, which has the input's shape.
func (e *ELU[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return e.apply(input, e.ComputeOutputShape)
}

// ComputeOutputShape returns the input shape.
func (e *ELU[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	return shapePreserving(inputShape)
}

// GetConfig returns the layer config.
func (e *ELU[B]) GetConfig() Config {
	cfg := e.baseConfig()
	cfg["alpha"] = e.alpha
	return cfg
}

// Parameters returns nil (ELU has no weights).
func (e *ELU[B]) Parameters() []*Parameter[B] {
	return nil
}

// ThresholdedReLUOptions configures a ThresholdedReLU layer.
type ThresholdedReLUOptions struct {
	LayerOptions
	// Theta is the activation threshold. Defaults to 1.0.
	Theta *float64
}

// ThresholdedReLU zeroes every value not strictly above theta.
//
// Applies the element-wise function: f(x) = x for x > theta, 0 otherwise
type ThresholdedReLU[B tensor.Backend] struct {
	baseLayer
	theta float64
}

// NewThresholdedReLU creates a ThresholdedReLU layer. Theta must be non-negative.
func NewThresholdedReLU[B tensor.Backend](opts ThresholdedReLUOptions) (*ThresholdedReLU[B], error) {
	theta := DefaultTheta
	if opts.Theta != nil {
		theta = *opts.Theta
	}
	if err := checkNonNegative("ThresholdedReLU", "theta", theta); err != nil {
		return nil, err
	}
	base, err := newBaseLayer("ThresholdedReLU", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	return &ThresholdedReLU[B]{baseLayer: base, theta: theta}, nil
}

// ThresholdedReLUOptionsFromConfig reads ThresholdedReLU options from a camelCase config.
func ThresholdedReLUOptionsFromConfig(cfg Config) (ThresholdedReLUOptions, error) {
	r := newConfigReader("ThresholdedReLU", cfg)
	opts := ThresholdedReLUOptions{
		LayerOptions: readLayerOptions(r),
		Theta:        r.optFloat("theta"),
	}
	return opts, r.done()
}

// Theta returns the threshold.
func (t *ThresholdedReLU[B]) Theta() float64 {
	return t.theta
}

// Forward applies the thresholded rectifier.
func (t *ThresholdedReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return wrap(input, input.Backend().ThresholdedReLU(input.Raw(), t.theta))
}

// Apply infers the output placeholder, which has the input's shape.
func (t *ThresholdedReLU[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return t.apply(input, t.ComputeOutputShape)
}

// ComputeOutputShape returns the input shape.
func (t *ThresholdedReLU[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	return shapePreserving(inputShape)
}

// GetConfig returns the layer config.
func (t *ThresholdedReLU[B]) GetConfig() Config {
	cfg := t.baseConfig()
	cfg["theta"] = t.theta
	return cfg
}

// Parameters returns nil (ThresholdedReLU has no weights).
func (t *ThresholdedReLU[B]) Parameters() []*Parameter[B] {
	return nil
}
