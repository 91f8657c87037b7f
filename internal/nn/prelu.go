package nn

import (
	"fmt"
	"sort"
	"sync"

	"github.com/born-ml/activations/internal/tensor"
)

// PReLUOptions configures a PReLU layer.
type PReLUOptions struct {
	LayerOptions
	// AlphaInitializer defaults to Zeros.
	AlphaInitializer Initializer
	AlphaRegularizer Regularizer
	AlphaConstraint  Constraint
	// SharedAxes lists input axes (1-based, batch is axis 0) along which one
	// alpha is shared, e.g. the spatial axes of an image.
	SharedAxes []int
}

// PReLU is a leaky rectifier whose negative slope is a learned weight.
//
// Applies the element-wise function: f(x) = x for x >= 0, alpha*x otherwise
//
// alpha has the input shape without the batch axis, with every shared axis
// reduced to 1. It is created on the first Apply or Forward, which fixes
// the non-batch input dimensions.
type PReLU[B tensor.Backend] struct {
	baseLayer
	backend     B
	initializer Initializer
	regularizer Regularizer
	constraint  Constraint
	sharedAxes  []int

	mu         sync.Mutex
	alpha      *Parameter[B]
	inputShape tensor.SymbolicShape
}

// NewPReLU creates an unbuilt PReLU layer whose alpha will live on backend.
func NewPReLU[B tensor.Backend](opts PReLUOptions, backend B) (*PReLU[B], error) {
	for _, axis := range opts.SharedAxes {
		if axis < 1 {
			return nil, &ConfigError{Class: "PReLU", Key: "sharedAxes", Details: fmt.Sprintf("axis %d: axes are 1-based, the batch axis cannot be shared", axis)}
		}
	}
	base, err := newBaseLayer("PReLU", opts.LayerOptions)
	if err != nil {
		return nil, err
	}
	initializer := opts.AlphaInitializer
	if initializer == nil {
		initializer = Zeros{}
	}
	p := &PReLU[B]{
		baseLayer:   base,
		backend:     backend,
		initializer: initializer,
		regularizer: opts.AlphaRegularizer,
		constraint:  opts.AlphaConstraint,
	}
	if len(opts.SharedAxes) > 0 {
		p.sharedAxes = append([]int(nil), opts.SharedAxes...)
		sort.Ints(p.sharedAxes)
	}
	return p, nil
}

// PReLUOptionsFromConfig reads PReLU options from a camelCase config.
// Helper objects may be given as shorthand names or {"className", "config"}.
func PReLUOptionsFromConfig(cfg Config) (PReLUOptions, error) {
	r := newConfigReader("PReLU", cfg)
	opts := PReLUOptions{
		LayerOptions: readLayerOptions(r),
		SharedAxes:   r.intList("sharedAxes"),
	}
	rawInit := r.raw("alphaInitializer")
	rawReg := r.raw("alphaRegularizer")
	rawCon := r.raw("alphaConstraint")
	if err := r.done(); err != nil {
		return PReLUOptions{}, err
	}

	var err error
	if opts.AlphaInitializer, err = GetInitializer(rawInit); err != nil {
		return PReLUOptions{}, fmt.Errorf("PReLU alphaInitializer: %w", err)
	}
	if opts.AlphaRegularizer, err = GetRegularizer(rawReg); err != nil {
		return PReLUOptions{}, fmt.Errorf("PReLU alphaRegularizer: %w", err)
	}
	if opts.AlphaConstraint, err = GetConstraint(rawCon); err != nil {
		return PReLUOptions{}, fmt.Errorf("PReLU alphaConstraint: %w", err)
	}
	return opts, nil
}

// SharedAxes returns the shared axes in ascending order.
func (p *PReLU[B]) SharedAxes() []int {
	return append([]int(nil), p.sharedAxes...)
}

// Built reports whether alpha has been created.
func (p *PReLU[B]) Built() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alpha != nil
}

// alphaShape derives alpha's shape from an input shape. Shared axes become 1
// and may be unknown; every other non-batch dimension must be known.
func (p *PReLU[B]) alphaShape(inputShape tensor.SymbolicShape) (tensor.Shape, error) {
	if err := inputShape.Validate(); err != nil {
		return nil, err
	}
	if len(inputShape) < 2 {
		return nil, fmt.Errorf("%w: need a batch axis and at least one feature axis, got %s", ErrIncompatibleShape, inputShape)
	}
	shape := make(tensor.Shape, len(inputShape)-1)
	for _, axis := range p.sharedAxes {
		if axis >= len(inputShape) {
			return nil, fmt.Errorf("%w: shared axis %d out of range for %s", ErrIncompatibleShape, axis, inputShape)
		}
		shape[axis-1] = 1
	}
	for i, d := range inputShape[1:] {
		if p.isShared(i + 1) {
			continue
		}
		if d == tensor.UnknownDim {
			return nil, fmt.Errorf("%w: axis %d of %s must be known", ErrIncompatibleShape, i+1, inputShape)
		}
		shape[i] = d
	}
	return shape, nil
}

func (p *PReLU[B]) isShared(axis int) bool {
	for _, a := range p.sharedAxes {
		if a == axis {
			return true
		}
	}
	return false
}

// checkCompatible compares an input shape against the one alpha was built
// for. The batch axis and shared axes may vary.
func (p *PReLU[B]) checkCompatible(inputShape tensor.SymbolicShape) error {
	if len(inputShape) != len(p.inputShape) {
		return fmt.Errorf("%w: built for rank %d, got %s", ErrIncompatibleShape, len(p.inputShape), inputShape)
	}
	for i := 1; i < len(inputShape); i++ {
		if p.isShared(i) {
			continue
		}
		if inputShape[i] != p.inputShape[i] {
			return fmt.Errorf("%w: built for %s, got %s", ErrIncompatibleShape, p.inputShape, inputShape)
		}
	}
	return nil
}

// Build creates alpha for the given input shape. Building twice is allowed
// when the non-batch dimensions agree.
func (p *PReLU[B]) Build(inputShape tensor.SymbolicShape) error {
	if err := p.build(inputShape); err != nil {
		return fmt.Errorf("PReLU %q: %w", p.name, err)
	}
	return nil
}

func (p *PReLU[B]) build(inputShape tensor.SymbolicShape) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.alpha != nil {
		return p.checkCompatible(inputShape)
	}

	shape, err := p.alphaShape(inputShape)
	if err != nil {
		return err
	}
	values := tensor.Zeros[float32](shape, p.backend)
	p.initializer.Initialize(values.Data(), shape)

	alpha := NewParameter(p.name+"/alpha", values)
	alpha.regularizer = p.regularizer
	alpha.constraint = p.constraint
	if err := alpha.constrain(); err != nil {
		return err
	}

	built := inputShape.Clone()
	built[0] = tensor.UnknownDim
	for _, axis := range p.sharedAxes {
		built[axis] = tensor.UnknownDim
	}
	p.alpha = alpha
	p.inputShape = built
	return nil
}

// Forward applies the parametric rectifier, building alpha on first use.
// Panics if the input is incompatible with alpha.
func (p *PReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if err := p.Build(tensor.SymbolicShape(input.Shape())); err != nil {
		panic(err.Error())
	}
	return wrap(input, input.Backend().PReLU(input.Raw(), p.Alpha().Tensor().Raw()))
}

// Apply builds alpha if needed and returns a placeholder with the input's shape.
func (p *PReLU[B]) Apply(input *tensor.SymbolicTensor) (*tensor.SymbolicTensor, error) {
	return p.apply(input, func(shape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
		if err := p.build(shape); err != nil {
			return nil, err
		}
		return shapePreserving(shape)
	})
}

// ComputeOutputShape returns the input shape after checking it could be (or
// was) used to build alpha. It does not build the layer.
func (p *PReLU[B]) ComputeOutputShape(inputShape tensor.SymbolicShape) (tensor.SymbolicShape, error) {
	p.mu.Lock()
	built := p.alpha != nil
	var err error
	if built {
		err = p.checkCompatible(inputShape)
	} else {
		_, err = p.alphaShape(inputShape)
	}
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return shapePreserving(inputShape)
}

// Alpha returns the alpha parameter, or nil before the layer is built.
func (p *PReLU[B]) Alpha() *Parameter[B] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alpha
}

// Weights returns a copy of alpha's values.
func (p *PReLU[B]) Weights() ([]float32, error) {
	alpha := p.Alpha()
	if alpha == nil {
		return nil, fmt.Errorf("PReLU %q: %w", p.name, ErrNotBuilt)
	}
	return append([]float32(nil), alpha.Tensor().Data()...), nil
}

// SetWeights overwrites alpha and applies the alpha constraint.
func (p *PReLU[B]) SetWeights(values []float32) error {
	alpha := p.Alpha()
	if alpha == nil {
		return fmt.Errorf("PReLU %q: %w", p.name, ErrNotBuilt)
	}
	return alpha.Assign(values)
}

// Losses returns the regularization penalty of alpha, if any.
func (p *PReLU[B]) Losses() []float64 {
	alpha := p.Alpha()
	if alpha == nil || alpha.Regularizer() == nil {
		return nil
	}
	return []float64{alpha.Penalty()}
}

// GetConfig returns the layer config with helper objects serialized.
func (p *PReLU[B]) GetConfig() Config {
	cfg := p.baseConfig()
	cfg["alphaInitializer"] = SerializeInitializer(p.initializer)
	cfg["alphaRegularizer"] = SerializeRegularizer(p.regularizer)
	cfg["alphaConstraint"] = SerializeConstraint(p.constraint)
	if len(p.sharedAxes) > 0 {
		cfg["sharedAxes"] = p.SharedAxes()
	} else {
		cfg["sharedAxes"] = nil
	}
	return cfg
}

// Parameters returns alpha once built, nil before.
func (p *PReLU[B]) Parameters() []*Parameter[B] {
	if alpha := p.Alpha(); alpha != nil {
		return []*Parameter[B]{alpha}
	}
	return nil
}
