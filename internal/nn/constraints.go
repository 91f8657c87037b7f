package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/activations/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// Constraint projects a weight back into its valid set after it changes.
type Constraint interface {
	ClassName() string
	Config() Config
	// Apply rewrites data in place. shape is the weight's shape.
	Apply(data []float32, shape tensor.Shape) error
}

// NonNeg clamps negative values to 0.
type NonNeg struct{}

// ClassName returns "NonNeg".
func (NonNeg) ClassName() string { return "NonNeg" }

// Config returns an empty config.
func (NonNeg) Config() Config { return Config{} }

// Apply zeroes negative values.
func (NonNeg) Apply(data []float32, _ tensor.Shape) error {
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return nil
}

// maxNormEpsilon keeps the rescale finite for all-zero slices.
const maxNormEpsilon = 1e-7

// MaxNorm rescales slices whose L2 norm exceeds MaxValue. Norms are taken
// along Axis, or over the whole weight when Axis is nil.
type MaxNorm struct {
	MaxValue float64
	Axis     *int
}

// NewMaxNorm returns MaxNorm{MaxValue: 2, Axis: 0}.
func NewMaxNorm() MaxNorm {
	return MaxNorm{MaxValue: 2, Axis: Ptr(0)}
}

// ClassName returns "MaxNorm".
func (MaxNorm) ClassName() string { return "MaxNorm" }

// Config returns maxValue and axis (nil for the whole weight).
func (m MaxNorm) Config() Config {
	cfg := Config{"maxValue": m.MaxValue, "axis": nil}
	if m.Axis != nil {
		cfg["axis"] = *m.Axis
	}
	return cfg
}

// Apply scales each slice by clip(norm, 0, MaxValue) / (norm + epsilon).
func (m MaxNorm) Apply(data []float32, shape tensor.Shape) error {
	if m.Axis == nil {
		m.rescale(data, 0, len(data), 1)
		return nil
	}
	axis, err := tensor.NormalizeAxis(*m.Axis, len(shape))
	if err != nil {
		return fmt.Errorf("MaxNorm: %w", err)
	}
	outer, axisSize, inner := tensor.SoftmaxLayout(shape, axis)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			m.rescale(data, o*axisSize*inner+i, axisSize, inner)
		}
	}
	return nil
}

// rescale handles the n values at base, base+step, ...
func (m MaxNorm) rescale(data []float32, base, n, step int) {
	v := make([]float64, n)
	for k := range v {
		v[k] = float64(data[base+k*step])
	}
	norm := floats.Norm(v, 2)
	floats.Scale(math.Min(norm, m.MaxValue)/(norm+maxNormEpsilon), v)
	for k, x := range v {
		data[base+k*step] = float32(x)
	}
}

// GetConstraint resolves a shorthand name or a serialized constraint.
// Nil resolves to nil (unconstrained).
func GetConstraint(v any) (Constraint, error) {
	if v == nil {
		return nil, nil
	}
	if c, ok := v.(Constraint); ok {
		return c, nil
	}
	className, cfg, err := parseObject("constraint", v)
	if err != nil {
		return nil, err
	}

	switch shorthandKey(className) {
	case "nonneg":
		r := newConfigReader("NonNeg", cfg)
		if err := r.done(); err != nil {
			return nil, err
		}
		return NonNeg{}, nil
	case "maxnorm":
		r := newConfigReader("MaxNorm", cfg)
		m := NewMaxNorm()
		m.MaxValue = r.float("maxValue", m.MaxValue)
		if _, present := cfg["axis"]; present {
			m.Axis = r.optInt("axis")
		}
		if err := r.done(); err != nil {
			return nil, err
		}
		if err := checkNonNegative("MaxNorm", "maxValue", m.MaxValue); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: constraint %q", ErrUnknownClass, className)
	}
}

// SerializeConstraint renders a constraint as {"className", "config"}, or
// nil for no constraint.
func SerializeConstraint(c Constraint) any {
	if c == nil {
		return nil
	}
	return serializeObject(c.ClassName(), c.Config())
}
