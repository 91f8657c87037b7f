package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/activations/internal/tensor"
)

// Initializer fills a new weight with its starting values.
type Initializer interface {
	ClassName() string
	Config() Config
	// Initialize writes len(data) values for a weight of the given shape.
	Initialize(data []float32, shape tensor.Shape)
}

// Zeros initializes every value to 0.
type Zeros struct{}

// ClassName returns "Zeros".
func (Zeros) ClassName() string { return "Zeros" }

// Config returns an empty config.
func (Zeros) Config() Config { return Config{} }

// Initialize fills data with zeros.
func (Zeros) Initialize(data []float32, _ tensor.Shape) {
	clear(data)
}

// Ones initializes every value to 1.
type Ones struct{}

// ClassName returns "Ones".
func (Ones) ClassName() string { return "Ones" }

// Config returns an empty config.
func (Ones) Config() Config { return Config{} }

// Initialize fills data with ones.
func (Ones) Initialize(data []float32, _ tensor.Shape) {
	for i := range data {
		data[i] = 1
	}
}

// Constant initializes every value to Value.
type Constant struct {
	Value float64
}

// ClassName returns "Constant".
func (Constant) ClassName() string { return "Constant" }

// Config returns {"value": Value}.
func (c Constant) Config() Config { return Config{"value": c.Value} }

// Initialize fills data with Value.
func (c Constant) Initialize(data []float32, _ tensor.Shape) {
	v := float32(c.Value)
	for i := range data {
		data[i] = v
	}
}

// RandomUniform draws values from U(Minval, Maxval). A nil Seed draws from
// the global source.
type RandomUniform struct {
	Minval float64
	Maxval float64
	Seed   *int64
}

// NewRandomUniform returns U(-0.05, 0.05) without a seed.
func NewRandomUniform() RandomUniform {
	return RandomUniform{Minval: -0.05, Maxval: 0.05}
}

// ClassName returns "RandomUniform".
func (RandomUniform) ClassName() string { return "RandomUniform" }

// Config returns the bounds and seed.
func (u RandomUniform) Config() Config {
	cfg := Config{"minval": u.Minval, "maxval": u.Maxval, "seed": nil}
	if u.Seed != nil {
		cfg["seed"] = *u.Seed
	}
	return cfg
}

// Initialize fills data with uniform samples.
func (u RandomUniform) Initialize(data []float32, _ tensor.Shape) {
	sample := rand.Float64 //nolint:gosec // G404: weight init is not security-sensitive
	if u.Seed != nil {
		sample = rand.New(rand.NewSource(*u.Seed)).Float64 //nolint:gosec // G404: same as above
	}
	for i := range data {
		data[i] = float32(u.Minval + sample()*(u.Maxval-u.Minval))
	}
}

// GetInitializer resolves a shorthand name or a serialized initializer.
// Nil resolves to Zeros.
func GetInitializer(v any) (Initializer, error) {
	if v == nil {
		return Zeros{}, nil
	}
	if initializer, ok := v.(Initializer); ok {
		return initializer, nil
	}
	className, cfg, err := parseObject("initializer", v)
	if err != nil {
		return nil, err
	}

	switch shorthandKey(className) {
	case "zeros", "zero":
		r := newConfigReader("Zeros", cfg)
		return Zeros{}, r.done()
	case "ones", "one":
		r := newConfigReader("Ones", cfg)
		return Ones{}, r.done()
	case "constant":
		r := newConfigReader("Constant", cfg)
		c := Constant{Value: r.float("value", 0)}
		return c, r.done()
	case "randomuniform", "uniform":
		r := newConfigReader("RandomUniform", cfg)
		def := NewRandomUniform()
		u := RandomUniform{
			Minval: r.float("minval", def.Minval),
			Maxval: r.float("maxval", def.Maxval),
		}
		if seed := r.optInt("seed"); seed != nil {
			u.Seed = Ptr(int64(*seed))
		}
		if err := r.done(); err != nil {
			return nil, err
		}
		if u.Maxval < u.Minval {
			return nil, &ConfigError{Class: "RandomUniform", Key: "maxval", Details: fmt.Sprintf("%v is below minval %v", u.Maxval, u.Minval)}
		}
		return u, nil
	default:
		return nil, fmt.Errorf("%w: initializer %q", ErrUnknownClass, className)
	}
}

// SerializeInitializer renders an initializer as {"className", "config"}.
func SerializeInitializer(initializer Initializer) Config {
	return serializeObject(initializer.ClassName(), initializer.Config())
}
