package nn

import (
	"fmt"
	"sort"
	"sync"

	"github.com/born-ml/activations/internal/serialization"
	"github.com/born-ml/activations/internal/tensor"
)

// Factory builds a layer from a camelCase config.
type Factory[B tensor.Backend] func(cfg Config, backend B) (Layer[B], error)

// Registry maps class names to layer factories for one backend.
type Registry[B tensor.Backend] struct {
	backend B

	mu        sync.RWMutex
	factories map[string]Factory[B]
}

// NewRegistry creates a registry with every built-in layer class.
func NewRegistry[B tensor.Backend](backend B) *Registry[B] {
	r := &Registry[B]{
		backend:   backend,
		factories: make(map[string]Factory[B]),
	}

	r.Register("ReLU", layerFactory(ReLUOptionsFromConfig, func(o ReLUOptions, _ B) (*ReLU[B], error) {
		return NewReLU[B](o)
	}))
	r.Register("LeakyReLU", layerFactory(LeakyReLUOptionsFromConfig, func(o LeakyReLUOptions, _ B) (*LeakyReLU[B], error) {
		return NewLeakyReLU[B](o)
	}))
	r.Register("PReLU", layerFactory(PReLUOptionsFromConfig, NewPReLU[B]))
	r.Register("ELU", layerFactory(ELUOptionsFromConfig, func(o ELUOptions, _ B) (*ELU[B], error) {
		return NewELU[B](o)
	}))
	r.Register("ThresholdedReLU", layerFactory(ThresholdedReLUOptionsFromConfig, func(o ThresholdedReLUOptions, _ B) (*ThresholdedReLU[B], error) {
		return NewThresholdedReLU[B](o)
	}))
	r.Register("Softmax", layerFactory(SoftmaxOptionsFromConfig, func(o SoftmaxOptions, _ B) (*Softmax[B], error) {
		return NewSoftmax[B](o)
	}))
	r.Register("Sequential", func(cfg Config, _ B) (Layer[B], error) {
		s, err := sequentialFromConfig(r, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	return r
}

// layerFactory chains an options reader and a constructor into a Factory.
func layerFactory[B tensor.Backend, O any, L Layer[B]](
	read func(Config) (O, error),
	build func(O, B) (L, error),
) Factory[B] {
	return func(cfg Config, backend B) (Layer[B], error) {
		opts, err := read(cfg)
		if err != nil {
			return nil, err
		}
		layer, err := build(opts, backend)
		if err != nil {
			return nil, err
		}
		return layer, nil
	}
}

// Register adds or replaces the factory for a class name.
func (r *Registry[B]) Register(className string, factory Factory[B]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[className] = factory
}

// Get returns the factory for a class name.
func (r *Registry[B]) Get(className string) (Factory[B], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[className]
	return f, ok
}

// Classes returns the registered class names in sorted order.
func (r *Registry[B]) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromConfig builds a layer of the given class from a camelCase config.
// A nil config uses every default.
func (r *Registry[B]) FromConfig(className string, cfg Config) (Layer[B], error) {
	factory, ok := r.Get(className)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, className)
	}
	if cfg == nil {
		cfg = Config{}
	}
	layer, err := factory(cfg, r.backend)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", className, err)
	}
	return layer, nil
}

// Deserialize builds a layer from {"className", "config"}.
func (r *Registry[B]) Deserialize(serialized Config) (Layer[B], error) {
	className, cfg, err := parseObject("layer", serialized)
	if err != nil {
		return nil, err
	}
	return r.FromConfig(className, cfg)
}

// DeserializePythonic builds a layer from {"class_name", "config"} with
// snake_case option names.
func (r *Registry[B]) DeserializePythonic(serialized map[string]any) (Layer[B], error) {
	return r.Deserialize(serialization.FromPythonicMap(serialized))
}

// Serializable is the part of Layer needed to serialize it.
type Serializable interface {
	ClassName() string
	GetConfig() Config
}

// Serialize renders a layer as {"className", "config"}.
func Serialize(layer Serializable) Config {
	return serializeObject(layer.ClassName(), layer.GetConfig())
}

// SerializePythonic renders a layer as {"class_name", "config"} with
// snake_case option names.
func SerializePythonic(layer Serializable) map[string]any {
	return serialization.ToPythonicMap(Serialize(layer))
}

// Deserialize builds a layer from {"className", "config"} using the
// built-in classes.
func Deserialize[B tensor.Backend](serialized Config, backend B) (Layer[B], error) {
	return NewRegistry(backend).Deserialize(serialized)
}

// RegisteredClasses returns the built-in class names in sorted order.
func RegisteredClasses() []string {
	return NewRegistry[tensor.Backend](nil).Classes()
}
