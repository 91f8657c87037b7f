package nn

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Config is a layer configuration record keyed by camelCase option names.
// Values are plain data (numbers, strings, bools, nil, slices, nested Configs)
// so the record survives a JSON or YAML round trip.
type Config = map[string]any

// Common errors.
var (
	ErrInvalidConfig     = errors.New("invalid layer config")
	ErrUnknownClass      = errors.New("unknown class")
	ErrNotBuilt          = errors.New("layer is not built")
	ErrIncompatibleShape = errors.New("incompatible input shape")
	ErrDTypeMismatch     = errors.New("input dtype does not match layer dtype")
)

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Class   string // Class being configured (e.g. "ReLU", "Constant")
	Key     string // Offending option, empty when the record as a whole is wrong
	Details string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: option %q: %s", e.Class, e.Key, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Class, e.Details)
}

// Unwrap makes ConfigError match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Ptr returns a pointer to v, for optional fields in option structs.
func Ptr[T any](v T) *T {
	return &v
}

// serializeObject renders a helper object (initializer, regularizer,
// constraint or layer) as {"className", "config"}.
func serializeObject(className string, cfg Config) Config {
	return Config{"className": className, "config": cfg}
}

// parseObject accepts either a class name shorthand ("zeros", "nonNeg") or a
// {"className", "config"} record.
func parseObject(kind string, v any) (string, Config, error) {
	switch val := v.(type) {
	case string:
		return val, Config{}, nil
	case map[string]any:
		className, ok := val["className"].(string)
		if !ok || className == "" {
			return "", nil, &ConfigError{Class: kind, Key: "className", Details: "missing or not a string"}
		}
		cfg := Config{}
		if raw, present := val["config"]; present && raw != nil {
			m, ok := raw.(map[string]any)
			if !ok {
				return "", nil, &ConfigError{Class: kind, Key: "config", Details: fmt.Sprintf("expected an object, got %T", raw)}
			}
			cfg = m
		}
		for k := range val {
			if k != "className" && k != "config" {
				return "", nil, &ConfigError{Class: kind, Key: k, Details: "unexpected key"}
			}
		}
		return className, cfg, nil
	default:
		return "", nil, &ConfigError{Class: kind, Details: fmt.Sprintf("expected a class name or an object, got %T", v)}
	}
}

// shorthandKey folds "RandomUniform", "random_uniform" and "randomUniform"
// to the same lookup key.
func shorthandKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// configReader reads typed values out of a Config and remembers which keys
// were consumed so leftovers can be reported.
type configReader struct {
	class string
	cfg   Config
	used  map[string]bool
	err   error
}

func newConfigReader(class string, cfg Config) *configReader {
	return &configReader{class: class, cfg: cfg, used: make(map[string]bool, len(cfg))}
}

func (r *configReader) fail(key, format string, args ...any) {
	if r.err == nil {
		r.err = &ConfigError{Class: r.class, Key: key, Details: fmt.Sprintf(format, args...)}
	}
}

func (r *configReader) lookup(key string) (any, bool) {
	r.used[key] = true
	v, ok := r.cfg[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// optFloat returns nil when the key is absent or null.
func (r *configReader) optFloat(key string) *float64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(key, "expected a number, got %T", v)
		return nil
	}
	return &f
}

func (r *configReader) float(key string, def float64) float64 {
	if f := r.optFloat(key); f != nil {
		return *f
	}
	return def
}

func (r *configReader) optInt(key string) *int {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	i, ok := toInt(v)
	if !ok {
		r.fail(key, "expected an integer, got %v", v)
		return nil
	}
	return &i
}

// intList accepts a single integer or a list of integers.
func (r *configReader) intList(key string) []int {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	if i, ok := toInt(v); ok {
		return []int{i}
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []int:
		return append([]int(nil), list...)
	default:
		r.fail(key, "expected an integer or a list of integers, got %T", v)
		return nil
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, ok := toInt(item)
		if !ok {
			r.fail(key, "element %d: expected an integer, got %v", i, item)
			return nil
		}
		out[i] = n
	}
	return out
}

func (r *configReader) str(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "expected a string, got %T", v)
		return def
	}
	return s
}

func (r *configReader) optBool(key string) *bool {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, "expected a bool, got %T", v)
		return nil
	}
	return &b
}

func (r *configReader) raw(key string) any {
	v, _ := r.lookup(key)
	return v
}

// done reports the first conversion error, or any keys nobody asked for.
func (r *configReader) done() error {
	if r.err != nil {
		return r.err
	}
	var unknown []string
	for k := range r.cfg {
		if !r.used[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &ConfigError{Class: r.class, Details: fmt.Sprintf("unknown options %v", unknown)}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true //nolint:gosec // G115: config integers are small axis indices
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
