// Package serialization converts layer configurations between the internal
// camelCase naming and the external snake_case ("pythonic") naming, and
// encodes serialized configurations as JSON or YAML.
//
// The layout of a serialized layer is
//
//	{"class_name": "ReLU", "config": {"max_value": 28, "name": "re_lu_1", ...}}
//
// Only keys are renamed. String values, including class names, pass through
// unchanged.
//
// Example usage:
//
//	external := serialization.ToPythonic(layer.GetConfig())
//	data, err := serialization.Marshal(external, serialization.YAML)
//	...
//	decoded, err := serialization.Unmarshal(data, serialization.YAML)
//	internal := serialization.FromPythonic(decoded)
package serialization
