// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/activations/internal/nn"
	"github.com/born-ml/activations/tensor"
)

// Module is the base interface for all neural network components:
// Forward computes the output, Parameters returns the learned weights.
type Module[B tensor.Backend] = nn.Module[B]

// Layer is a Module that also supports shape inference and a config round trip.
//
// Every layer exposes:
//   - ClassName, Name, Trainable, DType
//   - Apply: placeholder in, placeholder out
//   - ComputeOutputShape: shape in, shape out
//   - GetConfig: camelCase config record
type Layer[B tensor.Backend] = nn.Layer[B]

// LayerOptions holds the options shared by every layer.
type LayerOptions = nn.LayerOptions

// Config is a layer configuration record with camelCase keys.
type Config = nn.Config

// ConfigError reports an invalid option in a configuration record.
type ConfigError = nn.ConfigError

// Errors returned by layers and the registry.
var (
	ErrInvalidConfig     = nn.ErrInvalidConfig
	ErrUnknownClass      = nn.ErrUnknownClass
	ErrNotBuilt          = nn.ErrNotBuilt
	ErrIncompatibleShape = nn.ErrIncompatibleShape
)

// Ptr returns a pointer to v, for optional fields in option structs.
func Ptr[T any](v T) *T {
	return nn.Ptr(v)
}

// Parameter is a named weight owned by a layer, optionally regularized
// and constrained.
//
// Example:
//
//	prelu.Build(tensor.SymbolicShape{tensor.UnknownDim, 4})
//	for _, p := range prelu.Parameters() {
//	    fmt.Println(p.Name(), p.Tensor().Shape())
//	}
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
