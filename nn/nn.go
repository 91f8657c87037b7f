// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/activations/internal/nn"
	"github.com/born-ml/activations/tensor"
)

// Default hyperparameters.
const (
	DefaultLeakyReLUAlpha = nn.DefaultLeakyReLUAlpha
	DefaultELUAlpha       = nn.DefaultELUAlpha
	DefaultTheta          = nn.DefaultTheta
)

// Activations

// ReLU computes min(max(x, 0), maxValue). A nil MaxValue means no upper bound.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// ReLUOptions configures NewReLU.
type ReLUOptions = nn.ReLUOptions

// NewReLU creates a ReLU layer.
//
// Example:
//
//	relu, err := nn.NewReLU[*cpu.Backend](nn.ReLUOptions{MaxValue: nn.Ptr(28.0)})
func NewReLU[B tensor.Backend](opts ReLUOptions) (*ReLU[B], error) {
	return nn.NewReLU[B](opts)
}

// LeakyReLU computes x for x >= 0 and alpha*x otherwise.
type LeakyReLU[B tensor.Backend] = nn.LeakyReLU[B]

// LeakyReLUOptions configures NewLeakyReLU. Alpha defaults to 0.3.
type LeakyReLUOptions = nn.LeakyReLUOptions

// NewLeakyReLU creates a LeakyReLU layer.
func NewLeakyReLU[B tensor.Backend](opts LeakyReLUOptions) (*LeakyReLU[B], error) {
	return nn.NewLeakyReLU[B](opts)
}

// PReLU is a LeakyReLU whose alpha is a learned weight shaped like the
// input without its batch dimension.
type PReLU[B tensor.Backend] = nn.PReLU[B]

// PReLUOptions configures NewPReLU.
type PReLUOptions = nn.PReLUOptions

// NewPReLU creates a PReLU layer. Alpha is created on first use.
//
// Example:
//
//	prelu, err := nn.NewPReLU(nn.PReLUOptions{
//	    AlphaInitializer: nn.Constant{Value: 0.25},
//	    SharedAxes:       []int{1, 2},
//	}, backend)
func NewPReLU[B tensor.Backend](opts PReLUOptions, backend B) (*PReLU[B], error) {
	return nn.NewPReLU(opts, backend)
}

// ELU computes x for x > 0 and alpha*(exp(x)-1) otherwise.
type ELU[B tensor.Backend] = nn.ELU[B]

// ELUOptions configures NewELU. Alpha defaults to 1.
type ELUOptions = nn.ELUOptions

// NewELU creates an ELU layer.
func NewELU[B tensor.Backend](opts ELUOptions) (*ELU[B], error) {
	return nn.NewELU[B](opts)
}

// ThresholdedReLU computes x for x > theta and 0 otherwise.
type ThresholdedReLU[B tensor.Backend] = nn.ThresholdedReLU[B]

// ThresholdedReLUOptions configures NewThresholdedReLU. Theta defaults to 1.
type ThresholdedReLUOptions = nn.ThresholdedReLUOptions

// NewThresholdedReLU creates a ThresholdedReLU layer.
func NewThresholdedReLU[B tensor.Backend](opts ThresholdedReLUOptions) (*ThresholdedReLU[B], error) {
	return nn.NewThresholdedReLU[B](opts)
}

// Softmax normalizes exponentials along an axis. A nil Axis means the last one.
type Softmax[B tensor.Backend] = nn.Softmax[B]

// SoftmaxOptions configures NewSoftmax.
type SoftmaxOptions = nn.SoftmaxOptions

// NewSoftmax creates a Softmax layer.
func NewSoftmax[B tensor.Backend](opts SoftmaxOptions) (*Softmax[B], error) {
	return nn.NewSoftmax[B](opts)
}

// Composition

// Sequential chains layers in order.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential container.
//
// Example:
//
//	model := nn.NewSequential[*cpu.Backend](relu, softmax)
//	out, err := model.Apply(placeholder)
func NewSequential[B tensor.Backend](layers ...Layer[B]) *Sequential[B] {
	return nn.NewSequential(layers...)
}

// NewSequentialWithOptions creates a Sequential container with a name, trainable flag or dtype.
func NewSequentialWithOptions[B tensor.Backend](opts LayerOptions, layers ...Layer[B]) (*Sequential[B], error) {
	return nn.NewSequentialWithOptions(opts, layers...)
}

// Configuration

// Registry maps class names to layer factories.
type Registry[B tensor.Backend] = nn.Registry[B]

// Factory builds a layer from a config record.
type Factory[B tensor.Backend] = nn.Factory[B]

// Serializable is anything with a class name and a config.
type Serializable = nn.Serializable

// NewRegistry returns a registry holding every built-in class.
func NewRegistry[B tensor.Backend](backend B) *Registry[B] {
	return nn.NewRegistry(backend)
}

// Serialize renders a layer as {"className", "config"}.
func Serialize(layer Serializable) Config {
	return nn.Serialize(layer)
}

// SerializePythonic renders a layer as {"class_name", "config"} with snake_case keys.
func SerializePythonic(layer Serializable) map[string]any {
	return nn.SerializePythonic(layer)
}

// Deserialize builds a built-in layer from {"className", "config"}.
func Deserialize[B tensor.Backend](serialized Config, backend B) (Layer[B], error) {
	return nn.Deserialize(serialized, backend)
}

// RegisteredClasses lists the built-in class names, sorted.
func RegisteredClasses() []string {
	return nn.RegisteredClasses()
}

// Weight helpers

// Initializer fills a new weight.
type Initializer = nn.Initializer

// Built-in initializers.
type (
	Zeros         = nn.Zeros
	Ones          = nn.Ones
	Constant      = nn.Constant
	RandomUniform = nn.RandomUniform
)

// Regularizer scores a weight for the training loss.
type Regularizer = nn.Regularizer

// L1L2 penalizes l1*sum|w| + l2*sum w².
type L1L2 = nn.L1L2

// Constraint projects a weight after it changes.
type Constraint = nn.Constraint

// Built-in constraints.
type (
	NonNeg  = nn.NonNeg
	MaxNorm = nn.MaxNorm
)

// GetInitializer resolves a shorthand or serialized initializer. Nil means Zeros.
func GetInitializer(v any) (Initializer, error) { return nn.GetInitializer(v) }

// GetRegularizer resolves a shorthand or serialized regularizer. Nil means none.
func GetRegularizer(v any) (Regularizer, error) { return nn.GetRegularizer(v) }

// GetConstraint resolves a shorthand or serialized constraint. Nil means none.
func GetConstraint(v any) (Constraint, error) { return nn.GetConstraint(v) }
