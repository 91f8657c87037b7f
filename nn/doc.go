// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the advanced activation layers.
//
// # Overview
//
// This package contains:
//   - Activations: ReLU (optional max value), LeakyReLU, PReLU, ELU, ThresholdedReLU, Softmax
//   - Composition: Sequential
//   - PReLU weight helpers: initializers, regularizers, constraints
//   - Config round trip: GetConfig, Serialize, Registry
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/activations/backend/cpu"
//	    "github.com/born-ml/activations/nn"
//	    "github.com/born-ml/activations/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    relu, _ := nn.NewReLU[*cpu.Backend](nn.ReLUOptions{MaxValue: nn.Ptr(6.0)})
//	    x, _ := tensor.FromSlice([]float32{-1, 3, 9}, tensor.Shape{1, 3}, backend)
//	    y := relu.Forward(x) // [0, 3, 6]
//	}
//
// # Shape Inference
//
// Apply maps a placeholder to a placeholder without touching data:
//
//	x, _ := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape{tensor.UnknownDim, 3, 4}, "input")
//	softmax, _ := nn.NewSoftmax[*cpu.Backend](nn.SoftmaxOptions{Axis: nn.Ptr(1)})
//	out, err := softmax.Apply(x) // [null,3,4]
//
// # Configuration
//
// GetConfig returns camelCase keys. SerializePythonic renames them to
// snake_case, and Registry.DeserializePythonic reverses it:
//
//	reg := nn.NewRegistry(backend)
//	layer, err := reg.DeserializePythonic(nn.SerializePythonic(relu))
package nn
