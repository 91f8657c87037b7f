// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types consumed by the activation layers.
//
// # Overview
//
// Two kinds of tensor flow through a layer:
//   - Tensor[T, B]: concrete data computed by a Backend
//   - SymbolicTensor: a dtype and a shape with no data, used for shape inference
//
// A SymbolicShape may contain UnknownDim (rendered as null), usually for the
// batch dimension.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/activations/backend/cpu"
//	    "github.com/born-ml/activations/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float32{-1, 2, -3, 4}, tensor.Shape{2, 2}, backend)
//	    placeholder, _ := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape{tensor.UnknownDim, 2}, "input")
//	}
//
// # Device Support
//
//   - CPU: Pure Go implementation, parallel over elements or softmax rows
//   - WebGPU: WGSL compute shaders (Windows)
package tensor
