// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the activation kernels.
//
// # Overview
//
// This package implements:
//   - Pure Go kernels (no CGO)
//   - Float32 and Float64 support
//   - Element-wise kernels split into chunks, softmax split by rows
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
//	    x, _ := tensor.FromSlice([]float32{-1, 0.5, 3}, tensor.Shape{1, 3}, backend)
//	    softmax, _ := nn.NewSoftmax[*cpu.Backend](nn.SoftmaxOptions{})
//	    y := softmax.Forward(x)
//	}
package cpu
