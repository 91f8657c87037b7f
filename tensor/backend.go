// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/activations/internal/tensor"

// Backend defines the kernels a compute backend provides for the
// activation layers. Backends panic on invalid arguments.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel over elements or rows
//   - backend/webgpu: WGSL compute shaders (Windows)
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{-1, 2}, tensor.Shape{2}, backend)
//	y := backend.ReLU(x.Raw(), tensor.DefaultReLUParams())
type Backend = tensor.Backend

// ReLUParams configures Backend.ReLU.
type ReLUParams = tensor.ReLUParams

// DefaultReLUParams returns max(x, 0) with no upper bound.
func DefaultReLUParams() ReLUParams {
	return tensor.DefaultReLUParams()
}

// MockBackend runs the reference kernels. Useful in tests.
type MockBackend = tensor.MockBackend

// NewMockBackend creates a MockBackend.
func NewMockBackend() *MockBackend {
	return tensor.NewMockBackend()
}
