// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for the activation kernels.
//
// float32 tensors run as WGSL compute shaders. The GPU path is built on
// Windows; elsewhere New returns ErrUnavailable.
//
// Example:
//
//	var backend tensor.Backend = cpu.New()
//	if gpu, err := webgpu.New(); err == nil {
//	    defer gpu.Release()
//	    backend = gpu
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/activations/internal/backend/webgpu"
	"github.com/born-ml/activations/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ErrUnavailable is returned by New when WebGPU cannot be initialized.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// New creates a WebGPU backend. Call Release when done to free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a compatible adapter is present. Useful for
// falling back to the CPU backend.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
