// Package webgpu implements the activation kernels as WGSL compute shaders.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// The GPU path is built on Windows only. Elsewhere New returns
// ErrUnavailable and callers fall back to the CPU backend.
package webgpu

import "errors"

// ErrUnavailable is returned when no WebGPU adapter or native library can be used.
var ErrUnavailable = errors.New("webgpu: not available")
