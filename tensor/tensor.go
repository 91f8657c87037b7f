// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/activations/internal/tensor"
)

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// ParseDataType parses a name such as "float32".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor.
//
// T is the data type, B the backend that computes on it.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New wraps a RawTensor in a typed tensor.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T float32 | float64, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T](shape, b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// RandUniform creates a float32 tensor uniform in [minVal, maxVal).
func RandUniform[B Backend](shape Shape, minVal, maxVal float32, rng *rand.Rand, b B) *Tensor[float32, B] {
	return tensor.RandUniform(shape, minVal, maxVal, rng, b)
}

// UnknownDim marks a dimension whose size is not known, typically batch.
const UnknownDim = tensor.UnknownDim

// SymbolicShape is a shape that may contain UnknownDim.
type SymbolicShape = tensor.SymbolicShape

// SymbolicTensor is a placeholder with a dtype and shape but no data.
type SymbolicTensor = tensor.SymbolicTensor

// NewSymbolic creates a placeholder.
//
// Example:
//
//	x, _ := tensor.NewSymbolic(tensor.Float32, tensor.SymbolicShape{tensor.UnknownDim, 3, 4}, "input")
func NewSymbolic(dtype DataType, shape SymbolicShape, name string) (*SymbolicTensor, error) {
	return tensor.NewSymbolic(dtype, shape, name)
}
