package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, inferDataType[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T float32 | float64, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// RandUniform creates a float32 tensor with values uniformly distributed in
// [minVal, maxVal). A nil rng uses a time-independent default source.
func RandUniform[B Backend](shape Shape, minVal, maxVal float32, rng *rand.Rand, b B) *Tensor[float32, B] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) //nolint:gosec // G404: weight init is not security-sensitive
	}
	t := Zeros[float32, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = minVal + rng.Float32()*(maxVal-minVal)
	}
	return t
}
