//go:build !windows

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnavailable(t *testing.T) {
	b, err := New()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, b)
	assert.False(t, IsAvailable())
}

func TestStubPanics(t *testing.T) {
	var b Backend
	assert.PanicsWithValue(t, ErrUnavailable, func() { b.Softmax(nil, -1) })
	assert.Equal(t, "WebGPU", b.Name())
}
