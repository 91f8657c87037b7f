package tensor

import (
	"testing"
)

// RawTensor Tests

func TestNewRawZeroed(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", raw.ByteSize())
	}
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}

	if _, err := NewRaw(Shape{0, 3}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestRawTensorScalar(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw scalar: %v", err)
	}
	if raw.NumElements() != 1 || len(raw.AsFloat64()) != 1 {
		t.Errorf("scalar tensor should hold one element, got %d", raw.NumElements())
	}
}

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool, CPU)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[0] = true
	if !raw.AsBool()[0] {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestRawTensorWrongDTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat64 on float32 tensor should panic")
		}
	}()
	_ = raw.AsFloat64()
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	raw.AsFloat32()[0] = 1

	clone := raw.Clone()
	clone.AsFloat32()[0] = 2

	if raw.AsFloat32()[0] != 1 {
		t.Error("Clone must not share data with the original")
	}
	if !clone.Shape().Equal(raw.Shape()) || clone.DType() != raw.DType() {
		t.Error("Clone must keep shape and dtype")
	}
}

func TestRawTensorWithDevice(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	view := raw.WithDevice(WebGPU)
	if view.Device() != WebGPU {
		t.Errorf("Device = %v, want WebGPU", view.Device())
	}
	view.AsFloat32()[1] = 3
	if raw.AsFloat32()[1] != 3 {
		t.Error("WithDevice should share data")
	}
}

func TestDeviceString(t *testing.T) {
	if CPU.String() != "CPU" || WebGPU.String() != "WebGPU" || Device(42).String() != "Unknown" {
		t.Error("unexpected device names")
	}
}
