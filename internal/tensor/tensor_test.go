package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// DType tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Int32, 4},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3}, 6},
		{Shape{1}, 1},
		{Shape{4, 5, 6}, 120},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i, s := range want {
		if strides[i] != s {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b    Shape
		want    Shape
		needs   bool
		wantErr bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false, false},
		{Shape{2, 3}, Shape{1, 3}, Shape{2, 3}, true, false},
		{Shape{4, 1}, Shape{1, 5}, Shape{4, 5}, true, false},
		{Shape{3}, Shape{2, 3}, Shape{2, 3}, true, false},
		{Shape{2, 3}, Shape{2, 4}, nil, false, true},
	}

	for _, tt := range tests {
		got, needs, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) accepted incompatible shapes", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) failed: %v", tt.a, tt.b, err)
			continue
		}
		assertEqualShape(t, tt.want, got, "broadcast shape")
		if needs != tt.needs {
			t.Errorf("BroadcastShapes(%v, %v) needs = %v, want %v", tt.a, tt.b, needs, tt.needs)
		}
	}
}

// RawTensor tests

func TestNewRawZeroed(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestRawTensorCloneIndependent(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	raw.AsFloat32()[0] = 1

	clone := raw.Clone()
	clone.AsFloat32()[0] = 42

	assertEqualFloat32(t, 1, raw.AsFloat32()[0], "original after clone write")
	assertEqualFloat32(t, 42, clone.AsFloat32()[0], "clone")
}

func TestRawTensorWithShape(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	view, err := raw.WithShape(Shape{3, 2})
	if err != nil {
		t.Fatalf("WithShape failed: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, view.Shape(), "view shape")

	// Views share the buffer.
	view.AsFloat32()[0] = 7
	assertEqualFloat32(t, 7, raw.AsFloat32()[0], "shared buffer")

	if _, err := raw.WithShape(Shape{4}); err == nil {
		t.Error("WithShape accepted a shape with a different element count")
	}
}

func TestRawTensorAsFloat32WrongDType(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Int32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on int32 tensor did not panic")
		}
	}()
	raw.AsFloat32()
}
