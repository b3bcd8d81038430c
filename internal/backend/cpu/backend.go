// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"
	"math"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// CPUBackend implements tensor operations on the CPU. All kernels are
// synchronous and allocate a fresh result tensor.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

// binaryOp applies fn element-wise over a and b, broadcasting as needed.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, fn func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	aData := a.AsFloat32()
	bData := b.AsFloat32()
	resData := result.AsFloat32()

	if !needsBroadcast {
		// Fast path: identical shapes.
		for i := range resData {
			resData[i] = fn(aData[i], bData[i])
		}
		return result
	}

	aIdx := newBroadcastIndexer(a.Shape(), outShape)
	bIdx := newBroadcastIndexer(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()
	for i := range resData {
		resData[i] = fn(aData[aIdx.source(i, outStrides)], bData[bIdx.source(i, outStrides)])
	}
	return result
}

// broadcastIndexer maps flat output indices back to flat source indices
// for a tensor broadcast to a larger shape.
type broadcastIndexer struct {
	srcStrides []int // stride 0 on broadcast dimensions
	ndim       int
	outShape   tensor.Shape
}

func newBroadcastIndexer(src, out tensor.Shape) *broadcastIndexer {
	strides := make([]int, len(out))
	srcStrides := src.ComputeStrides()
	offset := len(out) - len(src)
	for i := range out {
		si := i - offset
		if si < 0 || src[si] == 1 {
			strides[i] = 0
			continue
		}
		strides[i] = srcStrides[si]
	}
	return &broadcastIndexer{srcStrides: strides, ndim: len(out), outShape: out}
}

func (bi *broadcastIndexer) source(flat int, outStrides []int) int {
	src := 0
	for i := 0; i < bi.ndim; i++ {
		coord := flat / outStrides[i] % bi.outShape[i]
		src += coord * bi.srcStrides[i]
	}
	return src
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unaryOp("mulscalar", x, func(v float32) float32 { return v * scalar })
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unaryOp("addscalar", x, func(v float32) float32 { return v + scalar })
}

// Exp computes the element-wise exponential.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("exp", x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

func (cpu *CPUBackend) unaryOp(name string, x *tensor.RawTensor, fn func(v float32) float32) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	xData := x.AsFloat32()
	resData := result.AsFloat32()
	for i, v := range xData {
		resData[i] = fn(v)
	}
	return result
}

// Reshape returns the tensor viewed under a new shape (shared buffer).
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Transpose transposes a 2D tensor.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: expected 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]

	result, err := tensor.NewRaw(tensor.Shape{cols, rows}, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: failed to create result tensor: %v", err))
	}

	src := t.AsFloat32()
	dst := result.AsFloat32()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst[c*rows+r] = src[r*cols+c]
		}
	}
	return result
}
