// Package autodiff implements automatic differentiation using the
// decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient
// tracking through a GradientTape:
//   - The forward computation is delegated to the wrapped backend.
//   - While the tape is recording, each differentiable operation is
//     appended to it.
//   - Tape.Backward walks the recorded operations in reverse and applies
//     the chain rule.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	// ... forward pass, loss ...
//	grads := backend.Tape().Backward(seed, backend)
package autodiff

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/autodiff/ops"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements tensor.Backend and records operations in a GradientTape.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{inner: backend, tape: NewGradientTape()}
}

// Tape returns the gradient tape for recording control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// Transpose transposes a 2D tensor and records the operation.
func (b *AutodiffBackend[B]) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Transpose(x)
	b.tape.Record(ops.NewTransposeOp(x, result))
	return result
}

// Reshape reshapes a tensor and records the operation.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// MulScalar multiplies by a scalar. Not recorded: the loop only uses it on
// gradients and masks, never inside a differentiated forward pass.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return b.inner.MulScalar(x, scalar)
}

// AddScalar adds a scalar. Not recorded, same as MulScalar.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return b.inner.AddScalar(x, scalar)
}

// Exp computes the element-wise exponential. Not recorded; used to turn
// log-probabilities into probabilities for reporting only.
func (b *AutodiffBackend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Exp(x)
}

// Sum computes the total sum. Not recorded.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Sum(x)
}

// Argmax returns per-row arg-max indices. Not differentiable.
func (b *AutodiffBackend[B]) Argmax(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Argmax(x)
}

// ReLU applies the rectified linear unit and records the operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("relu: %v", err))
	}

	xData := x.AsFloat32()
	resData := result.AsFloat32()
	for i, v := range xData {
		if v > 0 {
			resData[i] = v
		}
	}

	b.tape.Record(ops.NewReLUOp(x, result))
	return result
}

// LogSoftmax computes row-wise log-softmax and records the operation.
func (b *AutodiffBackend[B]) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.LogSoftmax(x)
	b.tape.Record(ops.NewLogSoftmaxOp(x, result))
	return result
}

// NLL computes the negative log-likelihood loss over a batch of
// log-probabilities and records the operation.
//
// The returned tensor is a single-element scalar holding the batch mean.
func (b *AutodiffBackend[B]) NLL(logProbs, targets *tensor.RawTensor) *tensor.RawTensor {
	shape := logProbs.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("nll: expected 2D log-probabilities, got shape %v", shape))
	}
	batch, classes := shape[0], shape[1]

	targetData := targets.AsInt32()
	if len(targetData) != batch {
		panic(fmt.Sprintf("nll: %d targets for batch of %d", len(targetData), batch))
	}

	logData := logProbs.AsFloat32()
	var total float32
	for i := 0; i < batch; i++ {
		class := int(targetData[i])
		if class < 0 || class >= classes {
			panic(fmt.Sprintf("nll: target index %d out of range [0, %d)", class, classes))
		}
		total -= logData[i*classes+class]
	}

	result, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, b.Device())
	if err != nil {
		panic(fmt.Sprintf("nll: %v", err))
	}
	result.AsFloat32()[0] = total / float32(batch)

	b.tape.Record(ops.NewNLLOp(logProbs, targets, result))
	return result
}
