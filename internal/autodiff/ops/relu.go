package ops

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// ReLUOp represents a rectified linear unit activation: output = max(0, x).
//
// Backward: d(ReLU(x))/dx = 1 where x > 0, else 0.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward masks the output gradient to the positive region of the input.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("relu backward: %v", err))
	}

	inputData := op.input.AsFloat32()
	gradData := outputGrad.AsFloat32()
	resData := gradInput.AsFloat32()
	for i, v := range inputData {
		if v > 0 {
			resData[i] = gradData[i]
		}
	}
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor max(0, x).
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}
