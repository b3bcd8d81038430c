package ops

import "github.com/esparig/deep-learning-nanodegree/internal/tensor"

// TransposeOp represents a 2D transpose: output = x^T.
//
// Even though transpose carries no arithmetic, it must be recorded: the
// Linear layer multiplies by the transposed weight, and without this op the
// weight parameter itself would never receive a gradient.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.RawTensor) *TransposeOp {
	return &TransposeOp{input: input, output: output}
}

// Backward transposes the output gradient back to the input orientation.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad)}
}

// Inputs returns the input tensor [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor x^T.
func (op *TransposeOp) Output() *tensor.RawTensor {
	return op.output
}
