package ops

import (
	"fmt"
	"math"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// LogSoftmaxOp represents a row-wise log-softmax over a 2D tensor.
//
// Backward (per row, with s = softmax(x) = exp(output)):
//
//	grad_x_j = grad_j - s_j * Σ_i grad_i
type LogSoftmaxOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor // log-probabilities
}

// NewLogSoftmaxOp creates a new LogSoftmaxOp.
func NewLogSoftmaxOp(input, output *tensor.RawTensor) *LogSoftmaxOp {
	return &LogSoftmaxOp{input: input, output: output}
}

// Backward computes the input gradient from the stored log-probabilities.
func (op *LogSoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.input.Shape()
	rows, cols := shape[0], shape[1]

	gradInput, err := tensor.NewRaw(shape, op.input.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("logsoftmax backward: %v", err))
	}

	logProbs := op.output.AsFloat32()
	gradOut := outputGrad.AsFloat32()
	gradIn := gradInput.AsFloat32()
	for r := 0; r < rows; r++ {
		var rowSum float32
		for c := 0; c < cols; c++ {
			rowSum += gradOut[r*cols+c]
		}
		for c := 0; c < cols; c++ {
			i := r*cols + c
			softmax := float32(math.Exp(float64(logProbs[i])))
			gradIn[i] = gradOut[i] - softmax*rowSum
		}
	}
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *LogSoftmaxOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the log-probability tensor.
func (op *LogSoftmaxOp) Output() *tensor.RawTensor {
	return op.output
}
