package ops

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// NLLOp represents the negative log-likelihood loss over a batch:
//
//	output = -mean(logProbs[i, targets[i]])
//
// Backward: grad_logProbs[i, c] = -seed/batch for c == targets[i], else 0.
// Targets are class indices and receive no gradient.
type NLLOp struct {
	logProbs *tensor.RawTensor // [batch, classes]
	targets  *tensor.RawTensor // [batch] int32
	output   *tensor.RawTensor // scalar [1]
}

// NewNLLOp creates a new NLLOp.
func NewNLLOp(logProbs, targets, output *tensor.RawTensor) *NLLOp {
	return &NLLOp{logProbs: logProbs, targets: targets, output: output}
}

// Backward scatters the scalar loss gradient onto the target positions.
func (op *NLLOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.logProbs.Shape()
	batch, classes := shape[0], shape[1]

	gradInput, err := tensor.NewRaw(shape, op.logProbs.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("nll backward: %v", err))
	}

	seed := outputGrad.AsFloat32()[0]
	targets := op.targets.AsInt32()
	gradData := gradInput.AsFloat32()
	for i := 0; i < batch; i++ {
		gradData[i*classes+int(targets[i])] = -seed / float32(batch)
	}
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the differentiable input [logProbs].
func (op *NLLOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logProbs}
}

// Output returns the scalar loss tensor.
func (op *NLLOp) Output() *tensor.RawTensor {
	return op.output
}
