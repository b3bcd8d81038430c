// Package ops defines the differentiable operations recorded on the
// gradient tape. Each operation keeps references to its forward inputs and
// output, and knows how to turn the output gradient into input gradients.
package ops

import "github.com/esparig/deep-learning-nanodegree/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// It records its inputs and output during the forward pass and computes
// input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input tensor, in input order. A nil entry
	// means no gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
