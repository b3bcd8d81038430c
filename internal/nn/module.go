// Package nn implements neural network modules for the
// deep-learning-nanodegree toolkit.
//
// This package provides the building blocks used by the training loop:
//   - Module interface: base interface for all network components
//   - Parameter: trainable tensors with explicit gradient accumulation
//   - Linear, ReLU, Dropout, LogSoftmax, Sequential
//   - Loss functions: NLLLoss, CrossEntropyLoss
//   - Classification metrics: Predict, Accuracy
package nn

import (
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Mode is the explicit behavioral state of a module.
//
// Layers that regularize stochastically (Dropout) behave differently
// between the two modes; the training loop is responsible for setting the
// mode before each phase. Toggling the mode never changes parameter
// values.
type Mode int

// Module modes.
const (
	// Train enables training-time behavior (stochastic regularization on).
	Train Mode = iota
	// Eval enables inference-time behavior (deterministic forward pass).
	Eval
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Train:
		return "train"
	case Eval:
		return "eval"
	default:
		return "unknown"
	}
}

// Module is the base interface for all neural network components.
//
// Modules compose into architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(128, 10, backend),
//	    nn.NewLogSoftmax[B](),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module for a batch of inputs.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including nested module parameters. Weight-free modules return nil.
	Parameters() []*Parameter[B]

	// SetMode switches the module between training and evaluation
	// behavior. Must be a no-op on parameter values.
	SetMode(mode Mode)
}
