// Package optim implements optimization algorithms for training neural
// networks.
//
// Optimizers read the gradients accumulated on model parameters and apply
// one descent step in place. The loop drives them in a fixed order every
// batch:
//
//	optimizer.ZeroGrad()            // clear accumulated gradients
//	// ... forward, loss, backward, accumulate ...
//	optimizer.Step()                // apply one update
package optim

import (
	"github.com/esparig/deep-learning-nanodegree/internal/nn"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter that holds an
	// accumulated gradient. Parameters without a gradient are skipped.
	Step()

	// ZeroGrad clears the accumulated gradient of every parameter.
	// Must be called before each backward pass: gradient accumulation is
	// additive, and a stale gradient contaminates the next update.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float32
}

// zeroGrads clears the accumulated gradients of all params.
func zeroGrads[B tensor.Backend](params []*nn.Parameter[B]) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
