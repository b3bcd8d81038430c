// Package train implements the supervised training and validation loop.
//
// A Session owns everything one training run needs: the model, the
// optimizer, the loss criterion, the recording backend, and the per-epoch
// accumulators. Nothing is shared implicitly; construct a Session once and
// drive it with Fit.
package train

import (
	"io"
	"os"

	"github.com/esparig/deep-learning-nanodegree/internal/autodiff"
	"github.com/esparig/deep-learning-nanodegree/internal/nn"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Criterion maps a batch of model outputs and targets to a scalar loss
// with gradient tracking attached.
type Criterion[B tensor.Backend] interface {
	Forward(output *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B]
}

// Session bundles a model with its optimizer, criterion and backend for
// one training run.
type Session[B tensor.Backend] struct {
	model     nn.Module[*autodiff.AutodiffBackend[B]]
	optimizer Optimizer
	criterion Criterion[*autodiff.AutodiffBackend[B]]
	backend   *autodiff.AutodiffBackend[B]
	params    []*nn.Parameter[*autodiff.AutodiffBackend[B]]
	out       io.Writer
}

// Optimizer is the slice of the optim.Optimizer contract the loop drives.
type Optimizer interface {
	Step()
	ZeroGrad()
}

// NewSession creates a training session. The parameter list is captured
// once at construction.
func NewSession[B tensor.Backend](
	model nn.Module[*autodiff.AutodiffBackend[B]],
	optimizer Optimizer,
	criterion Criterion[*autodiff.AutodiffBackend[B]],
	backend *autodiff.AutodiffBackend[B],
) *Session[B] {
	return &Session[B]{
		model:     model,
		optimizer: optimizer,
		criterion: criterion,
		backend:   backend,
		params:    model.Parameters(),
		out:       os.Stdout,
	}
}

// SetOutput redirects the per-epoch report lines (default os.Stdout).
func (s *Session[B]) SetOutput(w io.Writer) {
	s.out = w
}

// Model returns the session's model.
func (s *Session[B]) Model() nn.Module[*autodiff.AutodiffBackend[B]] {
	return s.model
}

// Backend returns the session's recording backend.
func (s *Session[B]) Backend() *autodiff.AutodiffBackend[B] {
	return s.backend
}

// backward seeds the tape with a unit gradient for the scalar loss, walks
// it, and accumulates the resulting gradients onto the session parameters.
func (s *Session[B]) backward(loss *tensor.Tensor[float32, *autodiff.AutodiffBackend[B]]) error {
	seed, err := tensor.NewRaw(loss.Shape(), loss.DType(), s.backend.Device())
	if err != nil {
		return err
	}
	seed.AsFloat32()[0] = 1

	grads := s.backend.Tape().Backward(seed, s.backend)
	for _, param := range s.params {
		if grad, ok := grads[param.Tensor().Raw()]; ok {
			param.AccumulateGrad(grad)
		}
	}
	return nil
}
