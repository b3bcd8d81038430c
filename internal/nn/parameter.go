package nn

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The gradient contract is explicit: AccumulateGrad ADDS into the stored
// gradient (gradients are additive across backward passes), and ZeroGrad
// clears it. The training loop must clear before every optimization step,
// otherwise gradients from the previous batch contaminate the update.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.RawTensor // nil until the first accumulation
}

// NewParameter creates a new trainable parameter around an initialized
// tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the accumulated gradient, or nil if none has been
// accumulated since the last ZeroGrad.
func (p *Parameter[B]) Grad() *tensor.RawTensor {
	return p.grad
}

// AccumulateGrad adds grad into the stored gradient. The incoming tensor
// is copied, so later tape reuse cannot alias the accumulator.
func (p *Parameter[B]) AccumulateGrad(grad *tensor.RawTensor) {
	if !grad.Shape().Equal(p.tensor.Shape()) {
		panic(fmt.Sprintf("parameter %q: gradient shape %v does not match parameter shape %v",
			p.name, grad.Shape(), p.tensor.Shape()))
	}
	if p.grad == nil {
		p.grad = grad.Clone()
		return
	}
	acc := p.grad.AsFloat32()
	for i, v := range grad.AsFloat32() {
		acc[i] += v
	}
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
