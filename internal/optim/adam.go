package optim

import (
	"math"

	"github.com/esparig/deep-learning-nanodegree/internal/nn"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2014) with bias
// correction.
//
// Per element:
//
//	m = beta1*m + (1-beta1)*grad
//	v = beta2*v + (1-beta2)*grad²
//	mHat = m / (1 - beta1^t)
//	vHat = v / (1 - beta2^t)
//	param -= lr * mHat / (sqrt(vHat) + eps)
type Adam[B tensor.Backend] struct {
	params []*nn.Parameter[B]
	lr     float32
	betas  [2]float32
	eps    float32
	step   int
	m      map[*nn.Parameter[B]][]float32
	v      map[*nn.Parameter[B]][]float32
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Exponential decay rates (default: 0.9, 0.999)
	Eps   float32    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer over the given parameters.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig) *Adam[B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float32{} {
		config.Betas = [2]float32{0.9, 0.999}
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam[B]{
		params: params,
		lr:     config.LR,
		betas:  config.Betas,
		eps:    config.Eps,
		m:      make(map[*nn.Parameter[B]][]float32),
		v:      make(map[*nn.Parameter[B]][]float32),
	}
}

// Step applies one bias-corrected Adam update to every parameter with a
// gradient.
func (a *Adam[B]) Step() {
	a.step++
	beta1, beta2 := a.betas[0], a.betas[1]
	bc1 := 1 - float32(math.Pow(float64(beta1), float64(a.step)))
	bc2 := 1 - float32(math.Pow(float64(beta2), float64(a.step)))

	for _, param := range a.params {
		grad := param.Grad()
		if grad == nil {
			continue
		}

		data := param.Tensor().Data()
		gradData := grad.AsFloat32()

		m, ok := a.m[param]
		if !ok {
			m = make([]float32, len(data))
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = make([]float32, len(data))
			a.v[param] = v
		}

		for i := range data {
			g := gradData[i]
			m[i] = beta1*m[i] + (1-beta1)*g
			v[i] = beta2*v[i] + (1-beta2)*g*g
			mHat := m[i] / bc1
			vHat := v[i] / bc2
			data[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam[B]) ZeroGrad() {
	zeroGrads(a.params)
}

// LR returns the current learning rate.
func (a *Adam[B]) LR() float32 {
	return a.lr
}
