package nn

import (
	"fmt"
	"math/rand"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Dropout randomly zeroes elements of the input with probability p during
// training, scaling the survivors by 1/(1-p) so the expected activation is
// unchanged (inverted dropout).
//
// In Eval mode the layer is the identity. The mode switch affects only the
// forward computation; Dropout owns no parameters, so toggling modes can
// never perturb model weights.
//
// The forward pass is expressed as a multiplication by a fixed 0/scale
// mask, so a recording backend differentiates it with no dedicated op: the
// backward pass of the multiplication routes gradients through surviving
// units only.
type Dropout[B tensor.Backend] struct {
	p    float32
	mode Mode
	rng  *rand.Rand
}

// NewDropout creates a new Dropout layer with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: probability must be in [0, 1), got %v", p))
	}
	//nolint:gosec // math/rand for regularization noise (not security-critical)
	return &Dropout[B]{p: p, mode: Train, rng: rand.New(rand.NewSource(rand.Int63()))}
}

// Seed replaces the layer's random source, for reproducible runs.
func (d *Dropout[B]) Seed(seed int64) {
	d.rng = rand.New(rand.NewSource(seed)) //nolint:gosec
}

// Forward applies dropout in Train mode and is the identity in Eval mode.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if d.mode == Eval || d.p == 0 {
		return input
	}

	backend := input.Backend()
	mask := tensor.Zeros[float32](input.Shape(), backend)
	maskData := mask.Data()
	scale := 1 / (1 - d.p)
	for i := range maskData {
		if d.rng.Float32() >= d.p {
			maskData[i] = scale
		}
	}

	return input.Mul(mask)
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}

// SetMode switches between stochastic (Train) and identity (Eval)
// behavior.
func (d *Dropout[B]) SetMode(mode Mode) {
	d.mode = mode
}

// Mode returns the current mode.
func (d *Dropout[B]) Mode() Mode {
	return d.mode
}

// P returns the drop probability.
func (d *Dropout[B]) P() float32 {
	return d.p
}
