package nn

import (
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// ReLUBackend is the capability interface for backends that implement the
// rectified linear unit with gradient tracking.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// ReLU is a rectified linear unit activation module: f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU element-wise.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	reluBackend, ok := any(backend).(ReLUBackend)
	if !ok {
		panic("ReLU: backend must implement the ReLU operation (wrap it with autodiff.New)")
	}
	return tensor.New[float32, B](reluBackend.ReLU(input.Raw()), backend)
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// SetMode is a no-op: ReLU behaves identically in both modes.
func (r *ReLU[B]) SetMode(Mode) {}

// LogSoftmax converts logits into log-probabilities along the class
// dimension. Exponentiating a row yields non-negative scores summing to
// one, and the arg-max is unchanged, so top-1 predictions can be read from
// either form.
type LogSoftmax[B tensor.Backend] struct{}

// NewLogSoftmax creates a new LogSoftmax module.
func NewLogSoftmax[B tensor.Backend]() *LogSoftmax[B] {
	return &LogSoftmax[B]{}
}

// Forward computes row-wise log-softmax over [batch, classes] logits.
func (s *LogSoftmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.LogSoftmax(input.Raw()), backend)
}

// Parameters returns nil (LogSoftmax has no trainable parameters).
func (s *LogSoftmax[B]) Parameters() []*Parameter[B] {
	return nil
}

// SetMode is a no-op: LogSoftmax behaves identically in both modes.
func (s *LogSoftmax[B]) SetMode(Mode) {}
