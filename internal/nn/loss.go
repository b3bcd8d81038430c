package nn

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// NLLBackend is the capability interface for backends that compute the
// negative log-likelihood loss with gradient tracking.
type NLLBackend interface {
	NLL(logProbs, targets *tensor.RawTensor) *tensor.RawTensor
}

// NLLLoss computes the negative log-likelihood loss over a batch of
// log-probabilities:
//
//	Loss = -mean(logProbs[i, targets[i]])
//
// It pairs with a LogSoftmax output layer; the composition is equivalent
// to CrossEntropyLoss over raw logits. The result is non-negative because
// log-probabilities are never positive.
type NLLLoss[B tensor.Backend] struct {
	backend B
}

// NewNLLLoss creates a new negative log-likelihood loss function.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return &NLLLoss[B]{backend: backend}
}

// Forward computes the mean NLL over the batch.
//
// Parameters:
//   - logProbs: log-probabilities with shape [batch_size, num_classes]
//   - targets: class indices with shape [batch_size]
//
// Returns a single-element scalar tensor. When the backend records
// gradients, the operation lands on the tape.
func (n *NLLLoss[B]) Forward(
	logProbs *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	if adBackend, ok := any(n.backend).(NLLBackend); ok {
		return tensor.New[float32, B](adBackend.NLL(logProbs.Raw(), targets.Raw()), n.backend)
	}

	// Plain backends get the forward value without gradient tracking.
	shape := logProbs.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("NLLLoss: log-probabilities must be 2D [batch, classes], got %v", shape))
	}
	batch, classes := shape[0], shape[1]

	targetData := targets.Data()
	if len(targetData) != batch {
		panic(fmt.Sprintf("NLLLoss: %d targets for batch of %d", len(targetData), batch))
	}

	logData := logProbs.Data()
	var total float32
	for i := 0; i < batch; i++ {
		class := int(targetData[i])
		if class < 0 || class >= classes {
			panic(fmt.Sprintf("NLLLoss: target index %d out of range [0, %d)", class, classes))
		}
		total -= logData[i*classes+class]
	}

	loss := tensor.Zeros[float32](tensor.Shape{1}, n.backend)
	loss.Data()[0] = total / float32(batch)
	return loss
}

// CrossEntropyLoss computes cross-entropy over raw logits using the
// LogSoftmax + NLL decomposition for numerical stability.
type CrossEntropyLoss[B tensor.Backend] struct {
	logSoftmax *LogSoftmax[B]
	nll        *NLLLoss[B]
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{
		logSoftmax: NewLogSoftmax[B](),
		nll:        NewNLLLoss(backend),
	}
}

// Forward computes the mean cross-entropy over the batch.
//
// Parameters:
//   - logits: unnormalized scores with shape [batch_size, num_classes]
//   - targets: class indices with shape [batch_size]
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	return c.nll.Forward(c.logSoftmax.Forward(logits), targets)
}
