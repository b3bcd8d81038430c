package nn

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Predict returns the top-1 predicted class per example: the arg-max index
// along the class dimension. The output works equally on probabilities and
// log-probabilities, since log is monotonic.
//
// The returned slice always has exactly one prediction per input row.
func Predict[B tensor.Backend](output *tensor.Tensor[float32, B]) []int32 {
	shape := output.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Predict: expected 2D output [batch, classes], got shape %v", shape))
	}

	raw := output.Backend().Argmax(output.Raw())
	return append([]int32(nil), raw.AsInt32()...)
}

// Accuracy computes the fraction of examples whose top-1 prediction
// matches the label. The result is in [0, 1]: exactly 1 when every
// prediction matches, exactly 0 when none do.
func Accuracy[B tensor.Backend](output *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float32 {
	predictions := Predict(output)
	targetData := targets.Data()
	if len(predictions) != len(targetData) {
		panic(fmt.Sprintf("Accuracy: %d predictions for %d labels", len(predictions), len(targetData)))
	}

	correct := 0
	for i, p := range predictions {
		if p == targetData[i] {
			correct++
		}
	}
	return float32(correct) / float32(len(predictions))
}
