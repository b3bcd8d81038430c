package nn

import (
	"math"
	"math/rand"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Xavier initializes a weight tensor with the Glorot uniform distribution
// U(-bound, bound) where bound = sqrt(6 / (fanIn + fanOut)), keeping the
// activation variance roughly constant across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}
	return t
}
