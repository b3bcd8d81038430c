package ops

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// reduceBroadcast sums a gradient down to the shape of an input that was
// broadcast during the forward pass. If the shapes already match, the
// gradient is returned unchanged.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(target) {
		return grad
	}

	result, err := tensor.NewRaw(target, grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("reduceBroadcast: %v", err))
	}

	// Stride 0 on dimensions the input contributed via broadcasting, so
	// every broadcast position accumulates into the same source element.
	targetStrides := target.ComputeStrides()
	mapped := make([]int, len(gradShape))
	offset := len(gradShape) - len(target)
	for i := range gradShape {
		ti := i - offset
		if ti < 0 || target[ti] == 1 {
			mapped[i] = 0
			continue
		}
		mapped[i] = targetStrides[ti]
	}

	gradStrides := gradShape.ComputeStrides()
	gradData := grad.AsFloat32()
	resData := result.AsFloat32()
	for flat := range gradData {
		src := 0
		for i := range gradShape {
			coord := flat / gradStrides[i] % gradShape[i]
			src += coord * mapped[i]
		}
		resData[src] += gradData[flat]
	}
	return result
}
