package cpu

import (
	"fmt"
	"math"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Sum computes the total sum as a single-element tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result tensor: %v", err))
	}
	var total float32
	for _, v := range x.AsFloat32() {
		total += v
	}
	result.AsFloat32()[0] = total
	return result
}

// LogSoftmax computes log(softmax(x)) along the last dimension of a 2D
// tensor. The max-shift (log-sum-exp trick) keeps the computation stable
// for large logits.
func (cpu *CPUBackend) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("logsoftmax: expected 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("logsoftmax: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	for r := 0; r < rows; r++ {
		row := src[r*cols : (r+1)*cols]
		out := dst[r*cols : (r+1)*cols]

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxVal))
		}
		logSumExp := float32(math.Log(sumExp)) + maxVal

		for i, v := range row {
			out[i] = v - logSumExp
		}
	}
	return result
}

// Argmax returns the per-row index of the maximum value of a 2D tensor as
// an int32 tensor of shape [rows]. Ties resolve to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("argmax: expected 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]

	result, err := tensor.NewRaw(tensor.Shape{rows}, tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("argmax: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsInt32()
	for r := 0; r < rows; r++ {
		row := src[r*cols : (r+1)*cols]
		best := 0
		for i, v := range row {
			if v > row[best] {
				best = i
			}
		}
		dst[r] = int32(best)
	}
	return result
}
