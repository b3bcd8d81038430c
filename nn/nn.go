// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/esparig/deep-learning-nanodegree/internal/nn"
	"github.com/esparig/deep-learning-nanodegree/internal/serialization"
	"github.com/esparig/deep-learning-nanodegree/tensor"
)

// Module is the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Mode selects between training-time and inference-time behavior.
type Mode = nn.Mode

// Mode constants.
const (
	Train Mode = nn.Train
	Eval  Mode = nn.Eval
)

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// ReLU applies the rectified linear unit element-wise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// LogSoftmax applies log-softmax over the last dimension.
type LogSoftmax[B tensor.Backend] = nn.LogSoftmax[B]

// NewLogSoftmax creates a new LogSoftmax module.
func NewLogSoftmax[B tensor.Backend]() *LogSoftmax[B] {
	return nn.NewLogSoftmax[B]()
}

// Dropout randomly zeroes activations during training and rescales the
// survivors by 1/(1-p). In Eval mode it is the identity.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a new Dropout module with drop probability p.
func NewDropout[B tensor.Backend](p float32) *Dropout[B] {
	return nn.NewDropout[B](p)
}

// Sequential chains modules, feeding each output to the next input.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Losses

// NLLLoss is the negative log likelihood loss over log-probabilities.
type NLLLoss[B tensor.Backend] = nn.NLLLoss[B]

// NewNLLLoss creates a new NLL loss criterion.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return nn.NewNLLLoss(backend)
}

// CrossEntropyLoss combines LogSoftmax and NLLLoss over raw logits.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a new cross entropy criterion.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss(backend)
}

// Inference helpers

// Predict returns the most likely class per row of output.
func Predict[B tensor.Backend](output *tensor.Tensor[float32, B]) []int32 {
	return nn.Predict(output)
}

// Accuracy returns the fraction of rows whose predicted class matches the
// target, in [0, 1].
func Accuracy[B tensor.Backend](output *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float32 {
	return nn.Accuracy(output, targets)
}

// Checkpointing

// CheckpointMeta carries training state alongside saved weights.
type CheckpointMeta = serialization.CheckpointMeta

// SaveParameters writes model parameters to a checkpoint file.
func SaveParameters[B tensor.Backend](path, modelType string, params []*Parameter[B], meta *CheckpointMeta) error {
	return nn.SaveParameters(path, modelType, params, meta)
}

// LoadParameters reads a checkpoint into model parameters, which must
// match in count, order, names and shapes.
func LoadParameters[B tensor.Backend](path string, params []*Parameter[B]) (*CheckpointMeta, error) {
	return nn.LoadParameters(path, params)
}
