// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// The package wraps any tensor.Backend in a recording decorator. While
// recording is on, every supported operation is appended to a gradient
// tape; walking the tape backwards from a scalar loss yields the gradient
// of every tensor that contributed to it.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//
//	backend.Tape().StartRecording()
//	loss := model.Forward(x) // operations recorded on the tape
//	grads := backend.Tape().Backward(seed, backend)
package autodiff

import (
	"github.com/esparig/deep-learning-nanodegree/internal/autodiff"
	"github.com/esparig/deep-learning-nanodegree/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = autodiff.GradientTape

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}
