// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the training loop.
//
// A Session couples a model with its optimizer, loss criterion and
// recording backend. Fit drives the epoch loop, alternating an
// optimization pass over the training set with a validation pass over the
// test set, and returns the per-epoch History.
package train

import (
	"github.com/esparig/deep-learning-nanodegree/autodiff"
	"github.com/esparig/deep-learning-nanodegree/internal/train"
	"github.com/esparig/deep-learning-nanodegree/nn"
	"github.com/esparig/deep-learning-nanodegree/tensor"
)

// Criterion maps model outputs and targets to a scalar loss.
type Criterion[B tensor.Backend] = train.Criterion[B]

// Optimizer is the slice of the optimizer contract the loop drives.
type Optimizer = train.Optimizer

// Session bundles a model with its optimizer, criterion and backend.
type Session[B tensor.Backend] = train.Session[B]

// EpochStats captures the measurements taken at the end of one epoch.
type EpochStats = train.EpochStats

// History is the per-epoch record of a training run.
type History = train.History

// NewSession creates a training session.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	session := train.NewSession(model, optimizer, nn.NewNLLLoss(backend), backend)
//	history, err := session.Fit(5, trainLoader, testLoader)
func NewSession[B tensor.Backend](
	model nn.Module[*autodiff.Backend[B]],
	optimizer Optimizer,
	criterion Criterion[*autodiff.Backend[B]],
	backend *autodiff.Backend[B],
) *Session[B] {
	return train.NewSession(model, optimizer, criterion, backend)
}
