// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network building blocks.
//
// Modules are composed with Sequential and share a single Mode switch:
// Train enables stochastic behavior such as dropout, Eval disables it.
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*autodiff.Backend[*cpu.Backend]](),
//	    nn.NewDropout[*autodiff.Backend[*cpu.Backend]](0.2),
//	    nn.NewLinear(128, 10, backend),
//	    nn.NewLogSoftmax[*autodiff.Backend[*cpu.Backend]](),
//	)
//	model.SetMode(nn.Eval)
package nn
