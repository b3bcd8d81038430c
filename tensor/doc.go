// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations.
//
// # Overview
//
// Tensors are the fundamental data structure of this framework. The
// package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - A Backend interface for pluggable compute implementations
//
// # Basic Usage
//
//	import (
//	    "github.com/esparig/deep-learning-nanodegree/backend/cpu"
//	    "github.com/esparig/deep-learning-nanodegree/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor
