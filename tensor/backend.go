// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Backend is the interface every compute implementation satisfies.
//
// Backends operate on RawTensors; the generic Tensor wrappers route their
// operations through the backend they were created with.
type Backend = tensor.Backend
