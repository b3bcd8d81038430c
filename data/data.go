// Copyright 2026 The DLND Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides the public API for datasets and batch loading.
package data

import (
	"github.com/esparig/deep-learning-nanodegree/internal/data"
	"github.com/esparig/deep-learning-nanodegree/tensor"
)

// Dataset is an in-memory labeled dataset of flat float32 feature rows.
type Dataset = data.Dataset

// New creates a Dataset from aligned images and labels.
func New(images [][]float32, labels []int32) (*Dataset, error) {
	return data.New(images, labels)
}

// LoadMNIST reads the IDX-format MNIST files from dataDir. With train set,
// it reads the 60k training split, otherwise the 10k test split. Pixels
// are normalized to [0, 1].
func LoadMNIST(dataDir string, train bool) (*Dataset, error) {
	return data.LoadMNIST(dataDir, train)
}

// SyntheticClusters builds a balanced dataset of Gaussian class clusters,
// useful for runs without the MNIST files on disk.
func SyntheticClusters(samples, features, classes int, noise float32, seed int64) *Dataset {
	return data.SyntheticClusters(samples, features, classes, noise, seed)
}

// Batch is one mini-batch of inputs and labels as backend tensors.
type Batch[B tensor.Backend] = data.Batch[B]

// Loader batches a Dataset, reshuffling at the start of every epoch when
// shuffle is set.
type Loader[B tensor.Backend] = data.Loader[B]

// NewLoader creates a batch loader over the dataset.
func NewLoader[B tensor.Backend](dataset *Dataset, batchSize int, shuffle bool, seed int64, backend B) (*Loader[B], error) {
	return data.NewLoader(dataset, batchSize, shuffle, seed, backend)
}
