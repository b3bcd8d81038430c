// Package data provides labeled datasets and mini-batch loading for the
// training loop.
package data

import (
	"fmt"
	"math/rand"
)

// Dataset holds a labeled image dataset: one flattened feature vector per
// sample, aligned 1:1 with integer class labels.
type Dataset struct {
	Images [][]float32 // [num_samples][num_features], values in [0, 1]
	Labels []int32     // [num_samples]
}

// New creates a Dataset, validating image/label alignment and uniform
// feature width. Misaligned data is a configuration error and fails
// immediately.
func New(images [][]float32, labels []int32) (*Dataset, error) {
	if len(images) != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(images), len(labels))
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	width := len(images[0])
	for i, img := range images {
		if len(img) != width {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(img), width)
		}
	}
	return &Dataset{Images: images, Labels: labels}, nil
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// NumFeatures returns the flattened feature width of one sample.
func (d *Dataset) NumFeatures() int {
	if len(d.Images) == 0 {
		return 0
	}
	return len(d.Images[0])
}

// Split splits the dataset into two parts, with the second holding the
// given fraction of the samples (e.g. 0.2 for a 20% held-out set).
func (d *Dataset) Split(holdoutRatio float32) (*Dataset, *Dataset) {
	splitIdx := int(float32(d.NumSamples()) * (1.0 - holdoutRatio))
	return &Dataset{Images: d.Images[:splitIdx], Labels: d.Labels[:splitIdx]},
		&Dataset{Images: d.Images[splitIdx:], Labels: d.Labels[splitIdx:]}
}

// SyntheticClusters generates a learnable toy classification dataset: one
// random center per class, samples drawn as center plus Gaussian noise,
// classes balanced round-robin. Useful for demos and tests that need
// training to actually converge without downloaded data.
func SyntheticClusters(samples, features, classes int, noise float32, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec

	centers := make([][]float32, classes)
	for c := range centers {
		centers[c] = make([]float32, features)
		for j := range centers[c] {
			centers[c][j] = rng.Float32()
		}
	}

	images := make([][]float32, samples)
	labels := make([]int32, samples)
	for i := 0; i < samples; i++ {
		class := i % classes
		labels[i] = int32(class)
		images[i] = make([]float32, features)
		for j := range images[i] {
			images[i][j] = centers[class][j] + noise*float32(rng.NormFloat64())
		}
	}

	return &Dataset{Images: images, Labels: labels}
}
