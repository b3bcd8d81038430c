package data

import (
	"fmt"
	"math/rand"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Batch is one mini-batch ready for the model: a [size, features] input
// tensor and the aligned [size] label tensor. Batches are built fresh each
// epoch and are not retained by the loader.
type Batch[B tensor.Backend] struct {
	Inputs *tensor.Tensor[float32, B]
	Labels *tensor.Tensor[int32, B]
	Size   int
}

// Loader delivers a dataset as a restartable, finite, per-epoch sequence
// of mini-batches.
//
// When shuffling is enabled, the sample order is re-drawn (Fisher-Yates)
// at the start of every epoch from the loader's own seeded source, so runs
// are reproducible. The final batch of an epoch may be smaller than the
// configured batch size.
type Loader[B tensor.Backend] struct {
	dataset   *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	indices   []int
	backend   B
}

// NewLoader creates a Loader over the dataset.
func NewLoader[B tensor.Backend](dataset *Dataset, batchSize int, shuffle bool, seed int64, backend B) (*Loader[B], error) {
	if dataset == nil || dataset.NumSamples() == 0 {
		return nil, fmt.Errorf("loader: dataset is empty")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("loader: batch size must be > 0 (got %d)", batchSize)
	}

	indices := make([]int, dataset.NumSamples())
	for i := range indices {
		indices[i] = i
	}

	return &Loader[B]{
		dataset:   dataset,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec
		indices:   indices,
		backend:   backend,
	}, nil
}

// NumBatches returns the number of batches per epoch.
func (l *Loader[B]) NumBatches() int {
	return (l.dataset.NumSamples() + l.batchSize - 1) / l.batchSize
}

// BatchSize returns the configured batch size.
func (l *Loader[B]) BatchSize() int {
	return l.batchSize
}

// Epoch materializes one full pass over the dataset as a slice of
// batches, reshuffling first when shuffling is enabled. Each call starts a
// fresh epoch; the loader never exhausts.
func (l *Loader[B]) Epoch() ([]*Batch[B], error) {
	if l.shuffle {
		l.rng.Shuffle(len(l.indices), func(i, j int) {
			l.indices[i], l.indices[j] = l.indices[j], l.indices[i]
		})
	}

	numSamples := l.dataset.NumSamples()
	features := l.dataset.NumFeatures()
	batches := make([]*Batch[B], 0, l.NumBatches())

	for start := 0; start < numSamples; start += l.batchSize {
		end := min(start+l.batchSize, numSamples)
		size := end - start

		inputsRaw, err := tensor.NewRaw(tensor.Shape{size, features}, tensor.Float32, l.backend.Device())
		if err != nil {
			return nil, fmt.Errorf("loader: failed to create inputs tensor: %w", err)
		}
		labelsRaw, err := tensor.NewRaw(tensor.Shape{size}, tensor.Int32, l.backend.Device())
		if err != nil {
			return nil, fmt.Errorf("loader: failed to create labels tensor: %w", err)
		}

		inputs := inputsRaw.AsFloat32()
		labels := labelsRaw.AsInt32()
		for i := start; i < end; i++ {
			idx := l.indices[i]
			copy(inputs[(i-start)*features:(i-start+1)*features], l.dataset.Images[idx])
			labels[i-start] = l.dataset.Labels[idx]
		}

		batches = append(batches, &Batch[B]{
			Inputs: tensor.New[float32, B](inputsRaw, l.backend),
			Labels: tensor.New[int32, B](labelsRaw, l.backend),
			Size:   size,
		})
	}

	return batches, nil
}
