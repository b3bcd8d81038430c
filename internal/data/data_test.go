package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esparig/deep-learning-nanodegree/internal/backend/cpu"
)

func TestNewValidation(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err, "empty dataset rejected")

	_, err = New([][]float32{{1, 2}}, []int32{0, 1})
	assert.Error(t, err, "misaligned labels rejected")

	_, err = New([][]float32{{1, 2}, {3}}, []int32{0, 1})
	assert.Error(t, err, "ragged feature widths rejected")

	ds, err := New([][]float32{{1, 2}, {3, 4}}, []int32{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NumSamples())
	assert.Equal(t, 2, ds.NumFeatures())
}

func TestSplit(t *testing.T) {
	ds := SyntheticClusters(100, 4, 2, 0.1, 1)

	trainSet, testSet := ds.Split(0.2)

	assert.Equal(t, 80, trainSet.NumSamples())
	assert.Equal(t, 20, testSet.NumSamples())
	assert.Equal(t, 4, trainSet.NumFeatures())
}

func TestSyntheticClustersBalancedAndSeparable(t *testing.T) {
	ds := SyntheticClusters(300, 8, 3, 0.05, 42)

	require.Equal(t, 300, ds.NumSamples())

	counts := map[int32]int{}
	for _, label := range ds.Labels {
		counts[label]++
	}
	require.Len(t, counts, 3)
	for label, count := range counts {
		assert.Equal(t, 100, count, "class %d", label)
	}

	// Same seed reproduces the same data.
	again := SyntheticClusters(300, 8, 3, 0.05, 42)
	assert.Equal(t, ds.Images[0], again.Images[0])
	assert.Equal(t, ds.Labels, again.Labels)
}

func TestLoaderValidation(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(10, 2, 2, 0.1, 1)

	_, err := NewLoader(nil, 4, false, 1, backend)
	assert.Error(t, err)

	_, err = NewLoader(ds, 0, false, 1, backend)
	assert.Error(t, err)
}

func TestLoaderBatchShapes(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(10, 3, 2, 0.1, 1)

	loader, err := NewLoader(ds, 4, false, 1, backend)
	require.NoError(t, err)
	assert.Equal(t, 3, loader.NumBatches())
	assert.Equal(t, 4, loader.BatchSize())

	batches, err := loader.Epoch()
	require.NoError(t, err)
	require.Len(t, batches, 3)

	assert.Equal(t, 4, batches[0].Size)
	assert.Equal(t, 4, batches[1].Size)
	assert.Equal(t, 2, batches[2].Size, "short final batch carries the remainder")

	require.True(t, batches[0].Inputs.Shape().Equal([]int{4, 3}))
	require.True(t, batches[0].Labels.Shape().Equal([]int{4}))
	require.True(t, batches[2].Inputs.Shape().Equal([]int{2, 3}))
}

func TestLoaderPreservesOrderWithoutShuffle(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(6, 2, 2, 0.1, 1)

	loader, err := NewLoader(ds, 2, false, 1, backend)
	require.NoError(t, err)

	batches, err := loader.Epoch()
	require.NoError(t, err)

	var labels []int32
	for _, b := range batches {
		labels = append(labels, b.Labels.Data()...)
	}
	assert.Equal(t, ds.Labels, labels)
}

func TestLoaderInputsAlignWithLabels(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(20, 3, 2, 0.1, 3)

	loader, err := NewLoader(ds, 6, true, 9, backend)
	require.NoError(t, err)

	batches, err := loader.Epoch()
	require.NoError(t, err)

	// Find every shuffled row in the source dataset and check its label.
	for _, batch := range batches {
		inputs := batch.Inputs.Data()
		labels := batch.Labels.Data()
		for row := 0; row < batch.Size; row++ {
			features := inputs[row*3 : (row+1)*3]
			found := false
			for idx := range ds.Images {
				if ds.Images[idx][0] == features[0] && ds.Images[idx][1] == features[1] && ds.Images[idx][2] == features[2] {
					assert.Equal(t, ds.Labels[idx], labels[row])
					found = true
					break
				}
			}
			assert.True(t, found, "shuffled row not found in the source dataset")
		}
	}
}

func TestLoaderReshufflesEachEpoch(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(64, 2, 2, 0.1, 1)

	loader, err := NewLoader(ds, 64, true, 5, backend)
	require.NoError(t, err)

	first, err := loader.Epoch()
	require.NoError(t, err)
	second, err := loader.Epoch()
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Labels.Data(), second[0].Labels.Data(),
		"consecutive epochs must draw different orders")
}

func TestLoaderSeedReproducible(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(32, 2, 2, 0.1, 1)

	a, err := NewLoader(ds, 32, true, 7, backend)
	require.NoError(t, err)
	b, err := NewLoader(ds, 32, true, 7, backend)
	require.NoError(t, err)

	batchesA, err := a.Epoch()
	require.NoError(t, err)
	batchesB, err := b.Epoch()
	require.NoError(t, err)

	assert.Equal(t, batchesA[0].Labels.Data(), batchesB[0].Labels.Data())
}

func TestLoaderRestartable(t *testing.T) {
	backend := cpu.New()
	ds := SyntheticClusters(10, 2, 2, 0.1, 1)

	loader, err := NewLoader(ds, 4, false, 1, backend)
	require.NoError(t, err)

	for epoch := 0; epoch < 3; epoch++ {
		batches, err := loader.Epoch()
		require.NoError(t, err)
		total := 0
		for _, b := range batches {
			total += b.Size
		}
		assert.Equal(t, 10, total, "every epoch visits every sample exactly once")
	}
}
