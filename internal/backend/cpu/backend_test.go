package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

func rawFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestAddSameShape(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	result := backend.Add(a, b)

	assert.Equal(t, []float32{11, 22, 33, 44}, result.AsFloat32())
}

func TestAddBroadcastRow(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	result := backend.Add(a, bias)

	require.True(t, result.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, result.AsFloat32())
}

func TestMulBroadcastColumn(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	col := rawFloat32(t, []float32{10, 100}, tensor.Shape{2, 1})

	result := backend.Mul(a, col)

	assert.Equal(t, []float32{10, 20, 300, 400}, result.AsFloat32())
}

func TestSub(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{5, 7}, tensor.Shape{2})
	b := rawFloat32(t, []float32{2, 3}, tensor.Shape{2})

	result := backend.Sub(a, b)

	assert.Equal(t, []float32{3, 4}, result.AsFloat32())
}

func TestAddIncompatibleShapesPanics(t *testing.T) {
	backend := New()
	a := rawFloat32(t, make([]float32, 6), tensor.Shape{2, 3})
	b := rawFloat32(t, make([]float32, 8), tensor.Shape{2, 4})

	assert.Panics(t, func() { backend.Add(a, b) })
}

func TestMatMul(t *testing.T) {
	backend := New()
	// [2, 3] @ [3, 2] -> [2, 2]
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	result := backend.MatMul(a, b)

	require.True(t, result.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{58, 64, 139, 154}, result.AsFloat32())
}

func TestMatMulIdentity(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	eye := rawFloat32(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})

	result := backend.MatMul(a, eye)

	assert.Equal(t, []float32{1, 2, 3, 4}, result.AsFloat32())
}

func TestMatMulDimensionMismatchPanics(t *testing.T) {
	backend := New()
	a := rawFloat32(t, make([]float32, 6), tensor.Shape{2, 3})
	b := rawFloat32(t, make([]float32, 8), tensor.Shape{2, 4})

	assert.Panics(t, func() { backend.MatMul(a, b) })
}

func TestTranspose(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.Transpose(a)

	require.True(t, result.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, result.AsFloat32())
}

func TestReshapeSharesBuffer(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Reshape(a, tensor.Shape{4})
	result.AsFloat32()[0] = 99

	assert.Equal(t, float32(99), a.AsFloat32()[0])
}

func TestScalarOps(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	assert.Equal(t, []float32{2, 4, 6}, backend.MulScalar(a, 2).AsFloat32())
	assert.Equal(t, []float32{11, 12, 13}, backend.AddScalar(a, 10).AsFloat32())
}

func TestExp(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{0, 1, -1}, tensor.Shape{3})

	result := backend.Exp(a).AsFloat32()

	assert.InDelta(t, 1, result[0], 1e-6)
	assert.InDelta(t, math.E, result[1], 1e-5)
	assert.InDelta(t, 1/math.E, result[2], 1e-6)
}

func TestSum(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Sum(a)

	require.True(t, result.Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, float32(10), result.AsFloat32()[0])
}

func TestLogSoftmaxRowsNormalize(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1, 2, 3, 10, 10, 10}, tensor.Shape{2, 3})

	result := backend.LogSoftmax(a).AsFloat32()

	// exp of each row must sum to 1.
	for r := 0; r < 2; r++ {
		var sum float64
		for c := 0; c < 3; c++ {
			lp := result[r*3+c]
			assert.LessOrEqual(t, lp, float32(0), "log-probabilities are never positive")
			sum += math.Exp(float64(lp))
		}
		assert.InDelta(t, 1, sum, 1e-5)
	}

	// Uniform row: every entry is -log(3).
	for c := 0; c < 3; c++ {
		assert.InDelta(t, -math.Log(3), result[3+c], 1e-5)
	}
}

func TestLogSoftmaxLargeLogitsStable(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{1000, 1000, 1000}, tensor.Shape{1, 3})

	result := backend.LogSoftmax(a).AsFloat32()

	for _, lp := range result {
		assert.False(t, math.IsNaN(float64(lp)))
		assert.InDelta(t, -math.Log(3), lp, 1e-5)
	}
}

func TestArgmax(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{
		0.1, 0.9, 0.0,
		0.8, 0.1, 0.1,
		0.2, 0.2, 0.6,
	}, tensor.Shape{3, 3})

	result := backend.Argmax(a)

	require.True(t, result.Shape().Equal(tensor.Shape{3}))
	assert.Equal(t, []int32{1, 0, 2}, result.AsInt32())
}

func TestArgmaxTieGoesToLowestIndex(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{0.5, 0.5, 0.1}, tensor.Shape{1, 3})

	result := backend.Argmax(a)

	assert.Equal(t, []int32{0}, result.AsInt32())
}
