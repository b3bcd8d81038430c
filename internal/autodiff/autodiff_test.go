package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esparig/deep-learning-nanodegree/internal/autodiff"
	"github.com/esparig/deep-learning-nanodegree/internal/backend/cpu"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

func rawFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func rawInt32(t *testing.T, data []int32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsInt32(), data)
	return raw
}

func seedOnes(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = 1
	}
	return raw
}

func TestTapeRecordsOnlyWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := rawFloat32(t, []float32{1, 2}, tensor.Shape{2})
	y := rawFloat32(t, []float32{3, 4}, tensor.Shape{2})

	backend.Add(x, y)
	assert.Equal(t, 0, backend.Tape().Len(), "nothing recorded before StartRecording")

	backend.Tape().StartRecording()
	backend.Add(x, y)
	assert.Equal(t, 1, backend.Tape().Len())

	backend.Tape().StopRecording()
	backend.Add(x, y)
	assert.Equal(t, 1, backend.Tape().Len(), "nothing recorded after StopRecording")
}

func TestTapeClearPreservesRecordingState(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := rawFloat32(t, []float32{1}, tensor.Shape{1})
	backend.Add(x, x)
	backend.Tape().Clear()

	assert.Equal(t, 0, backend.Tape().Len())
	assert.True(t, backend.Tape().IsRecording())
}

func TestBackwardAdd(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := rawFloat32(t, []float32{1, 2}, tensor.Shape{2})
	y := rawFloat32(t, []float32{3, 4}, tensor.Shape{2})
	z := backend.Add(x, y)

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{2}), backend)

	require.Contains(t, grads, x)
	require.Contains(t, grads, y)
	assert.Equal(t, []float32{1, 1}, grads[x].AsFloat32())
	assert.Equal(t, []float32{1, 1}, grads[y].AsFloat32())
	assert.Equal(t, []float32{4, 6}, z.AsFloat32())
}

func TestBackwardMulSharedInputAccumulates(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// y = x * x, dy/dx = 2x through the two product paths.
	x := rawFloat32(t, []float32{3, -2}, tensor.Shape{2})
	backend.Mul(x, x)

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{2}), backend)

	require.Contains(t, grads, x)
	assert.Equal(t, []float32{6, -4}, grads[x].AsFloat32())
}

func TestBackwardMatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	backend.MatMul(a, b)

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{2, 2}), backend)

	// gradA = ones @ B^T, gradB = A^T @ ones.
	assert.Equal(t, []float32{11, 15, 11, 15}, grads[a].AsFloat32())
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[b].AsFloat32())
}

func TestBackwardReLUMasksGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := rawFloat32(t, []float32{-1, 0, 2}, tensor.Shape{3})
	out := backend.ReLU(x)

	assert.Equal(t, []float32{0, 0, 2}, out.AsFloat32())

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{3}), backend)
	assert.Equal(t, []float32{0, 0, 1}, grads[x].AsFloat32())
}

func TestBackwardBroadcastBiasReduces(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})
	backend.Add(x, bias)

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{2, 3}), backend)

	// The bias gradient sums over the broadcast batch dimension.
	require.True(t, grads[bias].Shape().Equal(tensor.Shape{1, 3}))
	assert.Equal(t, []float32{2, 2, 2}, grads[bias].AsFloat32())
}

func TestBackwardLogSoftmaxNLL(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	logits := rawFloat32(t, []float32{
		1, 2, 3,
		0, 0, 0,
	}, tensor.Shape{2, 3})
	targets := rawInt32(t, []int32{2, 0}, tensor.Shape{2})

	logProbs := backend.LogSoftmax(logits)
	loss := backend.NLL(logProbs, targets)

	// Forward value: -mean(logProbs[i, t_i]).
	lp := logProbs.AsFloat32()
	wantLoss := -(lp[0*3+2] + lp[1*3+0]) / 2
	assert.InDelta(t, wantLoss, loss.AsFloat32()[0], 1e-6)

	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{1}), backend)

	// The classic softmax cross-entropy gradient: (p - onehot) / batch.
	gradData := grads[logits].AsFloat32()
	batch := float32(2)
	for i := 0; i < 2; i++ {
		for c := 0; c < 3; c++ {
			p := float32(math.Exp(float64(lp[i*3+c])))
			want := p / batch
			if (i == 0 && c == 2) || (i == 1 && c == 0) {
				want = (p - 1) / batch
			}
			assert.InDelta(t, want, gradData[i*3+c], 1e-5)
		}
	}
}

func TestBackwardFiniteDifferenceLinearChain(t *testing.T) {
	// Checks d(NLL(logsoftmax(x@W)))/dW against central differences.
	baseW := []float32{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}

	lossAt := func(w []float32) float32 {
		backend := autodiff.New(cpu.New())
		x := rawFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})
		wT := rawFloat32(t, w, tensor.Shape{2, 3})
		targets := rawInt32(t, []int32{1}, tensor.Shape{1})
		return backend.NLL(backend.LogSoftmax(backend.MatMul(x, wT)), targets).AsFloat32()[0]
	}

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()
	x := rawFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})
	w := rawFloat32(t, baseW, tensor.Shape{2, 3})
	targets := rawInt32(t, []int32{1}, tensor.Shape{1})
	backend.NLL(backend.LogSoftmax(backend.MatMul(x, w)), targets)
	grads := backend.Tape().Backward(seedOnes(t, tensor.Shape{1}), backend)

	gradW := grads[w].AsFloat32()
	const epsilon = 1e-3
	for i := range baseW {
		plus := append([]float32(nil), baseW...)
		minus := append([]float32(nil), baseW...)
		plus[i] += epsilon
		minus[i] -= epsilon
		numerical := (lossAt(plus) - lossAt(minus)) / (2 * epsilon)
		assert.InDelta(t, numerical, gradW[i], 1e-2, "dLoss/dW[%d]", i)
	}
}

func TestBackwardDoesNotGrowTape(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
	backend.Add(x, bias)

	lenBefore := backend.Tape().Len()
	backend.Tape().Backward(seedOnes(t, tensor.Shape{2, 3}), backend)

	assert.Equal(t, lenBefore, backend.Tape().Len(), "gradient arithmetic must not land on the tape")
	assert.True(t, backend.Tape().IsRecording(), "recording state restored after backward")
}
