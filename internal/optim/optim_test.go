package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esparig/deep-learning-nanodegree/internal/backend/cpu"
	"github.com/esparig/deep-learning-nanodegree/internal/nn"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

type Backend = *cpu.CPUBackend

func paramWithGrad(t *testing.T, values, grad []float32) *nn.Parameter[Backend] {
	t.Helper()
	backend := cpu.New()
	tens, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("weight", tens)

	raw, err := tensor.NewRaw(tensor.Shape{len(grad)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), grad)
	param.AccumulateGrad(raw)
	return param
}

func TestSGDStep(t *testing.T) {
	param := paramWithGrad(t, []float32{1, 2}, []float32{0.5, -0.5})
	sgd := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.1})

	sgd.Step()

	// param -= lr * grad
	data := param.Tensor().Data()
	assert.InDelta(t, 0.95, data[0], 1e-6)
	assert.InDelta(t, 2.05, data[1], 1e-6)
}

func TestSGDDefaultLR(t *testing.T) {
	sgd := NewSGD[Backend](nil, SGDConfig{})
	assert.Equal(t, float32(0.01), sgd.LR())
}

func TestSGDMomentum(t *testing.T) {
	param := paramWithGrad(t, []float32{0}, []float32{1})
	sgd := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.1, Momentum: 0.9})

	// First step: velocity = 1, param = -0.1.
	sgd.Step()
	assert.InDelta(t, -0.1, param.Tensor().Data()[0], 1e-6)

	// Same gradient again: velocity = 0.9*1 + 1 = 1.9, param = -0.1 - 0.19.
	sgd.Step()
	assert.InDelta(t, -0.29, param.Tensor().Data()[0], 1e-6)
}

func TestSGDSkipsParamsWithoutGrad(t *testing.T) {
	backend := cpu.New()
	tens, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("weight", tens)

	sgd := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{LR: 0.5})
	sgd.Step()

	assert.Equal(t, []float32{1, 2}, param.Tensor().Data())
}

func TestSGDZeroGrad(t *testing.T) {
	param := paramWithGrad(t, []float32{1}, []float32{1})
	sgd := NewSGD([]*nn.Parameter[Backend]{param}, SGDConfig{})

	require.NotNil(t, param.Grad())
	sgd.ZeroGrad()
	assert.Nil(t, param.Grad())
}

func TestSGDSetLR(t *testing.T) {
	sgd := NewSGD[Backend](nil, SGDConfig{LR: 0.1})
	sgd.SetLR(0.01)
	assert.Equal(t, float32(0.01), sgd.LR())
}

func TestAdamDefaults(t *testing.T) {
	adam := NewAdam[Backend](nil, AdamConfig{})
	assert.Equal(t, float32(0.001), adam.LR())
}

func TestAdamFirstStep(t *testing.T) {
	param := paramWithGrad(t, []float32{1}, []float32{0.5})
	adam := NewAdam([]*nn.Parameter[Backend]{param}, AdamConfig{LR: 0.1})

	adam.Step()

	// With bias correction the first step is lr * g/(|g| + eps), so the
	// parameter moves by almost exactly lr in the gradient direction.
	got := param.Tensor().Data()[0]
	assert.InDelta(t, 1-0.1, got, 1e-4)
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	// Minimize f(x) = x² from x = 3: gradient is 2x.
	param := paramWithGrad(t, []float32{3}, []float32{6})
	adam := NewAdam([]*nn.Parameter[Backend]{param}, AdamConfig{LR: 0.1})

	for i := 0; i < 200; i++ {
		adam.Step()
		adam.ZeroGrad()

		x := param.Tensor().Data()[0]
		raw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, tensor.CPU)
		require.NoError(t, err)
		raw.AsFloat32()[0] = 2 * x
		param.AccumulateGrad(raw)
	}

	assert.Less(t, math.Abs(float64(param.Tensor().Data()[0])), 0.1)
}

func TestOptimizerInterfaceCompliance(t *testing.T) {
	var _ Optimizer = NewSGD[Backend](nil, SGDConfig{})
	var _ Optimizer = NewAdam[Backend](nil, AdamConfig{})
}
