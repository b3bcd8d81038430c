package tensor

// Backend defines the kernel set that compute backends must implement.
// The layers above (nn, autodiff, train) only ever reach the hardware
// through this interface.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor // 2D transpose

	// Scalar operations (element-wise with a scalar).
	MulScalar(x *RawTensor, scalar float32) *RawTensor
	AddScalar(x *RawTensor, scalar float32) *RawTensor

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor

	// LogSoftmax computes log(softmax(x)) along the last dimension of a
	// 2D tensor using the log-sum-exp trick.
	LogSoftmax(x *RawTensor) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor    // total sum, scalar result [1]
	Argmax(x *RawTensor) *RawTensor // per-row index of maximum, int32 [rows]

	// Metadata.
	Name() string
	Device() Device
}
