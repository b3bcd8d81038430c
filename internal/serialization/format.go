// Package serialization reads and writes model checkpoints in the .dlnd
// format.
//
// A .dlnd file is: 4 magic bytes, a little-endian uint32 format version,
// a uint32 JSON header length, the JSON header, a SHA-256 checksum of the
// tensor data section, then the raw tensor data in header order.
package serialization

import (
	"time"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Format constants.
const (
	MagicBytes    = "DLND"
	FormatVersion = 1
	ChecksumSize  = 32
)

// Data type strings used in the header.
const (
	DTypeFloat32 = "float32"
	DTypeInt32   = "int32"
)

// Header is the JSON header of a .dlnd file.
type Header struct {
	FormatVersion int             `json:"format_version"`
	ModelType     string          `json:"model_type"`
	CreatedAt     time.Time       `json:"created_at"`
	Tensors       []TensorMeta    `json:"tensors"`
	Checkpoint    *CheckpointMeta `json:"checkpoint,omitempty"`
}

// CheckpointMeta carries training state alongside the weights.
type CheckpointMeta struct {
	Epoch        int     `json:"epoch"`
	TrainLoss    float64 `json:"train_loss"`
	TestLoss     float64 `json:"test_loss"`
	TestAccuracy float64 `json:"test_accuracy"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}

func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Int32:
		return DTypeInt32
	default:
		return "unknown"
	}
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeInt32:
		return tensor.Int32, true
	default:
		return 0, false
	}
}
