package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Entry is one named tensor to write.
type Entry struct {
	Name   string
	Tensor *tensor.RawTensor
}

// Save writes the entries to path in .dlnd format, in order. meta may be
// nil for a plain weights file.
func Save(path, modelType string, entries []Entry, meta *CheckpointMeta) error {
	if len(entries) == 0 {
		return fmt.Errorf("serialization: nothing to save")
	}

	header := Header{
		FormatVersion: FormatVersion,
		ModelType:     modelType,
		CreatedAt:     time.Now().UTC(),
		Checkpoint:    meta,
	}

	var data bytes.Buffer
	for _, entry := range entries {
		raw := entry.Tensor
		size := int64(len(raw.Data()))
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   entry.Name,
			DType:  dtypeToString(raw.DType()),
			Shape:  append([]int(nil), raw.Shape()...),
			Offset: int64(data.Len()),
			Size:   size,
		})
		data.Write(raw.Data())
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("serialization: marshal header: %w", err)
	}

	var file bytes.Buffer
	file.WriteString(MagicBytes)
	binary.Write(&file, binary.LittleEndian, uint32(FormatVersion))
	binary.Write(&file, binary.LittleEndian, uint32(len(headerJSON)))
	file.Write(headerJSON)
	checksum := computeChecksum(data.Bytes())
	file.Write(checksum[:])
	file.Write(data.Bytes())

	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		return fmt.Errorf("serialization: write %s: %w", path, err)
	}
	return nil
}
