package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// Checkpoint is the in-memory form of a loaded .dlnd file.
type Checkpoint struct {
	Header  Header
	Entries []Entry
}

// Load reads and verifies a .dlnd file.
func Load(path string) (*Checkpoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: read %s: %w", path, err)
	}

	r := bytes.NewReader(raw)
	magic := make([]byte, len(MagicBytes))
	if _, err := r.Read(magic); err != nil || string(magic) != MagicBytes {
		return nil, ErrBadMagic
	}

	var version, headerLen uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("serialization: read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersionUnsupported, version)
	}
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("serialization: read header length: %w", err)
	}

	headerJSON := make([]byte, headerLen)
	if _, err := r.Read(headerJSON); err != nil {
		return nil, fmt.Errorf("serialization: read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("serialization: parse header: %w", err)
	}

	var stored [ChecksumSize]byte
	if _, err := r.Read(stored[:]); err != nil {
		return nil, fmt.Errorf("serialization: read checksum: %w", err)
	}

	data := make([]byte, r.Len())
	if _, err := r.Read(data); err != nil {
		return nil, fmt.Errorf("serialization: read tensor data: %w", err)
	}
	if err := validateChecksum(computeChecksum(data), stored); err != nil {
		return nil, err
	}

	checkpoint := &Checkpoint{Header: header}
	for _, meta := range header.Tensors {
		dtype, ok := stringToDtype(meta.DType)
		if !ok {
			return nil, fmt.Errorf("serialization: tensor %s: unknown dtype %q", meta.Name, meta.DType)
		}
		if meta.Offset < 0 || meta.Offset+meta.Size > int64(len(data)) {
			return nil, fmt.Errorf("serialization: tensor %s: data out of range", meta.Name)
		}

		rt, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
		if err != nil {
			return nil, fmt.Errorf("serialization: tensor %s: %w", meta.Name, err)
		}
		if int64(len(rt.Data())) != meta.Size {
			return nil, fmt.Errorf("serialization: tensor %s: size %d does not match shape %v",
				meta.Name, meta.Size, meta.Shape)
		}
		copy(rt.Data(), data[meta.Offset:meta.Offset+meta.Size])
		checkpoint.Entries = append(checkpoint.Entries, Entry{Name: meta.Name, Tensor: rt})
	}
	return checkpoint, nil
}
