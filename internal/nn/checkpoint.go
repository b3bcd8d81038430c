package nn

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/serialization"
	"github.com/esparig/deep-learning-nanodegree/internal/tensor"
)

// SaveParameters writes the parameters to a .dlnd checkpoint file. Entries
// are keyed by position and parameter name, so loading requires a model
// with the same architecture.
func SaveParameters[B tensor.Backend](path, modelType string, params []*Parameter[B], meta *serialization.CheckpointMeta) error {
	entries := make([]serialization.Entry, len(params))
	for i, param := range params {
		entries[i] = serialization.Entry{
			Name:   fmt.Sprintf("%d.%s", i, param.Name()),
			Tensor: param.Tensor().Raw(),
		}
	}
	return serialization.Save(path, modelType, entries, meta)
}

// LoadParameters reads a .dlnd checkpoint into the parameters, which must
// match the file in count, order, names and shapes. It returns the
// checkpoint metadata, nil for a plain weights file.
func LoadParameters[B tensor.Backend](path string, params []*Parameter[B]) (*serialization.CheckpointMeta, error) {
	checkpoint, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	if len(checkpoint.Entries) != len(params) {
		return nil, fmt.Errorf("nn: checkpoint has %d tensors, model has %d parameters",
			len(checkpoint.Entries), len(params))
	}

	for i, entry := range checkpoint.Entries {
		param := params[i]
		want := fmt.Sprintf("%d.%s", i, param.Name())
		if entry.Name != want {
			return nil, fmt.Errorf("nn: checkpoint tensor %d is %q, model expects %q", i, entry.Name, want)
		}
		raw := param.Tensor().Raw()
		if !entry.Tensor.Shape().Equal(raw.Shape()) {
			return nil, fmt.Errorf("nn: checkpoint tensor %q has shape %v, model expects %v",
				entry.Name, entry.Tensor.Shape(), raw.Shape())
		}
		if entry.Tensor.DType() != raw.DType() {
			return nil, fmt.Errorf("nn: checkpoint tensor %q has dtype %s, model expects %s",
				entry.Name, entry.Tensor.DType(), raw.DType())
		}
		copy(raw.Data(), entry.Tensor.Data())
	}
	return checkpoint.Header.Checkpoint, nil
}
