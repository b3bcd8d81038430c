package train

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
)

// EpochStats captures the measurements taken at the end of one epoch.
type EpochStats struct {
	Epoch        int
	TrainLoss    float64
	TestLoss     float64
	TestAccuracy float64
}

// History is the per-epoch record of a training run, in epoch order.
type History []EpochStats

// Final returns the stats of the last epoch. It panics on an empty history.
func (h History) Final() EpochStats {
	return h[len(h)-1]
}

// TrainLosses returns the per-epoch training losses.
func (h History) TrainLosses() []float64 {
	losses := make([]float64, len(h))
	for i, s := range h {
		losses[i] = s.TrainLoss
	}
	return losses
}

// TestAccuracies returns the per-epoch test accuracies.
func (h History) TestAccuracies() []float64 {
	accs := make([]float64, len(h))
	for i, s := range h {
		accs[i] = s.TestAccuracy
	}
	return accs
}

// BestTestAccuracy returns the highest test accuracy seen across the run,
// or 0 for an empty history.
func (h History) BestTestAccuracy() float64 {
	if len(h) == 0 {
		return 0
	}
	return floats.Max(h.TestAccuracies())
}

// Report writes one line per epoch to w, in the same format the loop
// prints while training.
func (h History) Report(w io.Writer) {
	for _, s := range h {
		fmt.Fprintf(w, "Epoch: %d/%d..  Training Loss: %.3f..  Test Loss: %.3f..  Test Accuracy: %.3f\n",
			s.Epoch, len(h), s.TrainLoss, s.TestLoss, s.TestAccuracy)
	}
}

// LossImproved reports whether the final training loss is below the first
// epoch's, the coarse signal that the run learned anything at all.
func (h History) LossImproved() bool {
	if len(h) < 2 {
		return false
	}
	return h.Final().TrainLoss < h[0].TrainLoss
}
