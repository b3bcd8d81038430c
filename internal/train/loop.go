package train

import (
	"fmt"

	"github.com/esparig/deep-learning-nanodegree/internal/autodiff"
	"github.com/esparig/deep-learning-nanodegree/internal/data"
	"github.com/esparig/deep-learning-nanodegree/internal/nn"
)

// Fit runs the full training loop for the given number of epochs.
//
// Each epoch trains over every batch of the training loader, then switches
// the model to evaluation mode with gradient recording stopped, measures
// loss and accuracy over the test loader, prints one report line, and
// switches back to training mode for the next pass. The returned History
// holds one EpochStats per epoch.
func (s *Session[B]) Fit(epochs int, trainLoader, testLoader *data.Loader[*autodiff.AutodiffBackend[B]]) (History, error) {
	if epochs <= 0 {
		return nil, fmt.Errorf("train: epochs must be positive, got %d", epochs)
	}

	history := make(History, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		s.model.SetMode(nn.Train)
		s.backend.Tape().StartRecording()

		trainLoss, err := s.trainEpoch(trainLoader)
		if err != nil {
			return history, fmt.Errorf("train: epoch %d: %w", epoch, err)
		}

		s.model.SetMode(nn.Eval)
		s.backend.Tape().StopRecording()

		testLoss, testAccuracy, err := s.evaluate(testLoader)
		if err != nil {
			return history, fmt.Errorf("train: epoch %d validation: %w", epoch, err)
		}

		stats := EpochStats{
			Epoch:        epoch,
			TrainLoss:    trainLoss,
			TestLoss:     testLoss,
			TestAccuracy: testAccuracy,
		}
		history = append(history, stats)

		fmt.Fprintf(s.out, "Epoch: %d/%d..  Training Loss: %.3f..  Test Loss: %.3f..  Test Accuracy: %.3f\n",
			epoch, epochs, stats.TrainLoss, stats.TestLoss, stats.TestAccuracy)
	}

	s.model.SetMode(nn.Train)
	return history, nil
}

// trainEpoch runs one optimization pass over the loader and returns the
// mean batch loss.
func (s *Session[B]) trainEpoch(loader *data.Loader[*autodiff.AutodiffBackend[B]]) (float64, error) {
	batches, err := loader.Epoch()
	if err != nil {
		return 0, err
	}

	var total float64
	for _, batch := range batches {
		s.optimizer.ZeroGrad()
		s.backend.Tape().Clear()

		output := s.model.Forward(batch.Inputs)
		loss := s.criterion.Forward(output, batch.Labels)
		total += float64(loss.Item())

		if err := s.backward(loss); err != nil {
			return 0, err
		}
		s.optimizer.Step()
	}
	s.backend.Tape().Clear()

	return total / float64(len(batches)), nil
}

// Evaluate measures loss and accuracy over the loader without touching
// parameters. The model is put into evaluation mode with recording stopped
// for the duration and left in evaluation mode afterwards; callers that
// keep training switch back themselves (Fit does).
func (s *Session[B]) Evaluate(loader *data.Loader[*autodiff.AutodiffBackend[B]]) (loss, accuracy float64, err error) {
	s.model.SetMode(nn.Eval)
	wasRecording := s.backend.Tape().IsRecording()
	s.backend.Tape().StopRecording()
	defer func() {
		if wasRecording {
			s.backend.Tape().StartRecording()
		}
	}()

	return s.evaluate(loader)
}

// evaluate returns the mean batch loss and the mean of per-batch
// accuracies. Every batch weighs the same in the accuracy mean, so a short
// final batch counts as much as a full one.
func (s *Session[B]) evaluate(loader *data.Loader[*autodiff.AutodiffBackend[B]]) (loss, accuracy float64, err error) {
	batches, err := loader.Epoch()
	if err != nil {
		return 0, 0, err
	}

	var lossTotal, accTotal float64
	for _, batch := range batches {
		output := s.model.Forward(batch.Inputs)
		batchLoss := s.criterion.Forward(output, batch.Labels)
		lossTotal += float64(batchLoss.Item())
		accTotal += float64(nn.Accuracy(output, batch.Labels))
	}

	n := float64(len(batches))
	return lossTotal / n, accTotal / n, nil
}
