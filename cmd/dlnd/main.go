// Package main provides the dlnd command line interface.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/esparig/deep-learning-nanodegree/autodiff"
	"github.com/esparig/deep-learning-nanodegree/backend/cpu"
	"github.com/esparig/deep-learning-nanodegree/data"
	"github.com/esparig/deep-learning-nanodegree/internal/config"
	"github.com/esparig/deep-learning-nanodegree/nn"
	"github.com/esparig/deep-learning-nanodegree/optim"
	"github.com/esparig/deep-learning-nanodegree/train"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("dlnd %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "dlnd train: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("dlnd - neural network training on the CPU")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a classifier (see train -h)")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	dataset := fs.String("dataset", "", "dataset to train on: mnist or synthetic")
	dataDir := fs.String("data-dir", "", "directory holding the MNIST IDX files")
	epochs := fs.Int("epochs", 0, "number of training epochs")
	batchSize := fs.Int("batch-size", 0, "mini-batch size")
	lr := fs.Float64("lr", 0, "learning rate")
	optimizer := fs.String("optimizer", "", "optimizer: sgd or adam")
	dropout := fs.Float64("dropout", 0, "dropout probability for hidden layers")
	seed := fs.Int64("seed", 0, "random seed for shuffling and dropout")
	savePath := fs.String("save", "", "write a checkpoint file here after training")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(config.Overrides{
		Dataset:      *dataset,
		DataDir:      *dataDir,
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		Optimizer:    *optimizer,
		LearningRate: float32(*lr),
		Dropout:      float32(*dropout),
		Seed:         *seed,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	trainSet, testSet, classes, err := loadData(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Dataset: %s (%d train / %d test samples, %d features)\n",
		cfg.Dataset, trainSet.NumSamples(), testSet.NumSamples(), trainSet.NumFeatures())

	backend := autodiff.New(cpu.New())
	trainLoader, err := data.NewLoader(trainSet, cfg.BatchSize, true, cfg.Seed, backend)
	if err != nil {
		return err
	}
	testLoader, err := data.NewLoader(testSet, cfg.BatchSize, false, cfg.Seed, backend)
	if err != nil {
		return err
	}

	model := buildModel(backend, trainSet.NumFeatures(), classes, cfg)
	fmt.Printf("Model: %d -> %v -> %d, dropout %.2f\n",
		trainSet.NumFeatures(), cfg.Hidden, classes, cfg.Dropout)

	opt, err := buildOptimizer(model, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Optimizer: %s (lr=%g)\n\n", cfg.Optimizer, cfg.LearningRate)

	session := train.NewSession(model, opt, nn.NewNLLLoss(backend), backend)
	history, err := session.Fit(cfg.Epochs, trainLoader, testLoader)
	if err != nil {
		return err
	}

	fmt.Printf("\nBest test accuracy: %.3f\n", history.BestTestAccuracy())

	if *savePath != "" {
		final := history.Final()
		err := nn.SaveParameters(*savePath, "Sequential", model.Parameters(), &nn.CheckpointMeta{
			Epoch:        final.Epoch,
			TrainLoss:    final.TrainLoss,
			TestLoss:     final.TestLoss,
			TestAccuracy: final.TestAccuracy,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Checkpoint written to %s\n", *savePath)
	}
	return nil
}

func loadData(cfg *config.Config) (trainSet, testSet *data.Dataset, classes int, err error) {
	if cfg.Dataset == "mnist" {
		trainSet, err = data.LoadMNIST(cfg.DataDir, true)
		if err != nil {
			return nil, nil, 0, err
		}
		testSet, err = data.LoadMNIST(cfg.DataDir, false)
		if err != nil {
			return nil, nil, 0, err
		}
		return trainSet, testSet, 10, nil
	}

	full := data.SyntheticClusters(2000, 64, 10, 0.3, cfg.Seed)
	trainSet, testSet = full.Split(0.2)
	return trainSet, testSet, 10, nil
}

type recordingBackend = *autodiff.Backend[*cpu.Backend]

func buildModel(backend recordingBackend, features, classes int, cfg *config.Config) *nn.Sequential[recordingBackend] {
	var modules []nn.Module[recordingBackend]
	in := features
	for _, width := range cfg.Hidden {
		modules = append(modules,
			nn.NewLinear(in, width, backend),
			nn.NewReLU[recordingBackend](),
		)
		if cfg.Dropout > 0 {
			dropout := nn.NewDropout[recordingBackend](cfg.Dropout)
			dropout.Seed(cfg.Seed)
			modules = append(modules, dropout)
		}
		in = width
	}
	modules = append(modules,
		nn.NewLinear(in, classes, backend),
		nn.NewLogSoftmax[recordingBackend](),
	)
	return nn.NewSequential(modules...)
}

func buildOptimizer(model *nn.Sequential[recordingBackend], cfg *config.Config) (optim.Optimizer, error) {
	switch cfg.Optimizer {
	case "sgd":
		return optim.NewSGD(model.Parameters(), optim.SGDConfig{
			LR:       cfg.LearningRate,
			Momentum: cfg.Momentum,
		}), nil
	case "adam":
		return optim.NewAdam(model.Parameters(), optim.AdamConfig{
			LR: cfg.LearningRate,
		}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", cfg.Optimizer)
	}
}
