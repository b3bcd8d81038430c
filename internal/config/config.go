// Package config holds the runtime knobs for a training run and their
// YAML loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset      string  `yaml:"dataset"`
	DataDir      string  `yaml:"data_dir"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Optimizer    string  `yaml:"optimizer"`
	LearningRate float32 `yaml:"learning_rate"`
	Momentum     float32 `yaml:"momentum"`
	Hidden       []int   `yaml:"hidden"`
	Dropout      float32 `yaml:"dropout"`
	Seed         int64   `yaml:"seed"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Dataset      string
	DataDir      string
	Epochs       int
	BatchSize    int
	Optimizer    string
	LearningRate float32
	Dropout      float32
	Seed         int64
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Dataset:      "synthetic",
		Epochs:       5,
		BatchSize:    64,
		Optimizer:    "adam",
		LearningRate: 0.003,
		Momentum:     0.9,
		Hidden:       []int{128, 64},
		Dropout:      0.2,
		Seed:         42,
	}
}

// Load reads and validates a Config from YAML. Keys absent from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Dropout > 0 {
		c.Dropout = o.Dropout
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Dataset {
	case "mnist", "synthetic":
	default:
		return fmt.Errorf("dataset must be mnist or synthetic (got %q)", c.Dataset)
	}
	if c.Dataset == "mnist" && c.DataDir == "" {
		return errors.New("data_dir must be set for the mnist dataset")
	}
	switch c.Optimizer {
	case "sgd", "adam":
	default:
		return fmt.Errorf("optimizer must be sgd or adam (got %q)", c.Optimizer)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		return fmt.Errorf("dropout must be in [0, 1) (got %g)", c.Dropout)
	}
	if len(c.Hidden) == 0 {
		return errors.New("hidden must list at least one layer width")
	}
	for _, h := range c.Hidden {
		if h <= 0 {
			return fmt.Errorf("hidden layer widths must be > 0 (got %d)", h)
		}
	}
	return nil
}
