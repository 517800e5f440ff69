// Package config - Run configuration of the evaluate command.
package config

import (
	"os"

	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Evaluation modes.
const (
	ModeBoxes  = "boxes"
	ModeFrames = "frames"
	ModeTubes  = "tubes"
	ModeEgo    = "ego"
	ModeSplit  = "split"
)

// Config describes one evaluation run.
type Config struct {
	Mode    string `json:"mode" yaml:"mode"`
	Dataset string `json:"dataset" yaml:"dataset"`
	// Input is the JSON document matching Mode.
	Input      string            `json:"input" yaml:"input"`
	OutputDir  string            `json:"output_dir" yaml:"output_dir"`
	Workers    int               `json:"workers" yaml:"workers"`
	LogLevel   string            `json:"log_level" yaml:"log_level"`
	Progress   bool              `json:"progress" yaml:"progress"`
	Metrics    MetricsConfig     `json:"metrics" yaml:"metrics"`
	Evaluation evaluation.Config `json:"evaluation" yaml:"evaluation"`

	// thresholdSet records an IoU threshold chosen by the file or a flag.
	thresholdSet bool
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	// Textfile is written after the run when set.
	Textfile string `json:"textfile" yaml:"textfile"`
}

// Default returns a frame-mode configuration with the frame IoU threshold.
func Default() *Config {
	return &Config{
		Mode:       ModeFrames,
		Dataset:    evaluation.DatasetROAD,
		OutputDir:  "./eval_results",
		LogLevel:   "info",
		Metrics:    MetricsConfig{Namespace: "eval"},
		Evaluation: evaluation.DefaultFrameConfig(),
	}
}

// Load reads a YAML configuration on top of the defaults. A threshold
// given in the file is kept as is, zero included; otherwise the default of
// the file's mode applies.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	var explicit struct {
		Evaluation struct {
			IoUThreshold *float32 `yaml:"iou_thresh"`
		} `yaml:"evaluation"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.thresholdSet = explicit.Evaluation.IoUThreshold != nil
	cfg.ResolveThreshold()
	return cfg, nil
}

// SetIoUThreshold fixes the threshold so that later mode changes keep it.
func (c *Config) SetIoUThreshold(t float32) {
	c.Evaluation.IoUThreshold = t
	c.thresholdSet = true
}

// ResolveThreshold applies the default threshold of the current mode unless
// one was set explicitly. Call it again after changing Mode.
func (c *Config) ResolveThreshold() {
	if !c.thresholdSet {
		c.Evaluation.IoUThreshold = DefaultThreshold(c.Mode)
	}
}

// DefaultThreshold is the IoU threshold of a mode: 0.2 for tubes, 0.5
// otherwise.
func DefaultThreshold(mode string) float32 {
	if mode == ModeTubes {
		return evaluation.DefaultTubeConfig().IoUThreshold
	}
	return evaluation.DefaultFrameConfig().IoUThreshold
}

// Validate checks the run-level fields. Classes are checked by the
// evaluation itself, since split mode takes them from the input.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeBoxes, ModeFrames, ModeTubes, ModeEgo, ModeSplit:
	default:
		return errors.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.Input == "" {
		return errors.New("config: input is required")
	}
	if c.Workers < 0 {
		return errors.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	if t := c.Evaluation.IoUThreshold; t < 0 || t > 1 {
		return errors.Errorf("config: iou threshold %g outside [0, 1]", t)
	}
	return nil
}
