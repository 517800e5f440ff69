package evaluation

import (
	"runtime"

	"github.com/pkg/errors"
)

// Config holds the parameters of one evaluation.
type Config struct {
	// Classes defines iteration and report order; the index is the label id.
	Classes []string `json:"classes" yaml:"classes"`
	// IoUThreshold is the minimum overlap of a true positive.
	IoUThreshold float32 `json:"iou_thresh" yaml:"iou_thresh"`
	// Use07Metric selects VOC2007 11-point AP instead of the exact integral.
	Use07Metric bool `json:"use_07_metric" yaml:"use_07_metric"`
}

// DefaultFrameConfig returns the configuration for box and frame evaluation.
func DefaultFrameConfig() Config {
	return Config{IoUThreshold: 0.5}
}

// DefaultTubeConfig returns the configuration for tube evaluation.
func DefaultTubeConfig() Config {
	return Config{IoUThreshold: 0.2}
}

// Validate checks that the configuration can drive an evaluation.
func (c Config) Validate() error {
	if len(c.Classes) == 0 {
		return ErrNoClasses
	}
	if c.IoUThreshold < 0 || c.IoUThreshold > 1 {
		return errors.Errorf("evaluation: iou threshold %g outside [0, 1]", c.IoUThreshold)
	}
	return nil
}

// Progress receives one tick per finished class. Implementations must be
// safe for concurrent use; *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// Option configures an Evaluator.
type Option func(*options)

type options struct {
	reporter Reporter
	workers  int
	progress Progress
	tubeIoU  TubeIoUFunc
}

func defaultOptions() options {
	return options{
		reporter: NopReporter{},
		workers:  runtime.NumCPU(),
	}
}

// WithReporter sets the sink that receives per-class and summary results
// (default: NopReporter).
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithWorkers bounds how many classes are evaluated at once
// (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress sets a hook ticked once per finished class.
func WithProgress(p Progress) Option {
	return func(o *options) {
		o.progress = p
	}
}

// WithTubeIoU replaces the space-time comparator used by EvaluateTubes
// (default: common.TubeIoU).
func WithTubeIoU(fn TubeIoUFunc) Option {
	return func(o *options) {
		o.tubeIoU = fn
	}
}

// Evaluator runs evaluations. It holds no per-run state and may be reused.
type Evaluator struct {
	opts options
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Evaluator{opts: o}
}
