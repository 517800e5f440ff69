package evaluation

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Datasets with a frame-wise ego-action strategy.
const (
	DatasetROAD  = "road"
	DatasetAARAV = "aarav"
)

// EvaluateEgo evaluates per-frame single-label classification.
//
// Every frame has one ground-truth label and one score per class. For class
// c the frames labeled c are the positives and the class-c column of scores
// ranks all frames; AP comes from the batch curve and the VOC rule.
// Report lines carry the unfloored positive count and the frame count.
//
// Arguments:
//   - ctx: Cancels classes not yet started.
//   - gts: Ground-truth label per frame.
//   - scores: Frames × classes score matrix.
//   - cfg: Classes and AP variant. The IoU threshold is unused.
//
// Returns:
//   - *Result: mAP, per-class AP and report lines.
//   - error: ErrShapeMismatch or ErrMissingClass when scores do not fit.
func (e *Evaluator) EvaluateEgo(ctx context.Context, gts []int, scores mat.Matrix, cfg Config) (*Result, error) {
	return e.evaluateEgo(ctx, "", gts, scores, cfg)
}

func (e *Evaluator) evaluateEgo(ctx context.Context, labelType string, gts []int, scores mat.Matrix, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scores == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "no score matrix")
	}
	rows, cols := scores.Dims()
	if rows != len(gts) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d score rows for %d frames", rows, len(gts))
	}
	e.opts.reporter.Begin(labelType, len(gts))

	classes, err := e.forEachClass(ctx, cfg.Classes, func(_ context.Context, label int) (ClassResult, error) {
		if label >= cols {
			return ClassResult{}, errors.Wrapf(ErrMissingClass, "no score column for class index %d", label)
		}
		col := mat.Col(nil, label, scores)

		positives := 0
		istp := make([]bool, len(gts))
		for i, gt := range gts {
			if gt == label {
				istp[i] = true
				positives++
			}
		}
		recall, precision := BatchCurve(col, istp, positives)

		return ClassResult{
			AP:            VOCAP(recall, precision, cfg.Use07Metric),
			NumPositives:  positives,
			NumDetections: len(gts),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return e.finish(labelType, classes, nil), nil
}

// EvaluateFramewiseEgo dispatches ego-action evaluation to the strategy of
// the dataset. Only ROAD (formerly AARAV) has one; any other dataset fails
// with ErrNotImplemented instead of reporting a zero result.
func (e *Evaluator) EvaluateFramewiseEgo(ctx context.Context, dataset string, gts []int, scores mat.Matrix, cfg Config) (*Result, error) {
	return e.framewiseEgo(ctx, dataset, "", gts, scores, cfg)
}

func (e *Evaluator) framewiseEgo(ctx context.Context, dataset, labelType string, gts []int, scores mat.Matrix, cfg Config) (*Result, error) {
	switch dataset {
	case DatasetROAD, DatasetAARAV:
		return e.evaluateEgo(ctx, labelType, gts, scores, cfg)
	default:
		return nil, errors.Wrapf(ErrNotImplemented, "frame-wise ego actions for dataset %q", dataset)
	}
}
