package evaluation

import (
	"context"

	"github.com/nvr-ai/go-eval/common"
)

// EvaluateFrames evaluates per-frame box detections of one label type.
//
// Frames are the evaluation units. Only frames present in gts are scored, so
// frames dropped upstream as ignored take their detections with them. Each
// class is matched greedily with 2D IoU and its incremental curve integrated
// with the trapezoidal rule.
//
// Arguments:
//   - ctx: Cancels classes not yet started.
//   - labelType: Name of the label type, used in the mean line.
//   - gts: Ground truth per frame id.
//   - dets: Detections per frame id; Label selects the class.
//   - cfg: Classes and IoU threshold.
//
// Returns:
//   - *Result: mAP, per-class AP and report lines ending with the mean line.
//   - error: A configuration error.
func (e *Evaluator) EvaluateFrames(ctx context.Context, labelType string, gts map[string][]GroundTruth[common.Box], dets map[string][]common.BoundingBox, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e.opts.reporter.Begin(labelType, len(gts))

	frames := sortedUnits(gts)

	classes, err := e.forEachClass(ctx, cfg.Classes, func(_ context.Context, label int) (ClassResult, error) {
		var classDets []Detection[common.Box]
		for _, frame := range frames {
			for _, bb := range dets[frame] {
				if bb.Label != label {
					continue
				}
				classDets = append(classDets, Detection[common.Box]{Unit: frame, Region: bb.Box, Score: bb.Confidence})
			}
		}

		m, err := Greedy[common.Box](classDets, NewPool(gts, label), BoxOverlap{}, cfg.IoUThreshold)
		if err != nil {
			return ClassResult{}, err
		}
		return ClassResult{
			AP:            100 * TrapezoidAP(m.Curve),
			NumPositives:  m.Positives,
			NumDetections: len(classDets),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return e.finish(labelType, classes, meanAPLine(labelType+" ")), nil
}
