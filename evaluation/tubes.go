package evaluation

import (
	"context"

	"github.com/nvr-ai/go-eval/common"
)

// EvaluateTubes evaluates space-time tube detections.
//
// For every class the tubes of all videos are matched greedily with the
// space-time comparator (common.TubeIoU unless WithTubeIoU replaced it), the
// incremental precision-recall curve is integrated with the trapezoidal rule,
// and mAP is the plain mean over classes. Only videos present in gts are
// scored; detections of other videos are outside the split.
//
// Arguments:
//   - ctx: Cancels classes not yet started.
//   - gts: Ground-truth tubes per video.
//   - dets: Detection tubes per video; Label selects the class.
//   - cfg: Classes and IoU threshold (DefaultTubeConfig uses 0.2).
//
// Returns:
//   - *Result: mAP, per-class AP and report lines ending with the mean line.
//   - error: Malformed tubes, wrapped with class and video.
func (e *Evaluator) EvaluateTubes(ctx context.Context, gts map[string][]GroundTruth[common.Tube], dets map[string][]common.TubeDetection, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e.opts.reporter.Begin("", len(gts))

	videos := sortedUnits(gts)
	overlap := TubeOverlap{IoU: e.opts.tubeIoU}

	classes, err := e.forEachClass(ctx, cfg.Classes, func(_ context.Context, label int) (ClassResult, error) {
		var classDets []Detection[common.Tube]
		for _, video := range videos {
			for _, tube := range dets[video] {
				if tube.Label != label {
					continue
				}
				classDets = append(classDets, Detection[common.Tube]{Unit: video, Region: tube.Tube, Score: tube.Score})
			}
		}

		m, err := Greedy[common.Tube](classDets, NewPool(gts, label), overlap, cfg.IoUThreshold)
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
	return e.finish("", classes, meanAPLine("")), nil
}
