package evaluation

import (
	"context"
	"strconv"

	"github.com/nvr-ai/go-eval/common"
	"github.com/pkg/errors"
)

// BoxSet is the input of one still-frame box evaluation.
type BoxSet struct {
	LabelType string
	Classes   []string
	// GroundTruth is indexed by frame.
	GroundTruth [][]GroundTruth[common.Box]
	// Detections is indexed by class, then frame.
	Detections [][][]common.BoundingBox
}

// frameUnits keys per-frame ground truth by frame position.
func frameUnits(gts [][]GroundTruth[common.Box]) map[string][]GroundTruth[common.Box] {
	units := make(map[string][]GroundTruth[common.Box], len(gts))
	for nf, frame := range gts {
		units[strconv.Itoa(nf)] = frame
	}
	return units
}

// EvaluateDetections evaluates still-frame box detections.
//
// For every class the detections of all frames are matched greedily with 2D
// IoU, the precision-recall curve is rebuilt in batch form and integrated with
// the VOC rule (cfg.Use07Metric selects the 11-point variant).
//
// Arguments:
//   - ctx: Cancels classes not yet started.
//   - gts: Ground truth, indexed by frame.
//   - dets: Detections, indexed by class then frame. A class entry may be
//     empty; otherwise it must have one list per frame.
//   - cfg: Classes, IoU threshold and AP variant.
//
// Returns:
//   - *Result: mAP, per-class AP and report lines.
//   - error: ErrMissingClass, ErrShapeMismatch, or a configuration error.
func (e *Evaluator) EvaluateDetections(ctx context.Context, gts [][]GroundTruth[common.Box], dets [][][]common.BoundingBox, cfg Config) (*Result, error) {
	return e.evaluateBoxes(ctx, "", gts, dets, cfg)
}

// EvaluateAll evaluates several label types in box mode, one result per set.
// cfg supplies the threshold and AP variant; classes come from each set.
func (e *Evaluator) EvaluateAll(ctx context.Context, sets []BoxSet, cfg Config) ([]*Result, error) {
	results := make([]*Result, 0, len(sets))
	for _, set := range sets {
		setCfg := cfg
		setCfg.Classes = set.Classes
		res, err := e.evaluateBoxes(ctx, set.LabelType, set.GroundTruth, set.Detections, setCfg)
		if err != nil {
			return nil, errors.Wrapf(err, "label type %q", set.LabelType)
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Evaluator) evaluateBoxes(ctx context.Context, labelType string, gts [][]GroundTruth[common.Box], dets [][][]common.BoundingBox, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e.opts.reporter.Begin(labelType, len(gts))

	units := frameUnits(gts)
	classes, err := e.forEachClass(ctx, cfg.Classes, func(_ context.Context, label int) (ClassResult, error) {
		if label >= len(dets) {
			return ClassResult{}, errors.Wrapf(ErrMissingClass, "no detections for class index %d", label)
		}
		frames := dets[label]
		if len(frames) != 0 && len(frames) != len(gts) {
			return ClassResult{}, errors.Wrapf(ErrShapeMismatch, "%d detection frames for %d ground-truth frames", len(frames), len(gts))
		}

		var classDets []Detection[common.Box]
		for nf, frame := range frames {
			unit := strconv.Itoa(nf)
			for _, bb := range frame {
				classDets = append(classDets, Detection[common.Box]{Unit: unit, Region: bb.Box, Score: bb.Confidence})
			}
		}

		m, err := Greedy[common.Box](classDets, NewPool(units, label), BoxOverlap{}, cfg.IoUThreshold)
		if err != nil {
			return ClassResult{}, err
		}
		scores, tps := m.Scores()
		recall, precision := BatchCurve(scores, tps, m.Positives)

		return ClassResult{
			AP:            VOCAP(recall, precision, cfg.Use07Metric),
			NumPositives:  m.Positives,
			NumDetections: len(classDets),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return e.finish(labelType, classes, nil), nil
}
