package evaluation

import (
	"context"

	"github.com/nvr-ai/go-eval/common"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Label types with special handling.
const (
	// LabelTypeAVActions is ROAD's ego-action label type.
	LabelTypeAVActions = "av_actions"
	// LabelTypeFrameActions is the ego-action label type of other datasets.
	LabelTypeFrameActions = "frame_actions"
	// LabelTypeAgentness is the class-agnostic "is there an agent" label type.
	LabelTypeAgentness = "agent_ness"
)

// LabelType is one annotation vocabulary evaluated as its own class list.
type LabelType struct {
	Name    string   `json:"name" yaml:"name"`
	Classes []string `json:"classes" yaml:"classes"`
}

// IsEgo reports whether the label type is scored per frame without geometry.
func (l LabelType) IsEgo() bool {
	return l.Name == LabelTypeAVActions || l.Name == LabelTypeFrameActions
}

// classes returns the class list, defaulting agentness to its single class.
func (l LabelType) classes() []string {
	if l.Name == LabelTypeAgentness && len(l.Classes) == 0 {
		return []string{LabelTypeAgentness}
	}
	return l.Classes
}

// EgoSet is the input of frame-wise ego-action evaluation.
type EgoSet struct {
	// Labels is the ground-truth label per annotated frame.
	Labels []int
	// Scores is frames × classes, rows aligned with Labels.
	Scores mat.Matrix
}

// FrameSplit holds every label type of one dataset split for frame-level
// evaluation.
type FrameSplit struct {
	Dataset    string
	LabelTypes []LabelType
	// GroundTruth is keyed by label type, then frame id.
	GroundTruth map[string]map[string][]GroundTruth[common.Box]
	// Detections is keyed by label type, then frame id.
	Detections map[string]map[string][]common.BoundingBox
	// Ego is keyed by label type.
	Ego map[string]*EgoSet
}

// EvaluateSplit evaluates every label type of a split. Ego label types go
// through EvaluateFramewiseEgo, the others through EvaluateFrames.
//
// Arguments:
//   - ctx: Cancels the remaining work.
//   - split: The inputs of every label type.
//   - cfg: IoU threshold and AP variant; classes come from the label types.
//
// Returns:
//   - map[string]*Result: One result per label type name.
//   - error: The first failing label type, wrapped with its name.
func (e *Evaluator) EvaluateSplit(ctx context.Context, split *FrameSplit, cfg Config) (map[string]*Result, error) {
	results := make(map[string]*Result, len(split.LabelTypes))
	for _, lt := range split.LabelTypes {
		ltCfg := cfg
		ltCfg.Classes = lt.classes()

		var (
			res *Result
			err error
		)
		if lt.IsEgo() {
			ego, ok := split.Ego[lt.Name]
			if !ok || ego == nil {
				return nil, errors.Wrapf(ErrMissingLabelType, "no ego labels for %q", lt.Name)
			}
			res, err = e.framewiseEgo(ctx, split.Dataset, lt.Name, ego.Labels, ego.Scores, ltCfg)
		} else {
			gts, ok := split.GroundTruth[lt.Name]
			if !ok {
				return nil, errors.Wrapf(ErrMissingLabelType, "no ground truth for %q", lt.Name)
			}
			res, err = e.EvaluateFrames(ctx, lt.Name, gts, split.Detections[lt.Name], ltCfg)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "label type %q", lt.Name)
		}
		results[lt.Name] = res
	}
	return results, nil
}
