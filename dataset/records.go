// Package dataset - Normalized JSON inputs and their conversion into typed
// evaluation records.
package dataset

import (
	"github.com/nvr-ai/go-eval/common"
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// BoxRecord is one annotated box. A box may carry several labels of the same
// label type; each becomes its own ground-truth instance.
type BoxRecord struct {
	Box    []float32 `json:"box"`
	Labels []int     `json:"labels"`
	Ignore bool      `json:"ignore,omitempty"`
}

// DetectionRecord is one scored box.
type DetectionRecord struct {
	Box   []float32 `json:"box"`
	Label int       `json:"label"`
	Score float32   `json:"score"`
}

// TubeRecord is one ground-truth or detected tube. Scores is only read for
// detections.
type TubeRecord struct {
	Frames []int       `json:"frames"`
	Boxes  [][]float32 `json:"boxes"`
	Scores []float32   `json:"scores,omitempty"`
	Label  int         `json:"label"`
	Ignore bool        `json:"ignore,omitempty"`
}

// groundTruthBoxes converts the annotations of one frame, dropping ignore
// instances.
func groundTruthBoxes(records []BoxRecord) ([]evaluation.GroundTruth[common.Box], error) {
	gts := make([]evaluation.GroundTruth[common.Box], 0, len(records))
	for i, r := range records {
		if r.Ignore {
			continue
		}
		box, err := common.NewBox(r.Box)
		if err != nil {
			return nil, errors.Wrapf(err, "annotation %d", i)
		}
		gts = append(gts, lo.Map(r.Labels, func(label int, _ int) evaluation.GroundTruth[common.Box] {
			return evaluation.GroundTruth[common.Box]{Region: box, Label: label}
		})...)
	}
	return gts, nil
}

func boundingBoxes(records []DetectionRecord) ([]common.BoundingBox, error) {
	boxes := make([]common.BoundingBox, len(records))
	for i, r := range records {
		box, err := common.NewBox(r.Box)
		if err != nil {
			return nil, errors.Wrapf(err, "detection %d", i)
		}
		boxes[i] = common.BoundingBox{Box: box, Label: r.Label, Confidence: r.Score}
	}
	return boxes, nil
}

func (r TubeRecord) boxes() ([]common.Box, error) {
	boxes := make([]common.Box, len(r.Boxes))
	for i, coords := range r.Boxes {
		box, err := common.NewBox(coords)
		if err != nil {
			return nil, errors.Wrapf(err, "tube box %d", i)
		}
		boxes[i] = box
	}
	return boxes, nil
}

// groundTruthTubes converts the annotated tubes of one video, dropping
// ignore instances.
func groundTruthTubes(records []TubeRecord) ([]evaluation.GroundTruth[common.Tube], error) {
	gts := make([]evaluation.GroundTruth[common.Tube], 0, len(records))
	for i, r := range records {
		if r.Ignore {
			continue
		}
		boxes, err := r.boxes()
		if err != nil {
			return nil, errors.Wrapf(err, "tube %d", i)
		}
		tube, err := common.NewTube(r.Frames, boxes)
		if err != nil {
			return nil, errors.Wrapf(err, "tube %d", i)
		}
		gts = append(gts, evaluation.GroundTruth[common.Tube]{Region: tube, Label: r.Label})
	}
	return gts, nil
}

func detectionTubes(records []TubeRecord) ([]common.TubeDetection, error) {
	dets := make([]common.TubeDetection, len(records))
	for i, r := range records {
		boxes, err := r.boxes()
		if err != nil {
			return nil, errors.Wrapf(err, "tube %d", i)
		}
		det, err := common.MakeDetectionTube(r.Scores, boxes, r.Frames, r.Label)
		if err != nil {
			return nil, errors.Wrapf(err, "tube %d", i)
		}
		dets[i] = det
	}
	return dets, nil
}

// convertUnits applies fn to every unit of a unit-keyed collection,
// wrapping failures with the unit id.
func convertUnits[In, Out any](in map[string][]In, fn func([]In) ([]Out, error)) (map[string][]Out, error) {
	out := make(map[string][]Out, len(in))
	for unit, records := range in {
		converted, err := fn(records)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %q", unit)
		}
		out[unit] = converted
	}
	return out, nil
}
