package dataset

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/nvr-ai/go-eval/common"
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
)

// BoxDocument is the input of still-frame box evaluation.
type BoxDocument struct {
	// GroundTruth is indexed by frame.
	GroundTruth [][]BoxRecord `json:"ground_truth"`
	// Detections is indexed by class, then frame.
	Detections [][][]DetectionRecord `json:"detections"`
}

// Inputs converts the document. The label of each detection is taken from
// its class index.
func (d *BoxDocument) Inputs() ([][]evaluation.GroundTruth[common.Box], [][][]common.BoundingBox, error) {
	gts := make([][]evaluation.GroundTruth[common.Box], len(d.GroundTruth))
	for nf, frame := range d.GroundTruth {
		converted, err := groundTruthBoxes(frame)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "frame %d", nf)
		}
		gts[nf] = converted
	}

	dets := make([][][]common.BoundingBox, len(d.Detections))
	for label, frames := range d.Detections {
		dets[label] = make([][]common.BoundingBox, len(frames))
		for nf, frame := range frames {
			boxes, err := boundingBoxes(frame)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "class %d frame %d", label, nf)
			}
			for i := range boxes {
				boxes[i].Label = label
			}
			dets[label][nf] = boxes
		}
	}
	return gts, dets, nil
}

// FrameDocument is the input of per-frame evaluation of one label type.
type FrameDocument struct {
	LabelType   string                       `json:"label_type"`
	GroundTruth map[string][]BoxRecord       `json:"ground_truth"`
	Detections  map[string][]DetectionRecord `json:"detections"`
	// IgnoreFrames are left out of the ground truth, and with it out of
	// scoring.
	IgnoreFrames []string `json:"ignore_frames,omitempty"`
}

// Inputs converts the document.
func (d *FrameDocument) Inputs() (map[string][]evaluation.GroundTruth[common.Box], map[string][]common.BoundingBox, error) {
	gts, err := convertUnits(lo.OmitByKeys(d.GroundTruth, d.IgnoreFrames), groundTruthBoxes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ground truth")
	}
	dets, err := convertUnits(d.Detections, boundingBoxes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "detections")
	}
	return gts, dets, nil
}

// TubeDocument is the input of tube evaluation, keyed by video.
type TubeDocument struct {
	GroundTruth map[string][]TubeRecord `json:"ground_truth"`
	Detections  map[string][]TubeRecord `json:"detections"`
}

// Inputs converts the document. Detection tube scores are the mean of their
// per-frame scores.
func (d *TubeDocument) Inputs() (map[string][]evaluation.GroundTruth[common.Tube], map[string][]common.TubeDetection, error) {
	gts, err := convertUnits(d.GroundTruth, groundTruthTubes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ground truth")
	}
	dets, err := convertUnits(d.Detections, detectionTubes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "detections")
	}
	return gts, dets, nil
}

// EgoDocument is the input of frame-wise ego-action evaluation.
type EgoDocument struct {
	// Labels is the ground-truth class per frame.
	Labels []int `json:"labels"`
	// Scores holds one score vector per frame.
	Scores [][]float64 `json:"scores"`
}

// Inputs converts the document into labels and a frames × classes matrix.
func (d *EgoDocument) Inputs() ([]int, *mat.Dense, error) {
	if len(d.Scores) != len(d.Labels) {
		return nil, nil, errors.Wrapf(ErrMalformedInput, "%d score rows for %d labels", len(d.Scores), len(d.Labels))
	}
	if len(d.Scores) == 0 {
		return nil, nil, errors.Wrap(ErrMalformedInput, "no frames")
	}
	cols := len(d.Scores[0])
	if cols == 0 || !lo.EveryBy(d.Scores, func(row []float64) bool { return len(row) == cols }) {
		return nil, nil, errors.Wrap(ErrMalformedInput, "score rows differ in length")
	}
	return d.Labels, mat.NewDense(len(d.Scores), cols, lo.Flatten(d.Scores)), nil
}

// SplitDocument holds every label type of one dataset split.
type SplitDocument struct {
	Dataset     string                                  `json:"dataset"`
	LabelTypes  []evaluation.LabelType                  `json:"label_types"`
	GroundTruth map[string]map[string][]BoxRecord       `json:"ground_truth"`
	Detections  map[string]map[string][]DetectionRecord `json:"detections"`
	Ego         map[string]*EgoDocument                 `json:"ego"`
	// IgnoreFrames applies to every label type.
	IgnoreFrames []string `json:"ignore_frames,omitempty"`
}

// Split converts the document.
func (d *SplitDocument) Split() (*evaluation.FrameSplit, error) {
	split := &evaluation.FrameSplit{
		Dataset:     d.Dataset,
		LabelTypes:  d.LabelTypes,
		GroundTruth: make(map[string]map[string][]evaluation.GroundTruth[common.Box], len(d.GroundTruth)),
		Detections:  make(map[string]map[string][]common.BoundingBox, len(d.Detections)),
		Ego:         make(map[string]*evaluation.EgoSet, len(d.Ego)),
	}

	names := lo.Keys(d.GroundTruth)
	sort.Strings(names)
	for _, name := range names {
		frame := FrameDocument{
			GroundTruth:  d.GroundTruth[name],
			Detections:   d.Detections[name],
			IgnoreFrames: d.IgnoreFrames,
		}
		gts, dets, err := frame.Inputs()
		if err != nil {
			return nil, errors.Wrapf(err, "label type %q", name)
		}
		split.GroundTruth[name] = gts
		split.Detections[name] = dets
	}

	for name, ego := range d.Ego {
		if ego == nil {
			continue
		}
		labels, scores, err := ego.Inputs()
		if err != nil {
			return nil, errors.Wrapf(err, "label type %q", name)
		}
		split.Ego[name] = &evaluation.EgoSet{Labels: labels, Scores: scores}
	}
	return split, nil
}

// Decode reads one JSON document.
func Decode[T any](r io.Reader) (*T, error) {
	var doc T
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}
	return &doc, nil
}

// Load reads one JSON document from a file.
func Load[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open document")
	}
	defer f.Close()

	doc, err := Decode[T](f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}
