package common

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Tube is a space-time region: one box per frame, ordered by frame index.
// Frames may be sparse.
type Tube struct {
	Frames []int
	Boxes  []Box
}

// NewTube builds a validated Tube.
func NewTube(frames []int, boxes []Box) (Tube, error) {
	t := Tube{Frames: frames, Boxes: boxes}
	if err := t.Validate(); err != nil {
		return Tube{}, err
	}
	return t, nil
}

// Validate checks that the tube has one box per frame and strictly
// increasing frame indices.
func (t Tube) Validate() error {
	if len(t.Frames) == 0 {
		return errors.Wrap(ErrMalformedRegion, "tube has no frames")
	}
	if len(t.Frames) != len(t.Boxes) {
		return errors.Wrapf(ErrMalformedRegion, "tube has %d frames but %d boxes", len(t.Frames), len(t.Boxes))
	}
	for i := 1; i < len(t.Frames); i++ {
		if t.Frames[i] <= t.Frames[i-1] {
			return errors.Wrapf(ErrMalformedRegion, "tube frames not increasing at position %d", i)
		}
	}
	return nil
}

// Start is the first frame index of the tube.
func (t Tube) Start() int { return t.Frames[0] }

// End is the last frame index of the tube (inclusive).
func (t Tube) End() int { return t.Frames[len(t.Frames)-1] }

// BoxAt returns the box of the tube at the given frame, if the tube covers it.
func (t Tube) BoxAt(frame int) (Box, bool) {
	i := sort.SearchInts(t.Frames, frame)
	if i < len(t.Frames) && t.Frames[i] == frame {
		return t.Boxes[i], true
	}
	return Box{}, false
}

// temporalOverlap returns the inclusive intersection range of two tubes and
// the temporal IoU. ok is false when the ranges are disjoint.
func temporalOverlap(a, b Tube) (tmin, tmax int, tiou float32, ok bool) {
	tmin = max(a.Start(), b.Start())
	tmax = min(a.End(), b.End())
	if tmax < tmin {
		return 0, 0, 0, false
	}
	inter := tmax - tmin + 1
	union := max(a.End(), b.End()) - min(a.Start(), b.Start()) + 1
	return tmin, tmax, float32(inter) / float32(union), true
}

// TemporalIoU is the IoU of the two tubes' frame ranges, ignoring space.
func TemporalIoU(a, b Tube) float32 {
	if len(a.Frames) == 0 || len(b.Frames) == 0 {
		return 0
	}
	_, _, tiou, ok := temporalOverlap(a, b)
	if !ok {
		return 0
	}
	return tiou
}

// TubeIoU computes the spatio-temporal overlap of two tubes.
//
// The temporal IoU of the frame ranges is multiplied by the mean spatial IoU
// over every frame of the temporal intersection. A frame inside the
// intersection that only one of the tubes covers contributes zero, so gaps
// and misalignment are penalized.
//
// Arguments:
//   - a: The detection tube.
//   - b: The ground-truth tube.
//
// Returns:
//   - The overlap in [0, 1]; 0 when the frame ranges do not intersect.
func TubeIoU(a, b Tube) float32 {
	if len(a.Frames) == 0 || len(b.Frames) == 0 {
		return 0
	}
	tmin, tmax, tiou, ok := temporalOverlap(a, b)
	if !ok {
		return 0
	}

	// Walk the frames both tubes annotate inside [tmin, tmax]; any other
	// frame of the range contributes zero.
	var sum float32
	i := sort.SearchInts(a.Frames, tmin)
	j := sort.SearchInts(b.Frames, tmin)
	for i < len(a.Frames) && j < len(b.Frames) && a.Frames[i] <= tmax && b.Frames[j] <= tmax {
		switch fa, fb := a.Frames[i], b.Frames[j]; {
		case fa < fb:
			i++
		case fa > fb:
			j++
		default:
			sum += a.Boxes[i].IoU(b.Boxes[j])
			i++
			j++
		}
	}
	siou := sum / float32(tmax-tmin+1)
	return tiou * siou
}

// TubeDetection is a scored tube produced by a detector and linker.
type TubeDetection struct {
	Tube
	// Scores holds the per-frame confidences, aligned with Frames.
	Scores []float32
	// Score is the tube-level confidence used for ranking.
	Score float32
	Label int
}

// MakeDetectionTube assembles a TubeDetection whose score is the mean of
// its per-frame scores.
func MakeDetectionTube(scores []float32, boxes []Box, frames []int, label int) (TubeDetection, error) {
	tube, err := NewTube(frames, boxes)
	if err != nil {
		return TubeDetection{}, err
	}
	if len(scores) != len(frames) {
		return TubeDetection{}, errors.Wrapf(ErrMalformedRegion, "tube has %d frames but %d scores", len(frames), len(scores))
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s)
	}

	return TubeDetection{
		Tube:   tube,
		Scores: scores,
		Score:  float32(stat.Mean(values, nil)),
		Label:  label,
	}, nil
}
