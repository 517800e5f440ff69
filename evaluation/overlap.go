package evaluation

import (
	"github.com/nvr-ai/go-eval/common"
)

// Overlap computes the overlap of one detection region against the
// remaining ground-truth regions of its unit.
type Overlap[R any] interface {
	Overlaps(det R, gts []R) ([]float32, error)
}

// BoxOverlap is the 2D IoU comparator used for still-frame boxes.
type BoxOverlap struct{}

// Overlaps implements Overlap.
func (BoxOverlap) Overlaps(det common.Box, gts []common.Box) ([]float32, error) {
	return common.IoUBatch(det, gts), nil
}

// TubeIoUFunc scores a detection tube against a ground-truth tube in [0, 1].
type TubeIoUFunc func(det, gt common.Tube) float32

// TubeOverlap is the space-time comparator used for tubes. IoU defaults to
// common.TubeIoU.
type TubeOverlap struct {
	IoU TubeIoUFunc
}

// Overlaps implements Overlap. Both tubes are validated before comparison.
func (o TubeOverlap) Overlaps(det common.Tube, gts []common.Tube) ([]float32, error) {
	fn := o.IoU
	if fn == nil {
		fn = common.TubeIoU
	}
	if err := det.Validate(); err != nil {
		return nil, err
	}

	ious := make([]float32, len(gts))
	for i, gt := range gts {
		if err := gt.Validate(); err != nil {
			return nil, err
		}
		ious[i] = fn(det, gt)
	}
	return ious, nil
}
