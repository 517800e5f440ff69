package evaluation

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// VOCAP computes Average Precision from recall and precision sequences in
// rank order, on a 0..100 scale.
//
// With use07 the VOC2007 11-point interpolation is used: for each recall
// threshold t in {0, 0.1, ..., 1} take the highest precision at recall >= t
// and average the 11 values. Otherwise the exact area is integrated: recall
// is padded with 0 and 1, precision with 0 and 0, precision is replaced by
// its envelope (running maximum from the end), and Δrecall × precision is
// summed wherever recall changes.
func VOCAP(recall, precision []float64, use07 bool) float64 {
	if use07 {
		var ap float64
		for t := 0; t <= 10; t++ {
			thr := float64(t) / 10
			p := 0.0
			for i, r := range recall {
				if r >= thr {
					p = math.Max(p, precision[i])
				}
			}
			ap += p / 11
		}
		return ap * 100
	}

	mrec, mpre := envelope(recall, precision)

	var ap float64
	for i := 0; i < len(mrec)-1; i++ {
		if mrec[i+1] != mrec[i] {
			ap += (mrec[i+1] - mrec[i]) * mpre[i+1]
		}
	}
	return ap * 100
}

// envelope pads recall with 0 and 1 and precision with 0 and 0, then
// replaces precision by its running maximum from the end.
func envelope(recall, precision []float64) (mrec, mpre []float64) {
	n := len(recall)
	mrec = make([]float64, n+2)
	mpre = make([]float64, n+2)
	copy(mrec[1:], recall)
	copy(mpre[1:], precision)
	mrec[n+1] = 1

	for i := len(mpre) - 1; i > 0; i-- {
		mpre[i-1] = math.Max(mpre[i-1], mpre[i])
	}
	return mrec, mpre
}

// TrapezoidAP integrates a precision-recall curve with the trapezoidal rule:
// Σ 0.5 × (recall[i+1] − recall[i]) × (precision[i] + precision[i+1]).
// The result is the raw area; callers scale it to a percentage.
func TrapezoidAP(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	areas := make([]float64, len(points)-1)
	for i := range areas {
		a, b := points[i], points[i+1]
		areas[i] = 0.5 * (b.Recall - a.Recall) * (a.Precision + b.Precision)
	}
	return floats.Sum(areas)
}
