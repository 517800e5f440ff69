package evaluation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Point is one operating point of a precision-recall curve.
type Point struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// CurveBuilder accumulates the incremental precision-recall curve while
// detections are labeled in rank order. The curve starts at the sentinel
// (precision 1, recall 0).
type CurveBuilder struct {
	tp, fp, fn int
	points     []Point
}

// NewCurveBuilder starts a curve for a class with the given number of
// ground-truth positives. positives is floored at 1.
func NewCurveBuilder(positives, capacity int) *CurveBuilder {
	b := &CurveBuilder{
		fn:     max(positives, 1),
		points: make([]Point, 1, capacity+1),
	}
	b.points[0] = Point{Precision: 1, Recall: 0}
	return b
}

// Add records the next detection in rank order.
func (b *CurveBuilder) Add(truePositive bool) {
	if truePositive {
		b.tp++
		b.fn--
	} else {
		b.fp++
	}
	b.points = append(b.points, Point{
		Precision: float64(b.tp) / float64(b.tp+b.fp),
		Recall:    float64(b.tp) / float64(b.tp+b.fn),
	})
}

// Counts returns the running true positive, false positive and false
// negative counts.
func (b *CurveBuilder) Counts() (tp, fp, fn int) { return b.tp, b.fp, b.fn }

// Points returns the curve, sentinel included.
func (b *CurveBuilder) Points() []Point { return b.points }

// BatchCurve derives recall and precision for every rank in one shot from
// labeled detections.
//
// Detections are re-sorted by descending score (ties keep their input order),
// then cumulative true and false positive counts give
// recall[i] = tp[i]/positives and precision[i] = tp[i]/max(tp[i]+fp[i], eps).
//
// Arguments:
//   - scores: Detection confidences.
//   - truePositive: Match label of each detection, aligned with scores.
//   - positives: Number of ground-truth positives, floored at 1.
//
// Returns:
//   - recall, precision: One value per detection, in rank order.
func BatchCurve(scores []float64, truePositive []bool, positives int) (recall, precision []float64) {
	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	tp := make([]float64, n)
	fp := make([]float64, n)
	for rank, i := range order {
		if truePositive[i] {
			tp[rank] = 1
		} else {
			fp[rank] = 1
		}
	}
	floats.CumSum(tp, tp)
	floats.CumSum(fp, fp)

	denom := float64(max(positives, 1))
	recall = make([]float64, n)
	precision = make([]float64, n)
	for i := range tp {
		recall[i] = tp[i] / denom
		precision[i] = tp[i] / math.Max(tp[i]+fp[i], epsilon)
	}
	return recall, precision
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// SplitCurve separates a curve into its recall and precision sequences.
func SplitCurve(points []Point) (recall, precision []float64) {
	recall = make([]float64, len(points))
	precision = make([]float64, len(points))
	for i, p := range points {
		recall[i] = p.Recall
		precision[i] = p.Precision
	}
	return recall, precision
}
