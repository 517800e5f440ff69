package evaluation

import (
	"sort"

	"github.com/pkg/errors"
)

// Match is the outcome of one detection of the greedy pass.
type Match struct {
	Unit         string  `json:"unit"`
	Score        float32 `json:"score"`
	TruePositive bool    `json:"true_positive"`
	// Overlap is the best overlap found, 0 when the unit had nothing left.
	Overlap float32 `json:"overlap"`
}

// Matching is the result of a greedy pass over one class.
type Matching struct {
	// Matches are in rank order (descending score).
	Matches []Match
	// Positives is the ground-truth count, floored at 1.
	Positives      int
	TruePositives  int
	FalsePositives int
	// FalseNegatives is the floored positive count minus the matches.
	FalseNegatives int
	// Curve is the incremental precision-recall curve, sentinel included.
	Curve []Point
}

// Scores returns the match scores and labels for the batch curve form.
func (m *Matching) Scores() (scores []float64, truePositive []bool) {
	scores = make([]float64, len(m.Matches))
	truePositive = make([]bool, len(m.Matches))
	for i, match := range m.Matches {
		scores[i] = float64(match.Score)
		truePositive[i] = match.TruePositive
	}
	return scores, truePositive
}

// Greedy labels every detection of one class as true or false positive.
//
// Detections are visited in descending score order; equal scores keep their
// input order. For each detection the remaining ground truth of its unit is
// compared with the overlap comparator and the first instance of maximum
// overlap is taken when that overlap reaches threshold. A taken instance is
// removed from the pool and can never match again. A detection whose unit
// has nothing left is a false positive without comparison.
//
// Arguments:
//   - dets: All detections of the class, across units.
//   - pool: The class's fresh ground-truth pool. It is consumed.
//   - overlap: The comparator for the region type.
//   - threshold: Minimum overlap for a true positive.
//
// Returns:
//   - *Matching: Labels, counts and the incremental curve.
//   - error: Comparator failures, wrapped with the unit id.
func Greedy[R any](dets []Detection[R], pool *Pool[R], overlap Overlap[R], threshold float32) (*Matching, error) {
	order := make([]int, len(dets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dets[order[a]].Score > dets[order[b]].Score
	})

	curve := NewCurveBuilder(pool.Total(), len(dets))
	matches := make([]Match, 0, len(dets))

	for _, i := range order {
		det := dets[i]
		match := Match{Unit: det.Unit, Score: det.Score}

		if pool.Remaining(det.Unit) > 0 {
			ious, err := overlap.Overlaps(det.Region, pool.Candidates(det.Unit))
			if err != nil {
				return nil, errors.Wrapf(err, "unit %q", det.Unit)
			}
			best := argmax(ious)
			match.Overlap = ious[best]
			if ious[best] >= threshold {
				match.TruePositive = true
				pool.Take(det.Unit, best)
			}
		}

		curve.Add(match.TruePositive)
		matches = append(matches, match)
	}

	tp, fp, fn := curve.Counts()
	return &Matching{
		Matches:        matches,
		Positives:      max(pool.Total(), 1),
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		Curve:          curve.Points(),
	}, nil
}

// argmax returns the first index of the largest value.
func argmax(values []float32) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
