// Package common - Geometric regions and the overlap measures used to match them.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// unionEpsilon floors the union area so that degenerate boxes never divide by zero.
const unionEpsilon float32 = 1e-9

// Box is an axis-aligned box in pixel coordinates.
type Box struct {
	X1, Y1, X2, Y2 float32
}

// NewBox builds a Box from an [x1, y1, x2, y2] slice.
//
// Arguments:
//   - coords: Exactly four coordinates.
//
// Returns:
//   - Box: The box.
//   - error: ErrMalformedRegion if coords does not hold four values.
func NewBox(coords []float32) (Box, error) {
	if len(coords) != 4 {
		return Box{}, errors.Wrapf(ErrMalformedRegion, "box needs 4 coordinates, got %d", len(coords))
	}
	return Box{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}, nil
}

// Width of the box. Negative for inverted boxes.
func (b Box) Width() float32 { return b.X2 - b.X1 }

// Height of the box. Negative for inverted boxes.
func (b Box) Height() float32 { return b.Y2 - b.Y1 }

// Area returns width times height.
func (b Box) Area() float32 {
	return b.Width() * b.Height()
}

// Intersection calculates the intersection area between two boxes.
//
// Arguments:
//   - other: The box to intersect with.
//
// Returns:
//   - The overlapping area, or 0 when the boxes only touch or are disjoint.
//
// @example
// a := Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
// b := Box{X1: 50, Y1: 50, X2: 150, Y2: 150}
// area := a.Intersection(b) // 2500
func (b Box) Intersection(other Box) float32 {
	iw := math32.Min(b.X2, other.X2) - math32.Max(b.X1, other.X1)
	ih := math32.Min(b.Y2, other.Y2) - math32.Max(b.Y1, other.Y1)
	if iw <= 0 || ih <= 0 {
		return 0
	}
	return iw * ih
}

// Union calculates the union area of two boxes using inclusion-exclusion.
func (b Box) Union(other Box) float32 {
	return b.Area() + other.Area() - b.Intersection(other)
}

// IoU calculates the Intersection over Union between two boxes.
//
// A value of 1 means the boxes are identical, 0 means they do not overlap.
// The union is floored at a small epsilon so zero-area boxes report 0
// instead of NaN.
//
// Arguments:
//   - other: The box to compare against.
//
// Returns:
//   - The IoU value in [0, 1].
//
// @example
// a := Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
// b := Box{X1: 50, Y1: 50, X2: 150, Y2: 150}
// iou := a.IoU(b) // ~0.143 (2500/17500)
func (b Box) IoU(other Box) float32 {
	inter := b.Intersection(other)
	if inter == 0 {
		return 0
	}
	return inter / math32.Max(b.Union(other), unionEpsilon)
}

func (b Box) String() string {
	return fmt.Sprintf("(%.2f, %.2f), (%.2f, %.2f)", b.X1, b.Y1, b.X2, b.Y2)
}

// IoUBatch computes the IoU of one box against many.
func IoUBatch(box Box, others []Box) []float32 {
	ious := make([]float32, len(others))
	for i, o := range others {
		ious[i] = box.IoU(o)
	}
	return ious
}

// BoundingBox is a box with its class label and confidence, as produced by a detector.
type BoundingBox struct {
	Box
	Label      int
	Confidence float32
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("Object %d (confidence %f): %s", b.Label, b.Confidence, b.Box)
}
