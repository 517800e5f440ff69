package evaluation

// Detection is one scored region inside a single class's working set.
type Detection[R any] struct {
	// Unit identifies the frame or video the detection belongs to.
	Unit   string
	Region R
	Score  float32
}

// GroundTruth is one annotated instance of an evaluation unit.
type GroundTruth[R any] struct {
	Region R
	Label  int
	// Ignore marks instances that are neither matchable nor counted as misses.
	Ignore bool
}
