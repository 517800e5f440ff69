package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tube builds a tube with the same box on every frame in [start, end].
func tube(t *testing.T, start, end int, box Box) Tube {
	t.Helper()
	var frames []int
	var boxes []Box
	for f := start; f <= end; f++ {
		frames = append(frames, f)
		boxes = append(boxes, box)
	}
	tb, err := NewTube(frames, boxes)
	require.NoError(t, err)
	return tb
}

func TestTubeValidate(t *testing.T) {
	tests := []struct {
		name   string
		frames []int
		boxes  []Box
	}{
		{name: "empty", frames: nil, boxes: nil},
		{name: "length mismatch", frames: []int{1, 2}, boxes: []Box{{0, 0, 1, 1}}},
		{name: "not increasing", frames: []int{2, 2}, boxes: []Box{{0, 0, 1, 1}, {0, 0, 1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTube(tt.frames, tt.boxes)
			assert.ErrorIs(t, err, ErrMalformedRegion)
		})
	}
}

func TestTubeBoxAt(t *testing.T) {
	tb, err := NewTube([]int{2, 5, 9}, []Box{{0, 0, 1, 1}, {1, 1, 2, 2}, {2, 2, 3, 3}})
	require.NoError(t, err)

	box, ok := tb.BoxAt(5)
	assert.True(t, ok)
	assert.Equal(t, Box{1, 1, 2, 2}, box)

	_, ok = tb.BoxAt(6)
	assert.False(t, ok)
	assert.Equal(t, 2, tb.Start())
	assert.Equal(t, 9, tb.End())
}

func TestTubeIoU(t *testing.T) {
	box := Box{0, 0, 10, 10}

	t.Run("identical tubes", func(t *testing.T) {
		a := tube(t, 0, 9, box)
		assert.InDelta(t, 1.0, TubeIoU(a, a), 1e-6)
		assert.InDelta(t, 1.0, TemporalIoU(a, a), 1e-6)
	})

	t.Run("disjoint in time", func(t *testing.T) {
		a := tube(t, 0, 4, box)
		b := tube(t, 5, 9, box)
		assert.Equal(t, float32(0), TubeIoU(a, b))
		assert.Equal(t, float32(0), TemporalIoU(a, b))
	})

	t.Run("half temporal overlap", func(t *testing.T) {
		a := tube(t, 0, 9, box)
		b := tube(t, 5, 14, box)
		// intersection 5 frames, union 15 frames, spatial IoU 1.
		assert.InDelta(t, 5.0/15.0, TubeIoU(a, b), 1e-6)
		assert.InDelta(t, 5.0/15.0, TemporalIoU(a, b), 1e-6)
	})

	t.Run("spatial and temporal penalties multiply", func(t *testing.T) {
		a := tube(t, 0, 9, box)
		b := tube(t, 0, 9, Box{0, 0, 10, 5})
		assert.InDelta(t, 0.5, TubeIoU(a, b), 1e-6)
		assert.InDelta(t, 1.0, TemporalIoU(a, b), 1e-6)
	})

	t.Run("gaps count as zero overlap", func(t *testing.T) {
		a := tube(t, 0, 3, box)
		b, err := NewTube([]int{0, 3}, []Box{box, box})
		require.NoError(t, err)
		// 4 frames in range, 2 shared.
		assert.InDelta(t, 0.5, TubeIoU(a, b), 1e-6)
	})

	t.Run("misaligned sparse frames", func(t *testing.T) {
		a, err := NewTube([]int{0, 2, 4}, []Box{box, box, box})
		require.NoError(t, err)
		b, err := NewTube([]int{1, 2, 3, 4}, []Box{box, box, box, {0, 0, 10, 5}})
		require.NoError(t, err)
		// range [1, 4], shared frames 2 (1.0) and 4 (0.5), tiou 4/5
		assert.InDelta(t, 0.8*1.5/4, TubeIoU(a, b), 1e-6)
	})

	t.Run("far apart frames", func(t *testing.T) {
		a, err := NewTube([]int{0, 2_000_000_000}, []Box{box, box})
		require.NoError(t, err)
		// two shared frames over a range of 2e9+1
		assert.InEpsilon(t, 2.0/2_000_000_001.0, TubeIoU(a, a), 1e-4)
	})

	t.Run("empty tube", func(t *testing.T) {
		assert.Equal(t, float32(0), TubeIoU(Tube{}, tube(t, 0, 1, box)))
	})
}

func TestMakeDetectionTube(t *testing.T) {
	box := Box{0, 0, 1, 1}
	det, err := MakeDetectionTube([]float32{0.2, 0.4, 0.6}, []Box{box, box, box}, []int{1, 2, 3}, 7)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, det.Score, 1e-6)
	assert.Equal(t, 7, det.Label)

	_, err = MakeDetectionTube([]float32{0.2}, []Box{box, box}, []int{1, 2}, 0)
	assert.ErrorIs(t, err, ErrMalformedRegion)
}
