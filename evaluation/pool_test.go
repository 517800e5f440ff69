package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPool(t *testing.T) {
	gts := map[string][]GroundTruth[int]{
		"a": {{Region: 1, Label: 0}, {Region: 2, Label: 1}, {Region: 3, Label: 0, Ignore: true}, {Region: 4, Label: 0}},
		"b": {{Region: 5, Label: 1}},
		"c": nil,
	}

	pool := NewPool(gts, 0)
	assert.Equal(t, 2, pool.Total())
	assert.Equal(t, []int{1, 4}, pool.Candidates("a"))
	assert.True(t, pool.Has("b"))
	assert.True(t, pool.Has("c"))
	assert.False(t, pool.Has("d"))
	assert.Equal(t, 0, pool.Remaining("b"))
	assert.Equal(t, 0, pool.Remaining("d"))
}

func TestPoolTake(t *testing.T) {
	gts := map[string][]GroundTruth[int]{
		"a": {{Region: 10}, {Region: 20}, {Region: 30}},
	}
	pool := NewPool(gts, 0)

	pool.Take("a", 1)
	assert.Equal(t, []int{10, 30}, pool.Candidates("a"))
	assert.Equal(t, 2, pool.Remaining("a"))

	pool.Take("a", 0)
	assert.Equal(t, []int{30}, pool.Candidates("a"))

	pool.Take("a", 0)
	assert.Empty(t, pool.Candidates("a"))
	assert.Equal(t, 3, pool.Total(), "Total counts the starting instances")
}

// TestPoolsAreIndependent makes sure matching one class never consumes the
// ground truth of another.
func TestPoolsAreIndependent(t *testing.T) {
	gts := map[string][]GroundTruth[int]{
		"a": {{Region: 1, Label: 0}, {Region: 2, Label: 0}},
	}
	first := NewPool(gts, 0)
	first.Take("a", 0)

	second := NewPool(gts, 0)
	assert.Equal(t, []int{1, 2}, second.Candidates("a"))
	assert.Equal(t, []int{2}, first.Candidates("a"))
}
