package evaluation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nvr-ai/go-eval/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter keeps every call it receives.
type recordingReporter struct {
	mu        sync.Mutex
	begins    []string
	units     []int
	classes   []string
	summaries []*Result
}

func (r *recordingReporter) Begin(labelType string, units int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins = append(r.begins, labelType)
	r.units = append(r.units, units)
}

func (r *recordingReporter) ReportClass(_ string, c ClassResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = append(r.classes, c.Class)
}

func (r *recordingReporter) ReportSummary(res *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, res)
}

type countingProgress struct {
	n atomic.Int64
}

func (p *countingProgress) Add(n int) error {
	p.n.Add(int64(n))
	return nil
}

func TestEvaluatorReportsInClassOrder(t *testing.T) {
	classes := []string{"a", "b", "c", "d", "e"}
	gts := [][]GroundTruth[common.Box]{{}}
	dets := make([][][]common.BoundingBox, len(classes))

	reporter := &recordingReporter{}
	progress := &countingProgress{}
	e := NewEvaluator(WithReporter(reporter), WithProgress(progress), WithWorkers(3))

	res, err := e.EvaluateDetections(context.Background(), gts, dets, Config{Classes: classes, IoUThreshold: 0.5})
	require.NoError(t, err)

	assert.Equal(t, classes, reporter.classes)
	assert.Equal(t, []int{1}, reporter.units)
	require.Len(t, reporter.summaries, 1)
	assert.Same(t, res, reporter.summaries[0])
	assert.Equal(t, int64(len(classes)), progress.n.Load())
}

func TestEvaluatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEvaluator()
	_, err := e.EvaluateDetections(ctx, [][]GroundTruth[common.Box]{{}}, [][][]common.BoundingBox{nil}, Config{Classes: []string{"a"}, IoUThreshold: 0.5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	e := NewEvaluator()

	_, err := e.EvaluateDetections(context.Background(), nil, nil, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrNoClasses)

	_, err = e.EvaluateDetections(context.Background(), nil, nil, Config{Classes: []string{"a"}, IoUThreshold: 1.5})
	assert.Error(t, err)

	assert.InDelta(t, 0.5, DefaultFrameConfig().IoUThreshold, 1e-6)
	assert.InDelta(t, 0.2, DefaultTubeConfig().IoUThreshold, 1e-6)
}

func TestNewEvaluatorDefaults(t *testing.T) {
	e := NewEvaluator(WithReporter(nil), WithWorkers(0))
	assert.IsType(t, NopReporter{}, e.opts.reporter)
	assert.Positive(t, e.opts.workers)
}

func TestNewResult(t *testing.T) {
	res := newResult("agents", []ClassResult{
		{Class: "car", AP: 100, NumPositives: 2, NumDetections: 3},
		{Class: "ped", AP: 50, NumPositives: 1, NumDetections: 4},
	}, meanAPLine("agents "))

	assert.Equal(t, 75.0, res.MAP)
	assert.Equal(t, []float64{100, 50}, res.APAll)
	assert.Equal(t, []string{
		"car : 2 : 3 : 100.0000",
		"ped : 1 : 4 : 50.0000",
		"agents Mean AP:: 75.00",
	}, res.APStrs)

	empty := newResult("", nil, nil)
	assert.Equal(t, 0.0, empty.MAP)
	assert.Empty(t, empty.APStrs)
}

func TestSortedUnits(t *testing.T) {
	units := sortedUnits(map[string]int{"b": 1, "c": 2, "a": 3})
	assert.Equal(t, []string{"a", "b", "c"}, units)
}
