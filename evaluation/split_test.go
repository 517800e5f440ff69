package evaluation

import (
	"context"
	"testing"

	"github.com/nvr-ai/go-eval/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func roadSplit() *FrameSplit {
	return &FrameSplit{
		Dataset: DatasetROAD,
		LabelTypes: []LabelType{
			{Name: LabelTypeAgentness},
			{Name: "agents", Classes: []string{"car", "ped"}},
			{Name: LabelTypeAVActions, Classes: []string{"stop", "move"}},
		},
		GroundTruth: map[string]map[string][]GroundTruth[common.Box]{
			LabelTypeAgentness: {"f1": {gt(0, 0, 10, 10, 0)}},
			"agents":           {"f1": {gt(0, 0, 10, 10, 0)}},
		},
		Detections: map[string]map[string][]common.BoundingBox{
			LabelTypeAgentness: {"f1": {det(0, 0, 10, 10, 0.9, 0)}},
			"agents":           {"f1": {det(0, 0, 10, 10, 0.9, 1)}},
		},
		Ego: map[string]*EgoSet{
			LabelTypeAVActions: {
				Labels: []int{0, 1},
				Scores: mat.NewDense(2, 2, []float64{0.9, 0.1, 0.3, 0.7}),
			},
		},
	}
}

func TestEvaluateSplit(t *testing.T) {
	reporter := &recordingReporter{}
	results, err := NewEvaluator(WithReporter(reporter)).EvaluateSplit(context.Background(), roadSplit(), DefaultFrameConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)

	agentness := results[LabelTypeAgentness]
	assert.Equal(t, []string{"agent_ness : 1 : 1 : 100.0000", "agent_ness Mean AP:: 100.00"}, agentness.APStrs)

	assert.Equal(t, []float64{0, 0}, results["agents"].APAll)

	ego := results[LabelTypeAVActions]
	assert.Equal(t, LabelTypeAVActions, ego.LabelType)
	assert.InDelta(t, 100, ego.MAP, 1e-9)
	assert.Len(t, ego.APStrs, 2)

	assert.Equal(t, []string{LabelTypeAgentness, "agents", LabelTypeAVActions}, reporter.begins)
}

func TestEvaluateSplitErrors(t *testing.T) {
	e := NewEvaluator()

	split := roadSplit()
	delete(split.Ego, LabelTypeAVActions)
	_, err := e.EvaluateSplit(context.Background(), split, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrMissingLabelType)

	split = roadSplit()
	delete(split.GroundTruth, "agents")
	_, err = e.EvaluateSplit(context.Background(), split, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrMissingLabelType)

	split = roadSplit()
	split.Dataset = "ucf24"
	_, err = e.EvaluateSplit(context.Background(), split, DefaultFrameConfig())
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Contains(t, err.Error(), `label type "av_actions"`)
}

func TestLabelType(t *testing.T) {
	assert.True(t, LabelType{Name: LabelTypeAVActions}.IsEgo())
	assert.True(t, LabelType{Name: LabelTypeFrameActions}.IsEgo())
	assert.False(t, LabelType{Name: "agents"}.IsEgo())

	assert.Equal(t, []string{LabelTypeAgentness}, LabelType{Name: LabelTypeAgentness}.classes())
	assert.Equal(t, []string{"agent"}, LabelType{Name: LabelTypeAgentness, Classes: []string{"agent"}}.classes())
}
