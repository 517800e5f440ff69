package evaluation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ClassResult is the Average Precision of one class.
type ClassResult struct {
	Class string `json:"class"`
	// AP is on a 0..100 scale.
	AP            float64 `json:"ap"`
	NumPositives  int     `json:"num_positives"`
	NumDetections int     `json:"num_detections"`
}

// String formats the report line "<class> : <positives> : <detections> : <ap>".
func (c ClassResult) String() string {
	return fmt.Sprintf("%s : %d : %d : %.4f", c.Class, c.NumPositives, c.NumDetections, c.AP)
}

// Result is the outcome of one evaluation.
type Result struct {
	LabelType string `json:"label_type,omitempty"`
	// MAP is the arithmetic mean of APAll.
	MAP float64 `json:"map"`
	// APAll is aligned with the configured classes.
	APAll   []float64     `json:"ap_all"`
	APStrs  []string      `json:"ap_strs"`
	Classes []ClassResult `json:"classes"`
}

// newResult aggregates per-class results. meanLine, when set, renders the
// trailing summary line appended to APStrs.
func newResult(labelType string, classes []ClassResult, meanLine func(mAP float64) string) *Result {
	res := &Result{
		LabelType: labelType,
		APAll:     make([]float64, len(classes)),
		APStrs:    make([]string, 0, len(classes)+1),
		Classes:   classes,
	}
	for i, c := range classes {
		res.APAll[i] = c.AP
		res.APStrs = append(res.APStrs, c.String())
	}
	if len(classes) > 0 {
		res.MAP = stat.Mean(res.APAll, nil)
	}
	if meanLine != nil {
		res.APStrs = append(res.APStrs, meanLine(res.MAP))
	}
	return res
}

// Reporter receives evaluation progress and results. Calls are made from
// the goroutine that called the Evaluator, in class order.
type Reporter interface {
	// Begin announces an evaluation over the given number of units.
	Begin(labelType string, units int)
	// ReportClass delivers one class result.
	ReportClass(labelType string, r ClassResult)
	// ReportSummary delivers the aggregate.
	ReportSummary(r *Result)
}

// meanAPLine renders the summary line of tube and frame evaluations.
func meanAPLine(prefix string) func(float64) string {
	return func(mAP float64) string {
		return fmt.Sprintf("%sMean AP:: %0.2f", prefix, mAP)
	}
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Begin(string, int) {}
func (NopReporter) ReportClass(string, ClassResult) {}
func (NopReporter) ReportSummary(*Result) {}
