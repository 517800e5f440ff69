package report

import "github.com/nvr-ai/go-eval/evaluation"

// Multi forwards every event to each reporter in order.
type Multi []evaluation.Reporter

// Begin implements evaluation.Reporter.
func (m Multi) Begin(labelType string, units int) {
	for _, r := range m {
		r.Begin(labelType, units)
	}
}

// ReportClass implements evaluation.Reporter.
func (m Multi) ReportClass(labelType string, c evaluation.ClassResult) {
	for _, r := range m {
		r.ReportClass(labelType, c)
	}
}

// ReportSummary implements evaluation.Reporter.
func (m Multi) ReportSummary(res *evaluation.Result) {
	for _, r := range m {
		r.ReportSummary(res)
	}
}
