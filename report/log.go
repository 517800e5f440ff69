// Package report - Sinks for evaluation progress and results.
package report

import (
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/sirupsen/logrus"
)

// LogReporter writes evaluation events as structured log entries.
type LogReporter struct {
	log logrus.FieldLogger
}

// NewLogReporter creates a LogReporter on top of the given logger.
func NewLogReporter(log logrus.FieldLogger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) entry(labelType string) logrus.FieldLogger {
	if labelType == "" {
		return r.log
	}
	return r.log.WithField("label_type", labelType)
}

// Begin implements evaluation.Reporter.
func (r *LogReporter) Begin(labelType string, units int) {
	r.entry(labelType).WithField("units", units).Info("evaluation started")
}

// ReportClass implements evaluation.Reporter.
func (r *LogReporter) ReportClass(labelType string, c evaluation.ClassResult) {
	r.entry(labelType).WithFields(logrus.Fields{
		"class":      c.Class,
		"ap":         c.AP,
		"positives":  c.NumPositives,
		"detections": c.NumDetections,
	}).Info(c.String())
}

// ReportSummary implements evaluation.Reporter.
func (r *LogReporter) ReportSummary(res *evaluation.Result) {
	entry := r.entry(res.LabelType).WithField("map", res.MAP)
	if len(res.APStrs) > len(res.Classes) {
		entry.Info(res.APStrs[len(res.APStrs)-1])
		return
	}
	entry.Info("evaluation finished")
}
