package report

import (
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsReporter keeps the latest results as Prometheus gauges on its own
// registry.
type MetricsReporter struct {
	registry   *prometheus.Registry
	units      *prometheus.GaugeVec
	ap         *prometheus.GaugeVec
	positives  *prometheus.GaugeVec
	detections *prometheus.GaugeVec
	mAP        *prometheus.GaugeVec
}

// NewMetricsReporter creates the gauges under the given namespace and
// registers them.
func NewMetricsReporter(namespace string) *MetricsReporter {
	m := &MetricsReporter{
		registry: prometheus.NewRegistry(),
		units: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "units",
				Help:      "Number of frames or videos in the evaluation.",
			},
			[]string{"label_type"}),
		ap: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "class_ap",
				Help:      "Average precision of a class, in percent.",
			},
			[]string{"label_type", "class"}),
		positives: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "class_positives",
				Help:      "Ground-truth positives of a class.",
			},
			[]string{"label_type", "class"}),
		detections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "class_detections",
				Help:      "Scored detections of a class.",
			},
			[]string{"label_type", "class"}),
		mAP: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "map",
				Help:      "Mean average precision over classes, in percent.",
			},
			[]string{"label_type"}),
	}
	m.registry.MustRegister(m.units, m.ap, m.positives, m.detections, m.mAP)
	return m
}

// Registry exposes the registry holding the gauges.
func (m *MetricsReporter) Registry() *prometheus.Registry { return m.registry }

// Begin implements evaluation.Reporter.
func (m *MetricsReporter) Begin(labelType string, units int) {
	m.units.WithLabelValues(labelType).Set(float64(units))
}

// ReportClass implements evaluation.Reporter.
func (m *MetricsReporter) ReportClass(labelType string, c evaluation.ClassResult) {
	m.ap.WithLabelValues(labelType, c.Class).Set(c.AP)
	m.positives.WithLabelValues(labelType, c.Class).Set(float64(c.NumPositives))
	m.detections.WithLabelValues(labelType, c.Class).Set(float64(c.NumDetections))
}

// ReportSummary implements evaluation.Reporter.
func (m *MetricsReporter) ReportSummary(res *evaluation.Result) {
	m.mAP.WithLabelValues(res.LabelType).Set(res.MAP)
}

// WriteTextfile writes the gauges in the text exposition format, for the
// node exporter textfile collector.
func (m *MetricsReporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
