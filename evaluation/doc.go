// Package evaluation computes detection accuracy: per-class Average Precision
// and mean Average Precision under an IoU matching criterion.
//
// Three granularities are supported. Still-frame boxes are matched with 2D IoU
// and integrated with the VOC rule. Space-time tubes are matched with a
// pluggable 3D comparator and integrated with the trapezoidal rule, as are
// per-frame boxes evaluated per label type. Ego-action labels are scored per
// frame by label equality.
//
// Every class is evaluated independently against its own fresh ground-truth
// Pool, so classes are fanned out concurrently and written to distinct result
// slots.
//
// Example:
//
//	ev := evaluation.NewEvaluator(evaluation.WithReporter(report.NewLogReporter(logrus.StandardLogger())))
//	cfg := evaluation.DefaultFrameConfig()
//	cfg.Classes = []string{"person", "car"}
//	res, err := ev.EvaluateDetections(ctx, gts, dets, cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("mAP %.2f\n", res.MAP)
package evaluation
