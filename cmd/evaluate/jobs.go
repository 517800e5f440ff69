package main

import (
	"context"

	"github.com/nvr-ai/go-eval/config"
	"github.com/nvr-ai/go-eval/dataset"
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// job is a loaded input ready to be evaluated.
type job struct {
	// classes is the number of class evaluations, for the progress bar.
	classes int
	run     func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error)
}

func single(res *evaluation.Result, err error) ([]*evaluation.Result, error) {
	if err != nil {
		return nil, err
	}
	return []*evaluation.Result{res}, nil
}

// prepare loads the input document of the configured mode.
func prepare(cfg *config.Config) (*job, error) {
	ecfg := cfg.Evaluation
	n := len(ecfg.Classes)

	switch cfg.Mode {
	case config.ModeBoxes:
		doc, err := dataset.Load[dataset.BoxDocument](cfg.Input)
		if err != nil {
			return nil, err
		}
		gts, dets, err := doc.Inputs()
		if err != nil {
			return nil, err
		}
		return &job{classes: n, run: func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error) {
			return single(e.EvaluateDetections(ctx, gts, dets, ecfg))
		}}, nil

	case config.ModeFrames:
		doc, err := dataset.Load[dataset.FrameDocument](cfg.Input)
		if err != nil {
			return nil, err
		}
		gts, dets, err := doc.Inputs()
		if err != nil {
			return nil, err
		}
		return &job{classes: n, run: func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error) {
			return single(e.EvaluateFrames(ctx, doc.LabelType, gts, dets, ecfg))
		}}, nil

	case config.ModeTubes:
		doc, err := dataset.Load[dataset.TubeDocument](cfg.Input)
		if err != nil {
			return nil, err
		}
		gts, dets, err := doc.Inputs()
		if err != nil {
			return nil, err
		}
		return &job{classes: n, run: func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error) {
			return single(e.EvaluateTubes(ctx, gts, dets, ecfg))
		}}, nil

	case config.ModeEgo:
		doc, err := dataset.Load[dataset.EgoDocument](cfg.Input)
		if err != nil {
			return nil, err
		}
		labels, scores, err := doc.Inputs()
		if err != nil {
			return nil, err
		}
		return &job{classes: n, run: func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error) {
			return single(e.EvaluateFramewiseEgo(ctx, cfg.Dataset, labels, scores, ecfg))
		}}, nil

	case config.ModeSplit:
		doc, err := dataset.Load[dataset.SplitDocument](cfg.Input)
		if err != nil {
			return nil, err
		}
		if doc.Dataset == "" {
			doc.Dataset = cfg.Dataset
		}
		split, err := doc.Split()
		if err != nil {
			return nil, err
		}
		classes := lo.SumBy(split.LabelTypes, func(lt evaluation.LabelType) int {
			return max(len(lt.Classes), 1)
		})
		return &job{classes: classes, run: func(ctx context.Context, e *evaluation.Evaluator) ([]*evaluation.Result, error) {
			byType, err := e.EvaluateSplit(ctx, split, ecfg)
			if err != nil {
				return nil, err
			}
			return lo.FilterMap(split.LabelTypes, func(lt evaluation.LabelType, _ int) (*evaluation.Result, bool) {
				res, ok := byType[lt.Name]
				return res, ok
			}), nil
		}}, nil
	}
	return nil, errors.Errorf("unknown mode %q", cfg.Mode)
}
