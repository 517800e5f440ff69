package evaluation

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// classFunc evaluates the class with the given label id.
type classFunc func(ctx context.Context, label int) (ClassResult, error)

// forEachClass fans classes out over the worker limit. Each class writes
// only its own slot. The first failure cancels classes not yet started and
// is returned wrapped with the class name.
func (e *Evaluator) forEachClass(ctx context.Context, classes []string, fn classFunc) ([]ClassResult, error) {
	results := make([]ClassResult, len(classes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for label, name := range classes {
		label, name := label, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(ctx, label)
			if err != nil {
				return errors.Wrapf(err, "class %q", name)
			}
			res.Class = name
			results[label] = res
			if e.opts.progress != nil {
				_ = e.opts.progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// finish aggregates and reports a finished evaluation.
func (e *Evaluator) finish(labelType string, classes []ClassResult, meanLine func(float64) string) *Result {
	res := newResult(labelType, classes, meanLine)
	for _, c := range classes {
		e.opts.reporter.ReportClass(labelType, c)
	}
	e.opts.reporter.ReportSummary(res)
	return res
}

// sortedUnits returns the keys of a unit-indexed collection in order, so that
// detections with equal scores are ranked the same way on every run.
func sortedUnits[V any](m map[string]V) []string {
	units := make([]string, 0, len(m))
	for unit := range m {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}
