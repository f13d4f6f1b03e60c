// Package optim identifies friction parameters by exhaustive grid
// search over simulated runs, scoring each candidate with a metric
// from the run results.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/fricsim/internal/experiment"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch takes parallel slices: paramNames[i] is swept over
// ranges[i]. The cartesian product of all ranges is evaluated.
func NewGridSearch(paramNames []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: paramNames, ranges: ranges}
}

// Search evaluates every parameter combination and returns the one
// minimizing the named metric. buildExperiment receives candidate
// friction parameters and must return a ready-to-run experiment.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return nil
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil
		}

		val := result.Metrics[metricName]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, buildExperiment, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Range builds n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return vals
}
