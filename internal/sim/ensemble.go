package sim

import (
	"context"
	"sync"

	"github.com/san-kum/fricsim/internal/dynamo"
)

// Ensemble runs independent simulations in parallel, one per variant.
// The factory builds a fresh Simulator (with its own metrics and
// compensator) for each index, so no mutable state is shared between
// goroutines. Used for friction parameter sweeps.
type Ensemble struct {
	factory func(idx int) (*Simulator, error)
	numRuns int
}

func NewEnsemble(numRuns int, factory func(idx int) (*Simulator, error)) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.factory(idx)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = s.Run(ctx, x0.Clone(), cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
