package sim

import (
	"context"

	"github.com/san-kum/stepbench/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// runParallel gives each scheme its own goroutine. Each goroutine writes
// only its own slot of runs, so results match runSequential bit for bit.
func (s *Simulator) runParallel(ctx context.Context, x0 dynamo.State, grid dynamo.Grid, runs []run) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, integ := range s.integrators {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runs[i] = s.runOne(integ, x0, grid)
			return nil
		})
	}
	return g.Wait()
}
