package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/stepbench/internal/analysis"
	"golang.org/x/sync/errgroup"
)

// SweepRow is one scheme's final error at every swept step size, with the
// observed order between consecutive step sizes.
type SweepRow struct {
	Scheme string
	Final  []float64
	Order  []float64
}

type SweepReport struct {
	Dts  []float64
	Rows []SweepRow
}

// Sweep repeats cfg once per dt, keeping everything else fixed. dts should
// be ordered from coarse to fine.
func Sweep(ctx context.Context, cfg Config, dts []float64, logger *slog.Logger) (*SweepReport, error) {
	if len(dts) == 0 {
		return nil, fmt.Errorf("sweep needs at least one dt")
	}
	logger = orDiscard(logger)

	reports := make([]*Report, len(dts))
	g, ctx := errgroup.WithContext(ctx)
	for i, dt := range dts {
		g.Go(func() error {
			c := cfg
			c.Run.Dt = dt
			r, err := Run(ctx, c, logger)
			if err != nil {
				return fmt.Errorf("dt=%g: %w", dt, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &SweepReport{Dts: dts}
	for _, name := range reports[0].Schemes() {
		row := SweepRow{Scheme: name, Final: make([]float64, len(dts))}
		for i, r := range reports {
			row.Final[i] = r.Summaries[name].Final
		}
		for i := 1; i < len(dts); i++ {
			ratio := dts[i-1] / dts[i]
			order := analysis.ObservedOrder(row.Final[i-1], row.Final[i], ratio)
			if math.IsNaN(order) {
				logger.Debug("order undefined", "scheme", name, "dt", dts[i])
			}
			row.Order = append(row.Order, order)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
