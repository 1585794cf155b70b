package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses an error series. Any NaN in the series makes Max NaN so
// divergence is never hidden.
type Summary struct {
	Max   float64
	Final float64
	Mean  float64
	RMS   float64
}

func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	s := Summary{
		Final: series[len(series)-1],
		Mean:  stat.Mean(series, nil),
		RMS:   floats.Norm(series, 2) / math.Sqrt(float64(len(series))),
	}
	if floats.HasNaN(series) {
		s.Max = math.NaN()
	} else {
		s.Max = floats.Max(series)
	}
	return s
}

// ObservedOrder estimates p in err ~ dt^p from errors measured at two step
// sizes whose ratio is coarse/fine.
func ObservedOrder(coarseErr, fineErr, ratio float64) float64 {
	if coarseErr <= 0 || fineErr <= 0 || ratio <= 1 {
		return math.NaN()
	}
	return math.Log(coarseErr/fineErr) / math.Log(ratio)
}
