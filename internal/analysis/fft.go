package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// spectrumPad multiplies the zero-padded length to refine the peak bin.
const spectrumPad = 4

func PowerSpectrum(data []float64) []float64 {
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}

	return ps
}

// DominantFrequency returns the frequency, in cycles per unit time, of the
// strongest non-DC component of xs sampled every dt.
func DominantFrequency(xs []float64, dt float64) float64 {
	if len(xs) < 4 || dt <= 0 {
		return math.NaN()
	}

	n := 1
	for n < len(xs) {
		n *= 2
	}
	n *= spectrumPad

	mean := stat.Mean(xs, nil)
	padded := make([]float64, n)
	for i, x := range xs {
		padded[i] = x - mean
	}

	ps := PowerSpectrum(padded)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return math.NaN()
	}
	return float64(maxIdx) / (float64(n) * dt)
}
