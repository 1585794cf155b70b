// Package analysis compares integrated trajectories against the closed-form
// solution.
//
//   - [Reference]: analytical trajectory of a linear oscillator
//   - [ErrorSeries]: pointwise |x_i - exact(t_i)| over the grid
//   - [Summarize]: max, final, mean and RMS of an error series
//   - [ObservedOrder]: convergence order from two step sizes
//   - [DominantFrequency]: spectral peak of a trajectory
//   - [Crossings]: upward zero crossings and the measured period
//   - [PhasePortraitToASCII]: (x, v) plane rendering
//
// # Example
//
//	ref, _ := analysis.NewReference(osc, 1, 0)
//	errs, _ := analysis.ErrorSeries(result.Trajectories["verlet"], result.Grid, ref)
//	fmt.Println(analysis.Summarize(errs).Max)
package analysis
