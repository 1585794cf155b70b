// Package viz renders benchmark reports in the terminal.
//
//   - [SummaryTable] and [SweepTable]: lipgloss tables of error statistics
//   - [PlotErrors]: asciigraph error curves, linear or log10
//   - [Canvas]: Braille pixel canvas used for phase portraits
//   - [Viewer]: Bubble Tea browser over one report
//
// # Key Bindings
//
//	Tab/→   - Next scheme
//	S-Tab/← - Previous scheme
//	L       - Toggle log10 error scale
//	P       - Toggle phase portrait
//	T       - Cycle color themes
//	Q       - Quit
package viz
