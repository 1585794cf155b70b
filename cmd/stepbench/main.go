package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/stepbench/internal/analysis"
	"github.com/san-kum/stepbench/internal/config"
	"github.com/san-kum/stepbench/internal/experiment"
	"github.com/san-kum/stepbench/internal/export"
	"github.com/san-kum/stepbench/internal/logging"
	"github.com/san-kum/stepbench/internal/viz"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	configFile string
	preset     string
	theme      string

	dt        float64
	duration  float64
	x0        float64
	v0        float64
	mass      float64
	stiffness float64
	schemes   []string
	mode      string
	parallel  bool

	// plot
	logScale  bool
	positions bool
	// compare
	samples int
	// converge
	dts []float64
	// phase
	width  int
	height int
	// export
	format string
	out    string

	logger   *slog.Logger
	closeLog = func() error { return nil }
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "stepbench",
		Short:         "fixed-step integrator benchmark on the harmonic oscillator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, closer, err := logging.Open(logLevel, logFile)
			if err != nil {
				return err
			}
			logger, closeLog = l, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run every scheme and print an error summary",
		Args:  cobra.NoArgs,
		RunE:  runBenchmark,
	}
	addRunFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [scheme...]",
		Short: "plot error against time for each scheme",
		RunE:  plotErrors,
	}
	addRunFlags(plotCmd)
	plotCmd.Flags().BoolVar(&logScale, "log", false, "plot log10 of the error")
	plotCmd.Flags().BoolVar(&positions, "positions", false, "also plot position against the exact solution")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "print each scheme's error at evenly spaced times",
		Args:  cobra.NoArgs,
		RunE:  compareSchemes,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().IntVar(&samples, "samples", 10, "number of sample times")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "sweep dt and report the observed order of each scheme",
		Args:  cobra.NoArgs,
		RunE:  convergence,
	}
	addRunFlags(convergeCmd)
	convergeCmd.Flags().Float64SliceVar(&dts, "dts", nil, "step sizes, coarse to fine (default from config)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "compare each scheme's dominant frequency with the exact one",
		Args:  cobra.NoArgs,
		RunE:  spectrum,
	}
	addRunFlags(spectrumCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [scheme]",
		Short: "phase space plot of one scheme",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	addRunFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&width, "width", 60, "plot width")
	phaseCmd.Flags().IntVar(&height, "height", 24, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write trajectories and errors to csv, json, xlsx or svg",
		Args:  cobra.NoArgs,
		RunE:  exportReport,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "", "csv, json, xlsx or svg (default from --out extension)")
	exportCmd.Flags().StringVar(&out, "out", "", "output file, - for stdout")
	_ = exportCmd.MarkFlagRequired("out")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "browse the results interactively",
		Args:  cobra.NoArgs,
		RunE:  view,
	}
	addRunFlags(viewCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addRunFlags(initCmd)

	rootCmd.AddCommand(runCmd, plotCmd, compareCmd, convergeCmd, spectrumCmd, phaseCmd, exportCmd, viewCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		// post-run hooks are skipped when a command fails
		closeLog()
		stop()
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().Float64Var(&dt, "dt", def.Dt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", def.Duration, "duration")
	cmd.Flags().Float64Var(&x0, "x0", def.InitState.Pos, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", def.InitState.Vel, "initial velocity")
	cmd.Flags().Float64Var(&mass, "mass", def.Mass, "particle mass")
	cmd.Flags().Float64Var(&stiffness, "stiffness", def.Stiffness, "spring constant")
	cmd.Flags().StringSliceVar(&schemes, "schemes", def.Schemes, "schemes to compare")
	cmd.Flags().StringVar(&mode, "mode", def.Extrapolation, "extrapolation update mode (exact, average)")
	cmd.Flags().BoolVar(&parallel, "parallel", def.Parallel, "run schemes concurrently")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file overrides preset
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("x0") {
		cfg.InitState.Pos = x0
	}
	if flags.Changed("v0") {
		cfg.InitState.Vel = v0
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if flags.Changed("schemes") {
		cfg.Schemes = schemes
	}
	if flags.Changed("mode") {
		cfg.Extrapolation = mode
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command) (*experiment.Report, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ecfg, err := cfg.Experiment()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rep, err := experiment.Run(cmd.Context(), ecfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("benchmark finished", "elapsed", time.Since(start), "schemes", len(rep.Schemes()))
	return rep, nil
}

func styles() viz.Styles { return viz.NewStyles(viz.GetTheme(theme)) }

func runBenchmark(cmd *cobra.Command, args []string) error {
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.SummaryTable(rep, styles()))
	return nil
}

func plotErrors(cmd *cobra.Command, args []string) error {
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = rep.Schemes()
	}

	w := cmd.OutOrStdout()
	for _, name := range names {
		graph, err := viz.PlotErrors(rep, name, logScale, 80, 12)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
		if positions {
			graph, err := viz.PlotPositions(rep, name, 80, 12)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, graph)
			fmt.Fprintln(w)
		}
	}
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	if samples < 2 {
		return fmt.Errorf("--samples must be at least 2")
	}
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}

	grid := rep.Result.Grid
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "TIME\tEXACT")
	for _, name := range rep.Schemes() {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(name))
	}
	fmt.Fprintln(w)

	n := min(samples, grid.N)
	for k := 0; k < n; k++ {
		i := 0
		if n > 1 {
			i = k * (grid.N - 1) / (n - 1)
		}
		t := grid.At(i)
		fmt.Fprintf(w, "%.4f\t%.6f", t, rep.Reference.Exact(t))
		for _, name := range rep.Schemes() {
			fmt.Fprintf(w, "\t%.3e", rep.Errors[name][i])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func convergence(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ecfg, err := cfg.Experiment()
	if err != nil {
		return err
	}
	steps := cfg.Sweep
	if cmd.Flags().Changed("dts") {
		steps = dts
	}
	if len(steps) < 2 {
		return fmt.Errorf("need at least two step sizes to estimate order")
	}

	sr, err := experiment.Sweep(cmd.Context(), ecfg, steps, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.SweepTable(sr, styles()))
	return nil
}

func spectrum(cmd *cobra.Command, args []string) error {
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}

	grid := rep.Result.Grid
	want := rep.Reference.Frequency()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "exact frequency: %.5f hz  period: %.5f s\n\n", want, rep.Reference.Period())
	fmt.Fprintln(w, "SCHEME\tFFT FREQ\tREL ERR\tPERIOD\tPERIOD ERR")
	for _, name := range rep.Schemes() {
		traj := rep.Result.Trajectories[name]
		freq := analysis.DominantFrequency(traj.Positions(), grid.Dt)
		period := analysis.MeasuredPeriod(analysis.Crossings(traj, grid))
		fmt.Fprintf(w, "%s\t%.5f\t%.2e\t%.5f\t%.2e\n",
			name, freq, (freq-want)/want, period, period-rep.Reference.Period())
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}
	traj, ok := rep.Result.Trajectory(args[0])
	if !ok {
		return fmt.Errorf("scheme %s not run (have %v)", args[0], rep.Schemes())
	}

	p := analysis.GeneratePhasePortrait(traj)
	fmt.Fprintf(cmd.OutOrStdout(), "phase portrait: %s (x horizontal, v vertical), %d points\n\n", traj.Scheme, len(p.Points))
	fmt.Fprint(cmd.OutOrStdout(), analysis.PhasePortraitToASCII(p, width, height))
	return nil
}

func exportReport(cmd *cobra.Command, args []string) error {
	f, err := export.FormatFor(format, out)
	if err != nil {
		return err
	}
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}

	if out == "-" {
		return export.Write(cmd.OutOrStdout(), f, rep)
	}
	if err := export.WriteFile(out, f, rep); err != nil {
		return err
	}
	logger.Info("exported", "format", string(f), "path", out)
	return nil
}

func view(cmd *cobra.Command, args []string) error {
	rep, err := runReport(cmd)
	if err != nil {
		return err
	}
	return viz.Run(rep, theme)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDT\tDURATION\tSCHEMES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", name, p.Dt, p.Duration, strings.Join(p.Schemes, ","))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
