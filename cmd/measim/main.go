package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/measim/internal/automation"
	"github.com/san-kum/measim/internal/config"
	"github.com/san-kum/measim/internal/estimate"
	"github.com/san-kum/measim/internal/experiment"
	"github.com/san-kum/measim/internal/export"
	"github.com/san-kum/measim/internal/kernel"
	"github.com/san-kum/measim/internal/logging"
	"github.com/san-kum/measim/internal/reference"
	"github.com/san-kum/measim/internal/sampler"
	"github.com/san-kum/measim/internal/scenario"
	"github.com/san-kum/measim/internal/store"
	"github.com/san-kum/measim/internal/sweep"
	"github.com/san-kum/measim/internal/tui"
	"github.com/san-kum/measim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	seed       int64

	model     string
	design    string
	outcome   string
	n         int
	beta      float64
	sigmaTrue float64
	sigmaME   float64
	sigmaEps  float64
	prob      float64

	noColour bool
	save     bool
	asJSON   bool
	output   string
	braille  bool

	snrLo, snrHi float64
	snrPoints    int

	sweepFrom, sweepTo float64
	sweepPoints        int
	sweepReps          int
	sweepWorkers       int

	logger *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "measim",
		Short: "measurement error simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logLevel, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg, logger)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".measim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	pf.StringVar(&model, "model", "classical", "noise model (classical, heteroskedastic, dual, nonlinear or I-IV)")
	pf.StringVar(&design, "design", "uniform", "distribution of the true value (normal, uniform)")
	pf.StringVar(&outcome, "outcome", "quadratic", "outcome form (quadratic, linear)")
	pf.IntVar(&n, "n", config.DefaultN, "sample size")
	pf.Float64Var(&beta, "beta", config.DefaultBeta, "true coefficient")
	pf.Float64Var(&sigmaTrue, "sigma-true", config.DefaultSigmaTrue, "spread of the true value")
	pf.Float64Var(&sigmaME, "sigma-me", config.DefaultSigmaME, "measurement error standard deviation")
	pf.Float64Var(&sigmaEps, "sigma-eps", config.DefaultSigmaEps, "disturbance standard deviation")
	pf.Float64Var(&prob, "p", config.DefaultP, "probability an observation is mismeasured")
	pf.BoolVar(&noColour, "no-color", false, "disable colour in plots")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "generate one sample and show the fit",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().BoolVar(&save, "save", false, "store the sample")

	scenarioCmd := &cobra.Command{
		Use:       "scenario [intro|comparison|earnings]",
		Short:     "show an illustrative data set",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"intro", "comparison", "earnings"},
		RunE:      runScenario,
	}

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "attenuation and bias against the signal-to-noise ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if snrLo <= 0 || snrHi <= snrLo {
				return errors.Errorf("invalid SNR range [%g, %g]", snrLo, snrHi)
			}
			fmt.Println(viz.SNRCharts(estimate.NewSNRCurve(snrLo, snrHi, snrPoints), 70, 12))
			return nil
		},
	}
	curveCmd.Flags().Float64Var(&snrLo, "from", 0.1, "smallest SNR")
	curveCmd.Flags().Float64Var(&snrHi, "to", 10, "largest SNR")
	curveCmd.Flags().IntVar(&snrPoints, "points", 100, "grid points")

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "plot the kernel functions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(viz.KernelChart(kernel.All(), 70, 12))
			fmt.Println()
			reference.Kernels().Render(os.Stdout)
		},
	}

	tablesCmd := &cobra.Command{
		Use:   "tables [name]",
		Short: "print published reference results",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTables,
	}

	powerCmd := &cobra.Command{
		Use:   "power",
		Short: "plot the published power curves",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(viz.PowerChart(reference.Power, 70, 12))
			fmt.Println()
			reference.Power.Table().Render(os.Stdout)
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Monte Carlo OLS slope over a grid of measurement-error levels",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "smallest σ_ME")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2, "largest σ_ME")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 9, "grid points")
	sweepCmd.Flags().IntVar(&sweepReps, "reps", 100, "replications per grid point")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored samples",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored sample",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print metadata and sample as JSON")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write the attenuation scatter as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "attenuation.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "export the terminal Braille canvas instead of a vector chart")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODEL\tDESIGN\tOUTCOME\tσ_ME\tP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
					name, p.Model, p.Design, p.Outcome, p.Noise.SigmaME, p.Noise.P)
			}
			return w.Flush()
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "describe the noise models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, info := range experiment.Models() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Model, info.Title, info.Description)
			}
			w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [script.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(simulateCmd, scenarioCmd, curveCmd, kernelsCmd, tablesCmd, powerCmd,
		sweepCmd, listCmd, showCmd, exportSVGCmd, presetsCmd, modelsCmd, initConfigCmd, batchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers the preset, the config file and explicitly set
// flags, in that order, and clamps the result to slider ranges.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, errors.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("design") {
		cfg.Design = design
	}
	if flags.Changed("outcome") {
		cfg.Outcome = outcome
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("n") {
		cfg.Sample.N = n
	}
	if flags.Changed("beta") {
		cfg.Sample.Beta = beta
	}
	if flags.Changed("sigma-true") {
		cfg.Sample.SigmaTrue = sigmaTrue
	}
	if flags.Changed("sigma-me") {
		cfg.Noise.SigmaME = sigmaME
	}
	if flags.Changed("sigma-eps") {
		cfg.Noise.SigmaEps = sigmaEps
	}
	if flags.Changed("p") {
		cfg.Noise.P = prob
	}

	cfg.Clamp()
	logger.WithFields(logrus.Fields{
		"preset": preset,
		"config": configFile,
		"model":  cfg.Model,
		"seed":   cfg.Seed,
	}).Debug("configuration resolved")
	return cfg, nil
}

func runExperiment(cmd *cobra.Command) (*config.Config, *experiment.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	sc, err := cfg.Sampler()
	if err != nil {
		return nil, nil, err
	}
	result, err := experiment.New(sc, cfg.Seed).WithLogger(logger).Run(cmd.Context())
	return cfg, result, err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, result, err := runExperiment(cmd)
	if err != nil {
		return err
	}

	info := experiment.Describe(result.Config.Model)
	fmt.Printf("%s  (%s design, %s outcome, seed %d)\n\n", info.Title, cfg.Design, cfg.Outcome, cfg.Seed)
	fmt.Println(viz.AttenuationPlot(result.Sample, result.Config, result.Fit, cfg.Display.Width, cfg.Display.Height, !noColour))
	fmt.Println(viz.PairPlot(result.Sample, cfg.Display.Width/2, cfg.Display.Height, !noColour))
	fmt.Println(viz.FitSummary(result.Fit))
	fmt.Println()
	fmt.Println(viz.SampleSummary(result.Summary))
	fmt.Printf("\nfingerprint: %016x\n", result.Fingerprint)

	if !save {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result)
	if err != nil {
		return err
	}
	logger.WithField("run", runID).Debug("sample stored")
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	const cols, rows = 60, 16
	colour := !noColour

	switch args[0] {
	case "intro":
		p := scenario.TrueVsObserved(scenario.TrueVsObservedN, seed)
		fmt.Println(viz.ScatterPanel("true vs observed", "X*", "X", p.True, p.Observed, cols, rows, colour))
		sd, _ := stats.StandardDeviationSample(p.Errors)
		fmt.Println(viz.Metric("sd(X - X*)", fmt.Sprintf("%.3f", sd)))
	case "comparison":
		c := scenario.ErrorComparison(scenario.ErrorComparisonN, seed)
		fmt.Println(viz.SidePanels("classical", "non-classical", "X*", "η",
			c.True, c.Classical, c.NonClassical, cols/2, rows, colour))
	case "earnings":
		e := scenario.EarningsData(scenario.EarningsN, seed)
		fmt.Println(viz.ScatterPanel("administrative vs survey earnings", "admin", "survey", e.Admin, e.Survey, cols, rows, colour))
		d := e.Differences()
		mean, _ := stats.Mean(d)
		sd, _ := stats.StandardDeviationSample(d)
		corr, _ := stats.Correlation(e.Admin, e.PriorAdmin)
		fmt.Println(viz.Metric("mean(admin - survey)", fmt.Sprintf("%.1f", mean)) + "   " +
			viz.Metric("sd", fmt.Sprintf("%.1f", sd)) + "   " +
			viz.Metric("corr(admin, prior)", fmt.Sprintf("%.3f", corr)))
	default:
		return errors.Errorf("unknown scenario: %s (available: intro, comparison, earnings)", args[0])
	}
	return nil
}

func runTables(cmd *cobra.Command, args []string) error {
	names := reference.Names()
	if len(args) == 1 {
		names = args
	}
	for i, name := range names {
		t, err := reference.Lookup(name)
		if err != nil {
			return errors.Wrapf(err, "available: %s", strings.Join(reference.Names(), ", "))
		}
		if i > 0 {
			fmt.Println()
		}
		t.Render(os.Stdout)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.Sampler()
	if err != nil {
		return err
	}

	grid := sweep.Grid(sweepFrom, sweepTo, sweepPoints)
	logger.WithFields(logrus.Fields{
		"points": len(grid),
		"reps":   sweepReps,
		"model":  sc.Model,
	}).Info("starting sweep")

	points, err := sweep.New(sc, grid, sweepReps, cfg.Seed).
		WithWorkers(sweepWorkers).
		WithLogger(logger).
		Run(cmd.Context())
	if err != nil {
		return err
	}

	sweep.Table(points).Render(os.Stdout)
	if len(points) > 1 {
		sigmas, slopes, predicted := sweep.Series(points)
		fmt.Println()
		fmt.Println(viz.SweepChart(sigmas, slopes, predicted, 70, 12))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScript(cmd.Context(), script, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tN\tSLOPE\tTRUE\tLAMBDA\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%.4f\t%s\n",
			r.Step,
			r.Result.Config.Model,
			r.Result.Sample.Len(),
			r.Result.Fit.Slope,
			r.Result.Fit.TrueSlope,
			r.Result.Fit.Lambda,
			r.RunID,
		)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tN\tSEED\tSLOPE\tLAMBDA")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%.4f\n",
			run.ID,
			run.Config.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Seed,
			run.Fit.Slope,
			run.Fit.Lambda,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*store.RunMetadata, *sampler.Sample, sampler.Config, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, sampler.Config{}, err
	}
	smp, err := st.LoadSample(runID)
	if err != nil {
		return nil, nil, sampler.Config{}, err
	}
	sc, err := meta.Config.Sampler()
	if err != nil {
		return nil, nil, sampler.Config{}, errors.Wrapf(err, "config of %s", runID)
	}
	meta.Config.Clamp()
	return meta, smp, sc, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, smp, sc, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if asJSON {
		return store.ExportJSON(os.Stdout, meta, smp)
	}

	fit, err := estimate.FitSample(smp, sc)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  seed: %d  stored: %s\n\n", meta.Config.Model, meta.Seed, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.AttenuationPlot(smp, sc, fit, meta.Config.Display.Width, meta.Config.Display.Height, !noColour))
	fmt.Println(viz.FitSummary(fit))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	var (
		smp     *sampler.Sample
		sc      sampler.Config
		fit     estimate.Fit
		display config.DisplayConfig
	)

	if len(args) == 1 {
		meta, loaded, loadedCfg, err := loadRun(args[0])
		if err != nil {
			return err
		}
		smp, sc, display = loaded, loadedCfg, meta.Config.Display
		if fit, err = estimate.FitSample(smp, sc); err != nil {
			return err
		}
	} else {
		cfg, result, err := runExperiment(cmd)
		if err != nil {
			return err
		}
		smp, sc, fit, display = result.Sample, result.Config, result.Fit, cfg.Display
	}

	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "create svg")
	}
	defer f.Close()

	if braille {
		err = export.AttenuationBrailleSVG(f, smp, sc, fit, display.Width, display.Height, 4)
	} else {
		err = export.AttenuationSVG(f, smp, sc, fit, 800, 600)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}
