package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortstep/internal/algorithms"
	"github.com/san-kum/sortstep/internal/config"
	"github.com/san-kum/sortstep/internal/metrics"
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/session"
	"github.com/san-kum/sortstep/internal/sortstep"
	"github.com/san-kum/sortstep/internal/stepper"
	"github.com/san-kum/sortstep/internal/storage"
	"github.com/san-kum/sortstep/internal/trace"
	"github.com/san-kum/sortstep/internal/viz"
)

var (
	configFile string
	preset     string
	listFlag   string
	size       int
	seed       int64
	lang       string
	theme      string
	verbose    bool
	dataDir    string
	logFile    string
	// run
	animate  bool
	maxSteps int
	plot     bool
	save     bool
	// trace
	format string
	// bench
	trials int
	// config
	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sortstep [algorithm]",
		Short:         "step-by-step sorting visualizer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&listFlag, "list", "", "initial list, e.g. 5,1,4,2,8")
	rootCmd.PersistentFlags().IntVar(&size, "size", config.DefaultGenerateSize, "random list size when no list is given (1-25)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", config.DefaultLanguage, "narration language ("+strings.Join(narrate.Languages(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortstep", "data directory for saved runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the TUI runs")

	tuiCmd := &cobra.Command{
		Use:   "tui [algorithm]",
		Short: "interactive terminal visualizer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	tuiCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the TUI runs")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "print every step of a sort",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	runCmd.Flags().BoolVar(&animate, "animate", false, "pace steps with the configured delays")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many steps (0 = no limit)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot remaining inversions per step")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "export the step trace of a sort",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceSort,
	}
	traceCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare step counts of every algorithm over random lists",
		Args:  cobra.NoArgs,
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntVar(&trials, "trials", 20, "random lists per size")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := algorithms.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE")
			for _, name := range reg.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, reg.Title(name))
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALGORITHM\tLIST")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Algorithm, p.InitialList())
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [algorithm]",
		Short: "print the resolved configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "save the resolved configuration to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot remaining inversions of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	rootCmd.AddCommand(tuiCmd, runCmd, traceCmd, benchCmd, algorithmsCmd, presetsCmd, configCmd, listCmd, plotCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("list") {
		list, err := session.ParseList(listFlag)
		if err != nil {
			return nil, err
		}
		cfg.List = list
	}
	if flags.Changed("size") {
		cfg.GenerateSize = size
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("lang") {
		cfg.Language = lang
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !algorithms.NewRegistry().Has(cfg.Algorithm) {
		return nil, &sortstep.StartError{Algorithm: cfg.Algorithm, Err: fmt.Errorf("%w (available: %s)",
			sortstep.ErrUnknownAlgorithm, strings.Join(algorithms.NewRegistry().Names(), ", "))}
	}
	return cfg, nil
}

// initialList returns the configured list, or a random one of the
// configured size.
func initialList(cfg *config.Config) sortstep.Array {
	if len(cfg.List) > 0 {
		return cfg.InitialList()
	}
	return session.RandomList(newRand(cfg.Seed), cfg.GenerateSize)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func delays(cfg *config.Config) stepper.Delays {
	return stepper.Delays{Element: cfg.Delays.Element, Structural: cfg.Delays.Structural}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	narr, err := narrate.New(cfg.Language)
	if err != nil {
		return err
	}

	// stderr belongs to the terminal UI
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	return viz.Run(cmd.Context(), session.Options{
		Delays:   delays(cfg),
		Narrator: narr,
		Logger:   logger,
		Seed:     cfg.Seed,
	}, viz.Options{
		Algorithm:    cfg.Algorithm,
		List:         cfg.InitialList(),
		Theme:        cfg.Theme,
		GenerateSize: cfg.GenerateSize,
		NotifyTTL:    cfg.NotifyTTL,
	})
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	narr, err := narrate.New(cfg.Language)
	if err != nil {
		return err
	}

	reg := algorithms.NewRegistry()
	gen, err := reg.Get(cfg.Algorithm, narr)
	if err != nil {
		return err
	}
	list := initialList(cfg)
	pace := delays(cfg)
	ctx := cmd.Context()

	r := stepper.NewRunner()
	ms := metrics.Default()
	for _, m := range ms {
		r.AddMetric(m)
	}
	depth := metrics.NewPendingDepth(gen)
	r.AddMetric(depth)
	rec := trace.NewRecorder()
	r.AddObserver(rec)

	fmt.Printf("%s %s\n\n", reg.Title(cfg.Algorithm), list)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tARRAY\tNARRATION")

	var (
		seq       int
		last      sortstep.Array
		disorder  = []float64{float64(metrics.CountInversions(list))}
		completed bool
	)
	start := time.Now()
	err = r.RunWithCallback(ctx, cfg.Algorithm, gen, list, func(step sortstep.Step, a sortstep.Array) bool {
		seq++
		last = a
		disorder = append(disorder, float64(metrics.CountInversions(a)))
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", seq, step.Kind, a, step.Narration)
		if step.Kind == sortstep.KindDone {
			completed = true
			return true
		}
		if animate {
			// flush so paced output is visible as it happens
			w.Flush()
			select {
			case <-ctx.Done():
				return false
			case <-time.After(pace.For(step.Kind)):
			}
		}
		return maxSteps == 0 || seq < maxSteps
	})
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}

	slog.Info("sort finished", "algorithm", cfg.Algorithm, "n", len(list), "steps", seq,
		"completed", completed, "elapsed", time.Since(start))

	fmt.Println()
	if completed {
		fmt.Println(narr.Sprintf(narrate.Completed))
	} else {
		fmt.Println(narr.Sprintf(narrate.Stopped))
	}
	fmt.Printf("%s %s\n", narr.Sprintf(narrate.StepCounter, seq), last)
	fmt.Println("\nmetrics:")
	for _, m := range append(ms, depth) {
		fmt.Printf("  %s: %.0f\n", m.Name(), m.Value())
	}

	if save && completed {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		values := make(map[string]float64, len(ms)+1)
		for _, m := range append(ms, depth) {
			values[m.Name()] = m.Value()
		}
		meta := trace.NewMeta(&stepper.Result{
			Algorithm: cfg.Algorithm,
			Initial:   list,
			Final:     last,
			Metrics:   values,
		}, narr.Language())
		runID, err := st.Save(meta, cfg.Seed, rec.Entries())
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}

	if plot && len(disorder) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(disorder,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("inversions remaining per step"),
		))
	}
	return nil
}

func traceSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
	narr, err := narrate.New(cfg.Language)
	if err != nil {
		return err
	}

	gen, err := algorithms.NewRegistry().Get(cfg.Algorithm, narr)
	if err != nil {
		return err
	}

	rec := trace.NewRecorder()
	r := stepper.NewRunner()
	r.AddObserver(rec)
	for _, m := range metrics.Default() {
		r.AddMetric(m)
	}
	res, err := r.Run(cmd.Context(), cfg.Algorithm, gen, initialList(cfg))
	if err != nil {
		return err
	}

	if format == "json" {
		return trace.WriteJSON(os.Stdout, trace.NewMeta(res, narr.Language()), rec.Entries())
	}
	return trace.WriteCSV(os.Stdout, rec.Entries())
}

type benchCell struct {
	comparisons, swaps, writes, markers, steps float64
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if trials < 1 {
		return fmt.Errorf("trials must be positive")
	}

	sizes := []int{5, 10, 15, 20, 25}
	rng := newRand(cfg.Seed)
	inputs := make([][]sortstep.Array, len(sizes))
	for i, n := range sizes {
		for t := 0; t < trials; t++ {
			inputs[i] = append(inputs[i], session.RandomList(rng, n))
		}
	}

	names := algorithms.NewRegistry().Names()
	table := make([][]benchCell, len(names))
	for i := range table {
		table[i] = make([]benchCell, len(sizes))
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	start := time.Now()
	for ai, name := range names {
		for si := range sizes {
			g.Go(func() error {
				narr, err := narrate.New(cfg.Language)
				if err != nil {
					return err
				}
				reg := algorithms.NewRegistry()
				r := stepper.NewRunner()
				counters := []*metrics.Counter{
					metrics.NewComparisons(), metrics.NewSwaps(), metrics.NewWrites(),
					metrics.NewMarkers(), metrics.NewTotal(),
				}
				for _, c := range counters {
					r.AddMetric(c)
				}

				var sum benchCell
				for _, in := range inputs[si] {
					gen, err := reg.Get(name, narr)
					if err != nil {
						return err
					}
					if _, err := r.Run(ctx, name, gen, in); err != nil {
						return err
					}
					sum.comparisons += counters[0].Value()
					sum.swaps += counters[1].Value()
					sum.writes += counters[2].Value()
					sum.markers += counters[3].Value()
					sum.steps += counters[4].Value()
				}
				n := float64(len(inputs[si]))
				table[ai][si] = benchCell{
					comparisons: sum.comparisons / n,
					swaps:       sum.swaps / n,
					writes:      sum.writes / n,
					markers:     sum.markers / n,
					steps:       sum.steps / n,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("bench finished", "algorithms", len(names), "trials", trials, "elapsed", time.Since(start))

	fmt.Printf("average over %d random lists per size\n\n", trials)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tCOMPARISONS\tSWAPS\tWRITES\tMARKERS\tSTEPS")
	for ai, name := range names {
		for si, n := range sizes {
			c := table[ai][si]
			fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
				name, n, c.comparisons, c.swaps, c.writes, c.markers, c.steps)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	series := make([][]float64, len(names))
	for ai := range names {
		for si := range sizes {
			series[ai] = append(series[ai], table[ai][si].steps)
		}
	}
	colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow, asciigraph.Cyan}
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.SeriesColors(colors[:len(names)]...),
		asciigraph.Caption("average steps for list sizes 5..25"),
	))
	legend := make([]string, len(names))
	for i, name := range names {
		legend[i] = colors[i].String() + name + asciigraph.Default.String()
	}
	fmt.Println("\n" + strings.Join(legend, "  "))
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tN\tSTEPS\tCOMPARISONS\tSWAPS\tWRITES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0f\t%.0f\t%.0f\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Initial),
			run.Steps,
			run.Metrics["comparisons"],
			run.Metrics["swaps"],
			run.Metrics["writes"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	arrays, err := st.LoadArrays(runID)
	if err != nil {
		return err
	}

	data := []float64{float64(metrics.CountInversions(meta.Initial))}
	for _, a := range arrays {
		data = append(data, float64(metrics.CountInversions(a)))
	}

	fmt.Printf("%s  %s -> %s\n\n", meta.ID, sortstep.Array(meta.Initial), sortstep.Array(meta.Final))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s: inversions remaining over %d steps", meta.Algorithm, meta.Steps)),
	))
	return nil
}
