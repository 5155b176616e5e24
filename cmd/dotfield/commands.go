package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dotfield/internal/analysis"
	"github.com/san-kum/dotfield/internal/automation"
	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/export"
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/gui"
	"github.com/san-kum/dotfield/internal/metrics"
	"github.com/san-kum/dotfield/internal/observability"
	"github.com/san-kum/dotfield/internal/optim"
	"github.com/san-kum/dotfield/internal/storage"
	"github.com/san-kum/dotfield/internal/viz"
	"github.com/san-kum/dotfield/internal/world"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig resolves the configuration from --preset or --config, then
// applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if preset != "" && configFile != "" {
		return nil, errors.New("--preset and --config are mutually exclusive")
	}

	var c *config.Config
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	} else {
		var err error
		if c, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("seed") {
		c.Physics.Seed = seed
	}
	if backend != "" {
		c.Backend = backend
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	return c, c.Validate()
}

func extent() field.Extent {
	w, h := cfg.View.Width, cfg.View.Height
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	return field.Extent{Width: float64(w), Height: float64(h)}
}

func newWorld() (*world.World, error) {
	return world.New(cfg, observability.GetLogger())
}

// loadScenario accepts a builtin name or a yaml path.
func loadScenario(name string) (*automation.Scenario, error) {
	if s, ok := automation.Builtin()[name]; ok {
		return s, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("scenario %q is neither builtin (%s) nor a file", name, strings.Join(automation.BuiltinNames(), ", "))
	}
	return automation.LoadScenario(name)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	log := observability.GetLogger()
	w, err := newWorld()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, m := range metrics.Standard() {
		w.AddMetric(m)
	}
	if err := w.Setup(extent()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := world.NewDriver(w, fps)
	var res *world.Result
	meta := storage.RunMetadata{Preset: preset, Seed: cfg.Physics.Seed, FPS: fps}
	if scenario != "" {
		s, err := loadScenario(scenario)
		if err != nil {
			return err
		}
		meta.Scenario = s.Name
		log.Info("running scenario", zap.String("scenario", s.Name), zap.Int("events", len(s.Events)))
		res, err = automation.Run(ctx, d, w, s, runFrames, log)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		if runFrames <= 0 {
			log.Info("running until interrupted")
		}
		res, err = d.Run(ctx, runFrames, nil)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	ext := w.Extent()
	meta.Width, meta.Height = ext.Width, ext.Height
	meta.Particles = len(w.Particles())

	fmt.Printf("frames: %d  particles: %d  skipped: %d  elapsed: %v\n\n", res.Frames, meta.Particles, res.Errors, res.Duration.Round(time.Millisecond))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLAST\tVALUE")
	for _, m := range w.Metrics() {
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\n", m.Name(), m.Last(), m.Value())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(meta, res)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", id)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	w, err := newWorld()
	if err != nil {
		return err
	}
	defer w.Close()
	rate := cfg.View.FPS
	if fps > 0 {
		rate = fps
	}
	return viz.Run(w, rate, observability.GetLogger())
}

func runGUI(cmd *cobra.Command, args []string) error {
	w, err := newWorld()
	if err != nil {
		return err
	}
	defer w.Close()
	return gui.Run(w, gui.Options{
		Width:  cfg.View.Width,
		Height: cfg.View.Height,
		FPS:    cfg.View.FPS,
		Audio:  withAudio,
	}, observability.GetLogger())
}

// resolveRun returns the given run id or the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSCENARIO\tTIME\tFRAMES\tPARTICLES\tSKIPPED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			orDash(run.Preset),
			orDash(run.Scenario),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Skipped,
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Samples))

	for _, name := range series.Columns {
		data := series.Column(name)
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath == "" {
		return nil
	}
	data := series.Column(column)
	if data == nil {
		return fmt.Errorf("run %s has no column %q", runID, column)
	}
	svg := export.SeriesToSVG(series.Times, data, 800, 300, "#339999")
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data := series.Column(column)
	if len(data) < 2 {
		return fmt.Errorf("not enough %q samples in run %s", column, runID)
	}

	// Unpaced runs are analyzed per frame.
	rate := float64(meta.FPS)
	unit := "hz"
	if rate <= 0 {
		rate, unit = 1, "cycles/frame"
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("column: %s\n\n", column)

	ps := analysis.PowerSpectrum(data, rate)
	plotData := ps.Power[1:max(2, len(ps.Power)/4)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := ps.Dominant()
	fmt.Printf("dominant frequency: %.4f %s (power %.3g)\n", freq, unit, power)
	if freq > 0 {
		fmt.Printf("period: %.2f frames\n", rate/freq)
	}

	sum := analysis.Summarize(data)
	fmt.Printf("mean: %.4g  std: %.4g  min: %.4g  max: %.4g\n", sum.Mean, sum.Std, sum.Min, sum.Max)

	if resetting := series.Column("resetting"); resetting != nil {
		if idx := analysis.Settling(resetting, 0.5); idx >= 0 {
			fmt.Printf("settled from frame %d\n", idx+1)
		} else {
			fmt.Println("never settled")
		}
	}

	if disp := series.Column("displacement"); disp != nil && column != "displacement" {
		fmt.Printf("\n%s vs displacement\n", column)
		fmt.Print(analysis.Scatter(disp, data, 60, 15))
	}
	return nil
}

func exportTo(export func(io.Writer) error) error {
	if outPath == "" {
		return export(os.Stdout)
	}
	if err := storage.ExportFile(outPath, export); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	return exportTo(func(w io.Writer) error { return st.ExportCSV(w, runID) })
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	return exportTo(func(w io.Writer) error { return st.ExportJSON(w, runID) })
}

func runSweep(cmd *cobra.Command, args []string) error {
	if numSeeds <= 0 {
		return fmt.Errorf("--seeds must be positive")
	}
	seeds := make([]int64, numSeeds)
	for i := range seeds {
		seeds[i] = cfg.Physics.Seed + int64(i)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := world.Sweep(ctx, cfg, world.SweepOptions{
		Extent:   extent(),
		Seeds:    seeds,
		Hold:     hold,
		MaxSteps: maxSteps,
		PressX:   0.9,
		PressY:   0.9,
		Workers:  workers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPARTICLES\tSTEPS\tCONVERGED\tSKIPPED")
	steps := make([]float64, 0, len(results))
	failed := 0
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%d\n", r.Seed, r.Particles, r.Steps, r.Converged, r.Skipped)
		if r.Converged {
			steps = append(steps, float64(r.Steps))
		} else {
			failed++
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := analysis.Summarize(steps)
	fmt.Printf("\n%d/%d converged in %v; steps mean %.1f std %.1f max %.0f\n",
		len(steps), len(results), time.Since(start).Round(time.Millisecond), sum.Mean, sum.Std, sum.Max)
	if failed > 0 {
		return fmt.Errorf("%d seeds did not converge within %d steps", failed, maxSteps)
	}
	return nil
}

// parseParam splits "name=v1,v2" into a name and its values.
func parseParam(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2", arg)
	}
	var values []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad value in --param %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param is required (tunable: %s)", strings.Join(optim.Tunable(), ", "))
	}
	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, arg := range tuneParams {
		name, values, err := parseParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	seeds := make([]int64, max(tuneSeeds, 1))
	for i := range seeds {
		seeds[i] = cfg.Physics.Seed + int64(i)
	}
	score := optim.SettleScore(world.SweepOptions{
		Extent:   extent(),
		Seeds:    seeds,
		Hold:     hold,
		MaxSteps: maxSteps,
		PressX:   0.9,
		PressY:   0.9,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, trials, err := g.Search(ctx, cfg, score)
	if len(trials) > 0 {
		sort.SliceStable(trials, func(i, j int) bool { return trials[i].Score < trials[j].Score })
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\tSCORE\n", strings.ToUpper(strings.Join(names, "\t")))
		for _, t := range trials {
			row := make([]string, len(names))
			for i, n := range names {
				row[i] = strconv.FormatFloat(t.Params[n], 'g', -1, 64)
			}
			result := fmt.Sprintf("%.1f", t.Score)
			if t.Err != nil {
				result = "error: " + t.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t%s\n", strings.Join(row, "\t"), result)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (mean %.1f steps to settle)\n", best.Params, best.Score)
	if tuneWrite == "" {
		return nil
	}
	out := cfg.Clone()
	for name, v := range best.Params {
		if err := optim.Apply(out, name, v); err != nil {
			return err
		}
	}
	if err := config.Save(tuneWrite, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", tuneWrite)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	w, err := newWorld()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Setup(extent()); err != nil {
		return err
	}

	d := world.NewDriver(w, 0)
	ctx := context.Background()
	if scenario != "" {
		s, err := loadScenario(scenario)
		if err != nil {
			return err
		}
		if _, err := automation.Run(ctx, d, w, s, snapFrames, observability.GetLogger()); err != nil {
			return err
		}
	} else if snapFrames > 0 {
		if _, err := d.Run(ctx, snapFrames, nil); err != nil {
			return err
		}
	}

	f, err := os.Create(snapOut)
	if err != nil {
		return err
	}
	svg := export.NewSVG(f, w.Extent(), "#0a0a0a")
	w.Draw(svg)
	if err := svg.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles, frame %d)\n", snapOut, len(w.Particles()), w.Frame())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	sizes := []field.Extent{
		{Width: 640, Height: 480},
		{Width: 1280, Height: 800},
		{Width: 1920, Height: 1080},
		{Width: 3840, Height: 2160},
	}

	fmt.Printf("benchmarking %s backend, %d frames per size\n\n", cfg.Backend, benchFrames)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tCOLLISIONS")

	for _, ext := range sizes {
		w, err := newWorld()
		if err != nil {
			return err
		}
		if err := w.Setup(ext); err != nil {
			w.Close()
			return err
		}
		collisions := metrics.NewCollisions()
		w.AddMetric(collisions)
		w.PointerDown(ext.Width*0.9, ext.Height*0.9)

		res, err := world.NewDriver(w, 0).Run(context.Background(), benchFrames, nil)
		w.Close()
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%.0fx%.0f\t%d\t%d\t%v\t%.0f\t%.0f\n",
			ext.Width, ext.Height, len(w.Particles()), res.Frames,
			res.Duration.Round(time.Microsecond), float64(res.Frames)/res.Duration.Seconds(), collisions.Value())
	}
	return tw.Flush()
}

func configInit(cmd *cobra.Command, args []string) error {
	path := "dotfield.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
