package main

import (
	"fmt"
	"os"

	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/observability"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	backend    string
	seed       int64

	// cfg is the effective configuration, loaded before any command runs.
	cfg *config.Config

	runFrames   int
	snapFrames  int
	benchFrames int
	fps         int
	width       int
	height      int
	scenario    string
	save        bool
	withAudio   bool
	column      string
	outPath     string
	snapOut     string
	svgPath     string
	numSeeds    int
	maxSteps    int
	hold        int
	workers     int
	force       bool
	tuneSeeds   int
	tuneParams  []string
	tuneWrite   string
)

// main registers commands and flags; with no subcommand it opens the GUI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dotfield",
		Short: "interactive particle field",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = c
			observability.InitializeLogger(cfg.Logger)
			return nil
		},
		RunE: runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "compute backend")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for particle materials")
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "play the ambient pad")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and record metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to step (0 uses the scenario length)")
	runCmd.Flags().IntVar(&fps, "fps", 0, "pace frames per second (0 runs unpaced)")
	runCmd.Flags().IntVar(&width, "width", 0, "canvas width (default from config)")
	runCmd.Flags().IntVar(&height, "height", 0, "canvas height (default from config)")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "builtin scenario name or yaml file")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&fps, "fps", 0, "frame rate (default from config)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play the ambient pad")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the --column series as svg")
	plotCmd.Flags().StringVar(&column, "column", "kinetic", "metric for --svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and settling analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "kinetic", "metric to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "check that the field settles for many seeds",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&numSeeds, "seeds", 16, "number of seeds")
	sweepCmd.Flags().IntVar(&maxSteps, "max-steps", 2000, "steps allowed after release")
	sweepCmd.Flags().IntVar(&hold, "hold", 60, "frames the pointer is held before release")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel worlds (default NumCPU)")
	sweepCmd.Flags().IntVar(&width, "width", 0, "canvas width (default from config)")
	sweepCmd.Flags().IntVar(&height, "height", 0, "canvas height (default from config)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the field as svg after a number of frames",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "dotfield.svg", "output file")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 0, "frames to step before the snapshot")
	snapshotCmd.Flags().StringVar(&scenario, "scenario", "", "builtin scenario name or yaml file")
	snapshotCmd.Flags().IntVar(&width, "width", 0, "canvas width (default from config)")
	snapshotCmd.Flags().IntVar(&height, "height", 0, "canvas height (default from config)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters for the fastest settling field",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().IntVar(&tuneSeeds, "seeds", 4, "seeds per trial")
	tuneCmd.Flags().IntVar(&maxSteps, "max-steps", 2000, "steps allowed after release")
	tuneCmd.Flags().IntVar(&hold, "hold", 60, "frames the pointer is held before release")
	tuneCmd.Flags().StringVar(&tuneWrite, "write", "", "save the best configuration to this yaml file")
	tuneCmd.Flags().IntVar(&width, "width", 0, "canvas width (default from config)")
	tuneCmd.Flags().IntVar(&height, "height", 0, "canvas height (default from config)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the step loop at several canvas sizes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per size")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration (defaults, preset or file) as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configInit,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd,
		exportJSONCmd, presetsCmd, sweepCmd, tuneCmd, snapshotCmd, benchCmd, configCmd)

	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
