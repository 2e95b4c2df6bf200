package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/san-kum/spinframe/internal/analysis"
	"github.com/san-kum/spinframe/internal/bench"
	"github.com/san-kum/spinframe/internal/config"
	"github.com/san-kum/spinframe/internal/engine"
	"github.com/san-kum/spinframe/internal/export"
	"github.com/san-kum/spinframe/internal/metrics"
	"github.com/san-kum/spinframe/internal/scene"
	"github.com/san-kum/spinframe/internal/storage"
	"github.com/san-kum/spinframe/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func liveCmd() *cobra.Command {
	var (
		theme   string
		braille bool
		gifPath string
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "show the scene in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("live needs an interactive terminal; use render for files")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			opts, err := cfg.RasterOptions()
			if err != nil {
				return err
			}

			m := viz.NewModel(eng, viz.Options{
				Background: opts.Background,
				Theme:      theme,
				Braille:    braille,
				GIFPath:    gifPath,
				GIFDelay:   cfg.FrameInterval(),
			})
			p := tea.NewProgram(m, tea.WithAltScreen())

			ctx, cancel := signalContext()
			defer cancel()
			w, h := cfg.Viewport.Width, cfg.Viewport.Height
			errc := make(chan error, 1)
			go func() {
				errc <- eng.Run(ctx, func() (int, int) { return w, h },
					engine.Throttle(ctx, cfg.FrameInterval(), func(f engine.Frame) error {
						p.Send(viz.FrameMsg(f))
						return nil
					}))
			}()

			eng.Start()
			_, runErr := p.Run()
			eng.Stop()
			cancel()
			if err := <-errc; err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().BoolVar(&braille, "braille", false, "start in braille mode")
	cmd.Flags().StringVar(&gifPath, "gif", "spinframe.gif", "where G saves recordings")
	return cmd
}

func renderCmd() *cobra.Command {
	var (
		frames  int
		outDir  string
		gifPath string
		scale   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render frames deterministically to PNG files or a GIF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}

			ms := metrics.Default()
			for _, m := range ms {
				eng.AddObserver(m)
			}
			frameLog := &storage.Recorder{}
			eng.AddObserver(frameLog)

			var rec *export.GIFRecorder
			if gifPath != "" {
				rec = export.NewGIFRecorder(cfg.FrameInterval(), scale)
			} else if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}

			emit := func(i int, f engine.Frame) error {
				return export.SavePNG(export.FramePath(outDir, i), f.Buffer, scale)
			}
			if rec != nil {
				emit = func(_ int, f engine.Frame) error {
					rec.Add(f.Buffer)
					return nil
				}
				workers = 1
			}
			if err := renderFrames(eng, frames, cfg.Viewport.Width, cfg.Viewport.Height, workers, emit); err != nil {
				return err
			}

			output := outDir
			if rec != nil {
				if err := rec.Save(gifPath); err != nil {
					return err
				}
				output = gifPath
			}
			fmt.Printf("wrote %d frames to %s\n", frames, output)

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			meta := storage.NewMetadata(cfg, output)
			meta.Metrics = metrics.Collect(ms)
			runID, err := st.Save(meta, frameLog.Records)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: coverage=%.3f overdraw=%.3f\n", runID, meta.Metrics["coverage"], meta.Metrics["overdraw"])
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames")
	cmd.Flags().StringVar(&outDir, "out", "frames", "output directory for PNG frames")
	cmd.Flags().StringVar(&gifPath, "gif", "", "write an animated GIF instead of PNG frames")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscale factor")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel PNG encoders")
	return cmd
}

type frameSource interface {
	Frame(w, h int) (engine.Frame, error)
	Step()
}

// renderFrames renders n frames, stepping the oscillators after each, and
// hands them to emit on up to workers goroutines. It returns only after every
// started emit has finished.
func renderFrames(src frameSource, n, w, h, workers int, emit func(i int, f engine.Frame) error) error {
	g := new(errgroup.Group)
	g.SetLimit(max(workers, 1))
	for i := 0; i < n; i++ {
		f, err := src.Frame(w, h)
		if err != nil {
			g.Wait()
			return err
		}
		src.Step()
		i := i
		g.Go(func() error { return emit(i, f) })
	}
	return g.Wait()
}

func traceCmd() *cobra.Command {
	var (
		ticks int
		plotW int
		plotH int
		runID string
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "plot yaw and pitch over oscillator ticks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID != "" {
				return traceRun(runID, plotW, plotH)
			}
			if ticks < 2 {
				return fmt.Errorf("ticks must be at least 2, got %d", ticks)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			hist := viz.NewHistory(ticks)
			for i := 0; i < ticks; i++ {
				eng.Step()
				a := eng.Angles()
				hist.Add(a.Yaw, a.Pitch)
			}
			fmt.Println(viz.Plot(hist.Yaw, hist.Pitch, plotW, plotH,
				fmt.Sprintf("yaw (cyan) / pitch (magenta), %d ticks", ticks)))
			a := eng.Angles()
			fmt.Printf("\nfinal: yaw=%d pitch=%d\n", a.Yaw, a.Pitch)
			printPeriods(hist.Yaw, hist.Pitch)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 240, "oscillator ticks to simulate")
	cmd.Flags().IntVar(&plotW, "plot-width", 70, "plot width")
	cmd.Flags().IntVar(&plotH, "plot-height", 15, "plot height")
	cmd.Flags().StringVar(&runID, "run", "", "plot the angles of a stored render run instead")
	return cmd
}

func traceRun(runID string, plotW, plotH int) error {
	records, err := storage.New(dataDir).LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("run %s has %d frames, need at least 2", runID, len(records))
	}
	yaw := make([]float64, len(records))
	pitch := make([]float64, len(records))
	for i, r := range records {
		yaw[i], pitch[i] = float64(r.Yaw), float64(r.Pitch)
	}
	fmt.Println(viz.Plot(yaw, pitch, plotW, plotH,
		fmt.Sprintf("%s: yaw (cyan) / pitch (magenta), %d frames", runID, len(records))))
	printPeriods(yaw, pitch)
	return nil
}

func printPeriods(yaw, pitch []float64) {
	for _, s := range []struct {
		name string
		data []float64
	}{{"yaw", yaw}, {"pitch", pitch}} {
		if p := analysis.DominantPeriod(s.data); p > 0 {
			fmt.Printf("%s period: ~%.0f samples\n", s.name, p)
		} else {
			fmt.Printf("%s period: none\n", s.name)
		}
	}
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list stored render runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFRAMES\tSIZE\tSHADING\tCOVERAGE\tOUTPUT")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%d\t%dx%d\t%s\t%.3f\t%s\n",
					r.ID, r.Frames, r.Width, r.Height, r.Shading, r.Metrics["coverage"], r.Output)
			}
			return w.Flush()
		},
	}
}

func benchCmd() *cobra.Command {
	var (
		sizes     string
		workloads string
		repeat    int
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time matrix workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := bench.DefaultOptions()
			opts.Repeat = repeat
			opts.Seed = seed
			if workloads != "" {
				opts.Workloads = strings.Split(workloads, ",")
			}
			if sizes != "" {
				opts.Sizes = opts.Sizes[:0]
				for _, s := range strings.Split(sizes, ",") {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("invalid size %q: %w", s, err)
					}
					opts.Sizes = append(opts.Sizes, n)
				}
			}

			ctx, cancel := signalContext()
			defer cancel()
			start := time.Now()
			results, err := bench.Run(ctx, opts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WORKLOAD\tSIZE\tREPEAT\tTOTAL\tPER OP")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%v\n", r.Workload, r.Size, r.Repeat, r.Total, r.PerOp())
			}
			w.Flush()
			fmt.Printf("\ncompleted in %v\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&sizes, "sizes", "", "comma separated matrix sizes (default 4,16,64)")
	cmd.Flags().StringVar(&workloads, "workloads", "", "comma separated workloads ("+strings.Join(bench.WorkloadNames(), ", ")+")")
	cmd.Flags().IntVar(&repeat, "repeat", 10, "repetitions per workload")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for input matrices")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}
}

func initConfigCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration, with the default scene, to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "spinframe.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.Scene) == 0 {
				cfg.Scene = scene.ToConfig(scene.Default())
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
