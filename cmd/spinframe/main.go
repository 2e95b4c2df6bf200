package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/san-kum/spinframe/internal/config"
	"github.com/san-kum/spinframe/internal/engine"
	"github.com/san-kum/spinframe/internal/gui"
	"github.com/san-kum/spinframe/internal/scene"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	width      int
	height     int
	fps        int
	shading    string
	background string
	clamp      bool
)

// main registers the commands and runs the root command, which opens the GUI
// when no subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "spinframe",
		Short:         "software triangle rasterizer with oscillating yaw and pitch",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".spinframe", "data directory for render runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.IntVar(&width, "width", config.DefaultWidth, "viewport width")
	pf.IntVar(&height, "height", config.DefaultHeight, "viewport height")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "presentation frame rate")
	pf.StringVar(&shading, "shading", config.DefaultShading, "shading mode (flat, directional)")
	pf.StringVar(&background, "background", config.DefaultBackground, "background color")
	pf.BoolVar(&clamp, "clamp", false, "clamp shaded channels instead of wrapping")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the scene in a resizable window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	rootCmd.AddCommand(guiCmd, liveCmd(), renderCmd(), traceCmd(), runsCmd(), benchCmd(), presetsCmd(), initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig resolves defaults, preset, config file and flags, in that order
// of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("shading") {
		cfg.Shading = shading
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("clamp") {
		cfg.Clamp = clamp
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*engine.Engine, error) {
	tris, err := scene.Load(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.RasterOptions()
	if err != nil {
		return nil, err
	}
	yaw, pitch := cfg.Oscillators()
	return engine.New(engine.Config{Yaw: yaw, Pitch: pitch, Raster: opts}, tris, slog.Default())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return gui.Run(ctx, eng, gui.Options{
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		FPS:    cfg.FPS,
	})
}
