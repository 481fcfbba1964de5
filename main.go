package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/scene"
	"github.com/pthm-cable/dissolve/viewport"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logoPath := flag.String("logo", "", "Logo image path (overrides logo.path)")
	headless := flag.Bool("headless", false, "Run without a window, driving the pointer from a script")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Ticks per update call (higher = faster headless runs)")
	scriptTicks := flag.Int("script-ticks", 600, "Headless: ticks the scripted pointer keeps moving")
	watch := flag.Bool("watch", false, "Reload -config on change")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scene.Options{
		LogoPath:       *logoPath,
		Headless:       *headless,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		vp := viewport.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), 1)
		opts.Script = scene.NewOrbit(vp, int32(*scriptTicks))

		s := scene.New(cfg, opts)
		defer s.Unload()
		startWatcher(ctx, *watch, *configPath, s)

		slog.Info("starting headless run",
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
			"script_ticks", *scriptTicks,
		)

		for ctx.Err() == nil {
			s.UpdateHeadless()

			if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", s.Tick())
				return
			}
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dissolve")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts.DPR = float64(rl.GetWindowScaleDPI().X)
	s := scene.New(cfg, opts)
	defer s.Unload()
	startWatcher(ctx, *watch, *configPath, s)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		s.Update()
		s.Draw()

		if *maxTicks > 0 && int(s.Tick()) >= *maxTicks {
			break
		}
	}
}

// startWatcher feeds config file changes to the scene until ctx is done.
func startWatcher(ctx context.Context, enabled bool, path string, s *scene.Scene) {
	if !enabled {
		return
	}
	if path == "" {
		slog.Warn("-watch needs -config; hot reload disabled")
		return
	}

	w, err := config.NewWatcher(path, config.DefaultDebounce, s.QueueConfig)
	if err != nil {
		slog.Error("failed to create config watcher", "error", err)
		return
	}
	if err := w.Start(ctx); err != nil {
		slog.Error("failed to start config watcher", "error", err)
		w.Stop()
		return
	}
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
}
