// Snapshot tool - runs the effect headless with a scripted pointer and
// renders frames to PNG files for inspection.
//
// Usage: go run ./cmd/snapshot -logo logo.png -out frames -every 30
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/renderer"
	"github.com/pthm-cable/dissolve/scene"
	"github.com/pthm-cable/dissolve/viewport"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use embedded defaults)")
	logoPath := flag.String("logo", "", "Logo image path (overrides logo.path)")
	outDir := flag.String("out", "frames", "Output directory for PNG frames")
	ticks := flag.Int("ticks", 600, "Ticks to simulate")
	every := flag.Int("every", 30, "Write a frame every N ticks")
	scriptTicks := flag.Int("script-ticks", 300, "Ticks the scripted pointer keeps moving")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *every < 1 {
		*every = 1
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	vp := viewport.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), 1)
	cw, ch := vp.CanvasSize()

	snap := renderer.NewSnapshot(int(cw), int(ch), cfg)
	defer snap.Close()

	s := scene.New(cfg, scene.Options{
		LogoPath: *logoPath,
		Headless: true,
		Script:   scene.NewOrbit(vp, int32(*scriptTicks)),
		Sink:     snap,
	})
	defer s.Unload()

	written := 0
	for s.Tick() < int32(*ticks) {
		s.UpdateHeadless()
		if s.Tick()%int32(*every) != 0 {
			continue
		}

		snap.Draw(s.Store().Len())
		if err := snap.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render tick %d: %v\n", s.Tick(), err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("frame_%05d.png", s.Tick()))
		if err := snap.SavePNG(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export frame: %v\n", err)
			os.Exit(1)
		}
		written++
	}

	w, h := snap.Size()
	fmt.Printf("Rendered %d frames to: %s (%dx%d, %d particles)\n", written, *outDir, w, h, s.Store().Len())
}
