// Package scene owns the logo dissolve: the particle store, the integrator,
// the render sink and telemetry, driven one tick at a time by the window
// loop or the headless loop.
package scene

import (
	"log/slog"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/particles"
	"github.com/pthm-cable/dissolve/physics"
	"github.com/pthm-cable/dissolve/renderer"
	"github.com/pthm-cable/dissolve/sampler"
	"github.com/pthm-cable/dissolve/telemetry"
	"github.com/pthm-cable/dissolve/ui"
	"github.com/pthm-cable/dissolve/viewport"
)

// reloadQueue bounds pending hot-reloaded configs; only the newest matters.
const reloadQueue = 1

// Options configures scene construction.
type Options struct {
	LogoPath       string // Overrides logo.path when set
	Headless       bool   // No window: skip raylib input and drawing
	LogStats       bool   // Log window stats via slog
	OutputDir      string // Directory for CSV output (empty = disabled)
	StepsPerUpdate int    // Ticks per Update/UpdateHeadless call
	Script         Script // Pointer source for headless runs

	// Sink overrides the render sink. In window mode the default is a
	// raylib point renderer; headless runs have none unless set here.
	Sink particles.Sink

	// DPR is the device pixel ratio (0 = 1).
	DPR float64
}

// Scene holds the complete effect state.
type Scene struct {
	cfg        *config.Config
	viewport   *viewport.Viewport
	store      *particles.Store
	integrator *physics.Integrator

	sink   particles.Sink
	points *renderer.PointRenderer // nil when headless or when Sink was supplied

	hud    *ui.HUD
	tuning *ui.TuningPanel

	script  Script
	reloads chan *config.Config

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	headless       bool
	stepsPerUpdate int
	tick           int32
}

// New builds the scene: viewport, sampled logo, integrator and sink. In
// window mode it must be called after the raylib window is created. A logo
// that fails to load leaves the scene empty; the effect still runs.
func New(cfg *config.Config, opts Options) *Scene {
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	s := &Scene{
		cfg:            cfg,
		viewport:       viewport.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), opts.DPR),
		integrator:     physics.NewIntegrator(physics.ParamsFromConfig(cfg.Physics)),
		hud:            ui.NewHUD(),
		script:         opts.Script,
		reloads:        make(chan *config.Config, reloadQueue),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}
	s.tuning = ui.NewTuningPanel(float32(cfg.Screen.Width)-330, 10, 320, s.integrator.Params())

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	s.outputManager = om
	if err := s.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s.store = s.loadStore(opts.LogoPath)

	switch {
	case opts.Sink != nil:
		s.sink = opts.Sink
	case !opts.Headless:
		s.points = renderer.NewPointRenderer(cfg)
		s.points.Init()
		s.points.Resize(s.viewport.DPR)
		s.sink = s.points
	}
	particles.Upload(s.store, s.sink)

	slog.Info("scene ready",
		"particles", s.store.Len(),
		"canvas_w", s.viewport.Width*s.viewport.DPR,
		"canvas_h", s.viewport.Height*s.viewport.DPR,
		"headless", s.headless,
	)
	return s
}

// loadStore decodes and samples the logo centered on the canvas.
func (s *Scene) loadStore(override string) *particles.Store {
	path := s.cfg.Logo.Path
	if override != "" {
		path = override
	}
	if !s.cfg.Derived.TintValid {
		slog.Warn("invalid logo color, using white", "color", s.cfg.Logo.Color)
	}

	px, err := sampler.LoadLogo(path, s.cfg.Logo.Size, s.cfg.Logo.Scale)
	if err != nil {
		slog.Error("failed to load logo", "path", path, "error", err)
		return particles.New(0)
	}

	cx, cy := s.viewport.Center()
	return sampler.Sample(px, s.cfg.Derived.Tint, s.cfg.Logo.AlphaThreshold, cx, cy)
}

// PointerMove records a pointer position in canvas coordinates.
func (s *Scene) PointerMove(x, y float64) {
	s.integrator.PointerMove(x, y)
	s.collector.RecordPointerMove()
}

// Resize updates the logical window size. When it changes, every particle
// is laid out on a grid around the new center and positions are re-uploaded.
func (s *Scene) Resize(width, height float64) bool {
	if !s.viewport.Resize(width, height) {
		return false
	}
	s.relayout()
	return true
}

// SetDPR updates the device pixel ratio, relaying out on change.
func (s *Scene) SetDPR(dpr float64) bool {
	if !s.viewport.SetDPR(dpr) {
		return false
	}
	if s.points != nil {
		s.points.Resize(dpr)
	}
	s.relayout()
	return true
}

func (s *Scene) relayout() {
	s.collector.RecordResize()
	if s.store.Len() == 0 {
		return
	}
	cx, cy := s.viewport.Center()
	s.store.Relayout(cx, cy)
	if s.sink != nil {
		s.sink.UploadPositions(s.store.Positions())
	}
}

// Step runs one tick: pending config reloads, physics, upload and telemetry.
func (s *Scene) Step() physics.StepResult {
	s.drainReloads()

	s.perfCollector.StartPhase(telemetry.PhasePhysics)
	res := s.integrator.Step(s.store)
	s.collector.RecordStep(res)

	if res.Active && s.sink != nil {
		s.perfCollector.StartPhase(telemetry.PhaseUpload)
		s.sink.UploadPositions(s.store.Positions())
	}

	s.tick++

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()
	return res
}

// UpdateHeadless runs StepsPerUpdate ticks fed by the script.
func (s *Scene) UpdateHeadless() {
	s.perfCollector.StartTick()
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.perfCollector.StartPhase(telemetry.PhaseInput)
		if s.script != nil {
			if x, y, ok := s.script.Next(s.tick); ok {
				s.PointerMove(x, y)
			}
		}
		s.Step()
	}
	s.perfCollector.EndTick()
}

// QueueConfig hands a reloaded config to the tick loop. It is safe to call
// from any goroutine; an unconsumed older config is replaced.
func (s *Scene) QueueConfig(cfg *config.Config) {
	for {
		select {
		case s.reloads <- cfg:
			return
		default:
		}
		select {
		case <-s.reloads:
		default:
		}
	}
}

func (s *Scene) drainReloads() {
	for {
		select {
		case cfg := <-s.reloads:
			s.ApplyConfig(cfg)
		default:
			return
		}
	}
}

// ApplyConfig swaps in hot-reloadable values: physics constants and the
// background color. Logo and screen settings need a restart.
func (s *Scene) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.integrator.SetParams(physics.ParamsFromConfig(cfg.Physics))
	if s.points != nil {
		s.points.SetBackground(cfg.Derived.Background)
	}
	s.cfg = cfg
	config.Set(cfg)
	slog.Info("config applied", "tick", s.tick)
}

// Tick returns the number of ticks run.
func (s *Scene) Tick() int32 {
	return s.tick
}

// Store returns the particle store.
func (s *Scene) Store() *particles.Store {
	return s.store
}

// Integrator returns the physics integrator.
func (s *Scene) Integrator() *physics.Integrator {
	return s.integrator
}

// Viewport returns the viewport.
func (s *Scene) Viewport() *viewport.Viewport {
	return s.viewport
}

// Unload frees render resources and closes output files.
func (s *Scene) Unload() {
	if s.points != nil {
		s.points.Unload()
	}
	if err := s.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
