package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/telemetry"
	"github.com/pthm-cable/dissolve/ui"
)

// Draw renders the frame: background, particles and overlays. Tuning panel
// edits take effect before the next tick.
func (s *Scene) Draw() {
	s.perfCollector.StartPhase(telemetry.PhaseDraw)
	s.perfCollector.RecordFrame()

	rl.BeginDrawing()

	if s.points != nil {
		s.points.Clear()
	} else {
		rl.ClearBackground(rl.Black)
	}
	if s.sink != nil {
		s.sink.Draw(s.store.Len())
	}

	s.hud.Draw(ui.HUDData{
		Particles:     s.store.Len(),
		Countdown:     s.integrator.Countdown(),
		ActivityTicks: s.integrator.Params().ActivityTicks,
		Tick:          s.tick,
		FPS:           rl.GetFPS(),
	})
	s.hud.DrawControls(int32(rl.GetScreenHeight()))

	if p, changed := s.tuning.Draw(s.integrator.Params()); changed {
		s.integrator.SetParams(p)
	}

	rl.EndDrawing()

	s.perfCollector.EndTick()
}
