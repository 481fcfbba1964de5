package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/telemetry"
)

// Update polls window input and runs StepsPerUpdate ticks.
func (s *Scene) Update() {
	s.perfCollector.StartTick()
	s.perfCollector.StartPhase(telemetry.PhaseInput)
	s.handleInput()

	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step()
	}
}

// handleInput processes keyboard, pointer and window events.
func (s *Scene) handleInput() {
	s.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		s.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.hud.Toggle()
	}

	s.handlePointer()
}

// handlePointer forwards pointer motion in canvas coordinates.
func (s *Scene) handlePointer() {
	delta := rl.GetMouseDelta()
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	pos := rl.GetMousePosition()
	x, y := s.viewport.ToCanvas(float64(pos.X), float64(pos.Y))
	s.PointerMove(x, y)
}

// handleResize checks for window resize or a display scale change.
func (s *Scene) handleResize() {
	if dpr := float64(rl.GetWindowScaleDPI().X); dpr > 0 {
		s.SetDPR(dpr)
	}
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if s.Resize(w, h) {
		s.tuning.Move(float32(w)-330, 10)
	}
}
