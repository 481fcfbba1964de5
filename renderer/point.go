package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
)

//go:embed shaders/point.fs
var pointShaderSource string

// PointRenderer draws the particle store as soft round point sprites.
// It implements particles.Sink.
type PointRenderer struct {
	shader     rl.Shader
	discardLoc int32
	sprite     rl.Texture2D

	positions []float32
	colors    []rl.Color

	pointSize    float32
	alphaDiscard float32
	background   rl.Color
	zoom         float32

	initialized bool
}

// NewPointRenderer creates a point renderer from the render and canvas config.
func NewPointRenderer(cfg *config.Config) *PointRenderer {
	size := float32(cfg.Render.PointSize)
	if size <= 0 {
		size = DefaultPointSize
	}
	discard := float32(cfg.Render.AlphaDiscard)
	if discard <= 0 {
		discard = DefaultAlphaDiscard
	}
	return &PointRenderer{
		pointSize:    size,
		alphaDiscard: discard,
		background:   BackgroundColor(cfg.Derived.Background),
		zoom:         1,
	}
}

// Init loads the shader and sprite (must be called after raylib window is created).
func (r *PointRenderer) Init() {
	if r.initialized {
		return
	}

	r.shader = rl.LoadShaderFromMemory("", pointShaderSource)
	r.discardLoc = rl.GetShaderLocation(r.shader, "alphaDiscard")
	rl.SetShaderValue(r.shader, r.discardLoc, []float32{r.alphaDiscard}, rl.ShaderUniformFloat)

	img := rl.GenImageColor(1, 1, rl.White)
	r.sprite = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.sprite, rl.FilterBilinear)

	r.initialized = true
}

// UploadPositions retains the position buffer for the next Draw.
func (r *PointRenderer) UploadPositions(positions []float32) {
	r.positions = positions
}

// UploadColors converts the color buffer once.
func (r *PointRenderer) UploadColors(colors []float32) {
	r.colors = ToColors(colors, r.colors[:0])
}

// SetBackground replaces the clear color.
func (r *PointRenderer) SetBackground(bg config.RGB) {
	r.background = BackgroundColor(bg)
}

// Resize sets the canvas-to-window scale for a device pixel ratio.
func (r *PointRenderer) Resize(dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	r.zoom = float32(1 / dpr)
}

// Clear fills the frame with the background color.
func (r *PointRenderer) Clear() {
	rl.ClearBackground(r.background)
}

// Draw renders count particles from the last uploaded buffers.
func (r *PointRenderer) Draw(count int) {
	if !r.initialized {
		r.Init()
	}
	count = drawCount(count, r.positions, len(r.colors))
	if count == 0 {
		return
	}

	half := r.pointSize / 2
	src := rl.Rectangle{X: 0, Y: 0, Width: 1, Height: 1}

	rl.BeginMode2D(rl.Camera2D{Zoom: r.zoom})
	rl.BeginShaderMode(r.shader)

	for i := 0; i < count; i++ {
		dst := rl.Rectangle{
			X:      r.positions[i*2] - half,
			Y:      r.positions[i*2+1] - half,
			Width:  r.pointSize,
			Height: r.pointSize,
		}
		rl.DrawTexturePro(r.sprite, src, dst, rl.Vector2{}, 0, r.colors[i])
	}

	rl.EndShaderMode()
	rl.EndMode2D()
}

// Unload frees resources.
func (r *PointRenderer) Unload() {
	if r.initialized {
		rl.UnloadShader(r.shader)
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
}
