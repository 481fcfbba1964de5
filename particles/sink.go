package particles

// Sink receives particle buffers for drawing. Implemented by the raylib
// point renderer and the software snapshot renderer.
type Sink interface {
	// UploadPositions replaces the position buffer (2 floats per particle).
	UploadPositions(positions []float32)
	// UploadColors replaces the color buffer (4 floats per particle).
	UploadColors(colors []float32)
	// Draw draws count points from the uploaded buffers.
	Draw(count int)
}

// Upload pushes the whole store into sink: colors once, positions each time.
func Upload(s *Store, sink Sink) {
	if sink == nil {
		return
	}
	sink.UploadColors(s.Colors())
	sink.UploadPositions(s.Positions())
}
