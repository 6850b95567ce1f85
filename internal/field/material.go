package field

import "magfield/internal/core"

// MaterialBlock is a rectangle of relative permittivity EpsR.
type MaterialBlock struct {
	X0, Y0 int
	W, H   int
	EpsR   float64
}

// stamp writes the block into layer, clipping it to the grid.
func (b MaterialBlock) stamp(layer *core.FloatGrid) int {
	written := 0
	for y := max(b.Y0, 0); y < b.Y0+b.H && y < layer.H; y++ {
		for x := max(b.X0, 0); x < b.X0+b.W && x < layer.W; x++ {
			layer.Set(x, y, float32(b.EpsR))
			written++
		}
	}
	return written
}
