package core

// FloatGrid stores a 2D grid of float32 samples in row-major order. Its size is
// fixed at construction.
type FloatGrid struct {
	W, H int
	data []float32
}

// NewFloatGrid allocates a zero-filled grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float32, w*h)}
}

// Size returns the grid dimensions.
func (g *FloatGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so producers can write values directly.
func (g *FloatGrid) Cells() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *FloatGrid) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the sample at (x, y).
func (g *FloatGrid) At(x, y int) float32 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *FloatGrid) Set(x, y int, v float32) { g.data[y*g.W+x] = v }

// Fill writes v into every cell.
func (g *FloatGrid) Fill(v float32) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() { g.Fill(0) }

// View returns a read-only view over the grid.
func (g *FloatGrid) View() GridView { return GridView{g: g} }

// GridView is a read-only window onto a FloatGrid. The zero value is an empty
// view.
type GridView struct {
	g *FloatGrid
}

// Size returns the dimensions of the viewed grid.
func (v GridView) Size() Size {
	if v.g == nil {
		return Size{}
	}
	return v.g.Size()
}

// Len returns the number of cells.
func (v GridView) Len() int {
	if v.g == nil {
		return 0
	}
	return len(v.g.data)
}

// At returns the sample at (x, y).
func (v GridView) At(x, y int) float32 { return v.g.At(x, y) }

// AtIndex returns the sample at linear index i.
func (v GridView) AtIndex(i int) float32 { return v.g.data[i] }

// Row returns a copy of row y.
func (v GridView) Row(y int) []float32 {
	out := make([]float32, v.g.W)
	copy(out, v.g.data[y*v.g.W:(y+1)*v.g.W])
	return out
}

// CopyTo copies the samples into dst and returns the number copied.
func (v GridView) CopyTo(dst []float32) int {
	if v.g == nil {
		return 0
	}
	return copy(dst, v.g.data)
}

// MinMax returns the smallest and largest sample. An empty view reports zeros.
func (v GridView) MinMax() (float32, float32) {
	if v.Len() == 0 {
		return 0, 0
	}
	lo, hi := v.g.data[0], v.g.data[0]
	for _, s := range v.g.data[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}
