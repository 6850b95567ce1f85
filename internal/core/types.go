package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }

// Center returns the integer centre cell.
func (s Size) Center() (int, int) { return s.W / 2, s.H / 2 }

// Sim defines the contract the presentation layers rely on: a named scalar
// field of fixed size that can be rebuilt on demand.
type Sim interface {
	Name() string
	Size() Size
	Grid() GridView
	Reset()
}
