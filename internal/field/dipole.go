// Package field synthesizes static 2D scalar fields from point dipoles and
// carries the point-excitation sources of the time-stepped path.
package field

import "magfield/internal/core"

// DipoleSource describes one point dipole. Values are fixed once constructed.
type DipoleSource struct {
	X, Y     int
	MomentX  float64
	MomentY  float64
	Strength float64
	Label    string
}

// NewDipole returns a dipole at (x, y) with moment (mx, my).
func NewDipole(label string, x, y int, mx, my, strength float64) DipoleSource {
	return DipoleSource{X: x, Y: y, MomentX: mx, MomentY: my, Strength: strength, Label: label}
}

// FallbackDipoles returns the layout used when no dipoles are configured: a
// strong north-pointing dipole at the centre flanked by two south-pointing
// dipoles placed nx/6 to either side, so the pattern is mirror-symmetric about
// the vertical centre line.
func FallbackDipoles(size core.Size) []DipoleSource {
	cx, cy := size.Center()
	off := size.W / 6
	return []DipoleSource{
		NewDipole("center_north", cx, cy, 0, 1, 2.0),
		NewDipole("left_south", cx-off, cy, 0, -1, 1.5),
		NewDipole("right_south", cx+off, cy, 0, -1, 1.5),
	}
}

// Polarity is the sign of the pole indicator: 1 for north, -1 for south.
func (d DipoleSource) Polarity() float64 { return poleSign(d) }
