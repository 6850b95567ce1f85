//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"magfield/internal/core"
	"magfield/internal/field"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type dipoleProvider interface {
	Dipoles() []field.DipoleSource
}

type materialProvider interface {
	Materials() []field.MaterialBlock
}

type waveSourceProvider interface {
	WaveSources() []field.WaveSource
}

// Overlay draws optional markers on top of the field: dipole positions and
// moments, material block outlines and excitation source positions.
type Overlay struct {
	sim           core.Sim
	scale         int
	showDipoles   bool
	showMaterials bool
	showSources   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the marker layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDipoles = !o.showDipoles
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMaterials = !o.showMaterials
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showSources = !o.showSources
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}

	if o.showMaterials {
		if provider, ok := o.sim.(materialProvider); ok {
			for _, b := range provider.Materials() {
				o.drawRect(screen, float64(b.X0)*scale, float64(b.Y0)*scale, float64(b.W)*scale, float64(b.H)*scale, materialColor(b.EpsR))
			}
		}
	}
	if o.showSources {
		if provider, ok := o.sim.(waveSourceProvider); ok {
			for _, s := range provider.WaveSources() {
				cx, cy := (float64(s.X)+0.5)*scale, (float64(s.Y)+0.5)*scale
				col := color.RGBA{R: 250, G: 250, B: 120, A: 220}
				o.drawLine(screen, cx-3*scale, cy, cx+3*scale, cy, 1, col)
				o.drawLine(screen, cx, cy-3*scale, cx, cy+3*scale, 1, col)
			}
		}
	}
	if o.showDipoles {
		if provider, ok := o.sim.(dipoleProvider); ok {
			for _, d := range provider.Dipoles() {
				o.drawDipole(screen, d, scale)
			}
		}
	}
}

// drawDipole marks the dipole position and draws its moment as an arrow
// whose length follows the strength.
func (o *Overlay) drawDipole(screen *ebiten.Image, d field.DipoleSource, scale float64) {
	cx, cy := (float64(d.X)+0.5)*scale, (float64(d.Y)+0.5)*scale
	col := color.RGBA{R: 255, G: 90, B: 90, A: 230}
	if d.Polarity() < 0 {
		col = color.RGBA{R: 110, G: 140, B: 255, A: 230}
	}
	o.drawPoint(screen, cx, cy, math.Max(3, scale*2), col)

	m := math.Hypot(d.MomentX, d.MomentY)
	if m > 0 {
		length := (8 + 4*math.Min(d.Strength, 4)) * math.Max(1, scale/2)
		nx, ny := d.MomentX/m, d.MomentY/m
		tipX, tipY := cx+nx*length, cy+ny*length
		o.drawLine(screen, cx, cy, tipX, tipY, math.Max(1, scale/2), col)
		const headAngle = math.Pi / 6
		head := length * 0.35
		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, 1, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, 1, col)
	}
	if d.Label != "" {
		text.Draw(screen, d.Label, basicfont.Face7x13, int(cx)+6, int(cy)-6, color.RGBA{R: 235, G: 235, B: 240, A: 255})
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	o.drawLine(screen, x, y, x+w, y, 1, col)
	o.drawLine(screen, x+w, y, x+w, y+h, 1, col)
	o.drawLine(screen, x+w, y+h, x, y+h, 1, col)
	o.drawLine(screen, x, y+h, x, y, 1, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// materialColor shades outlines from white at eps_r 1 towards orange for
// denser blocks.
func materialColor(epsR float64) color.RGBA {
	t := clamp01((epsR - 1) / 9)
	return color.RGBA{
		R: 255,
		G: uint8(math.Round(255 - 135*t)),
		B: uint8(math.Round(255 - 215*t)),
		A: 220,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
