//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"magfield/internal/core"
	"magfield/internal/palette"
)

// FieldPainter keeps an RGBA image of a scalar grid. The image is re-mapped
// only when the display range changes or Invalidate is called.
type FieldPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	mapper  *palette.Mapper
	workers int

	lastRange float64
	valid     bool
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int, m *palette.Mapper, workers int) *FieldPainter {
	return &FieldPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		mapper:  m,
		workers: workers,
	}
}

// Invalidate forces the next Blit to re-map the grid.
func (fp *FieldPainter) Invalidate() { fp.valid = false }

// Blit re-maps view when needed and draws it scaled onto dst.
func (fp *FieldPainter) Blit(dst *ebiten.Image, view core.GridView, rng float64, scale int) {
	if view.Len() != fp.w*fp.h {
		return
	}
	if !fp.valid || rng != fp.lastRange {
		FillFieldRGBA(fp.buf, view, fp.mapper, rng, fp.workers)
		fp.img.WritePixels(fp.buf)
		fp.lastRange = rng
		fp.valid = true
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// LegendImage builds a gradient bar image for the given range.
func LegendImage(m *palette.Mapper, rng float64, width, height int) *ebiten.Image {
	img := ebiten.NewImage(width, height)
	if buf := LegendRGBA(m, rng, width, height); buf != nil {
		img.WritePixels(buf)
	}
	return img
}
