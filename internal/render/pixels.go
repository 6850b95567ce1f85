package render

import (
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"

	"magfield/internal/core"
	"magfield/internal/palette"
)

// FillFieldRGBA maps every cell of view through m at display range rng and
// writes the RGBA pixels into buf in row-major order. Rows are split into
// stripes filled concurrently; workers < 1 uses GOMAXPROCS. buf must hold
// 4 bytes per cell; a short buffer is filled as far as it reaches.
func FillFieldRGBA(buf []byte, view core.GridView, m *palette.Mapper, rng float64, workers int) {
	size := view.Size()
	if size.W == 0 || size.H == 0 {
		return
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > size.H {
		workers = size.H
	}
	rows := (size.H + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < size.H; y0 += rows {
		lo := y0 * size.W
		hi := min(y0+rows, size.H) * size.W
		g.Go(func() error {
			m.MapRange(buf, view, rng, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// fillColorsRGBA writes a colour strip into buf. When colors is empty the
// buffer is cleared to transparent black.
func fillColorsRGBA(buf []byte, colors []color.RGBA) {
	if len(colors) == 0 {
		clear(buf)
		return
	}
	for i, col := range colors {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// LegendRGBA returns a width×height RGBA buffer with the legend gradient
// repeated on every row.
func LegendRGBA(m *palette.Mapper, rng float64, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	row := make([]byte, 4*width)
	fillColorsRGBA(row, m.Legend(rng, width))
	buf := make([]byte, 0, len(row)*height)
	for y := 0; y < height; y++ {
		buf = append(buf, row...)
	}
	return buf
}
