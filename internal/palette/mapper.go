package palette

import (
	"fmt"
	"image/color"
	"math"

	"magfield/internal/core"
)

// Mapper converts scalar samples into opaque RGBA colours. Map is a pure
// function of its arguments; the table is fixed at construction.
type Mapper struct {
	table Table
}

// NewMapper validates t and returns a mapper over it.
func NewMapper(t Table) (*Mapper, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Mapper{table: t}, nil
}

// NewNamedMapper returns a mapper over a registered table.
func NewNamedMapper(name string) (*Mapper, error) {
	t, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("palette: unknown table %q", name)
	}
	return NewMapper(t)
}

// Table returns the band table in use.
func (m *Mapper) Table() Table { return m.table }

// Normalize returns value/rng clamped to [-1, 1]. A non-positive range
// saturates every non-zero sample.
func Normalize(value, rng float64) float64 {
	var n float64
	switch {
	case math.IsNaN(value):
		return 0
	case rng > 0:
		n = value / rng
	case value > 0:
		n = 1
	case value < 0:
		n = -1
	}
	if n > 1 {
		return 1
	}
	if n < -1 {
		return -1
	}
	return n
}

// Map returns the colour of value under display range rng.
func (m *Mapper) Map(value, rng float64) color.RGBA {
	return m.MapNormalized(Normalize(value, rng))
}

// MapNormalized returns the colour of an already normalized sample in [-1, 1].
func (m *Mapper) MapNormalized(n float64) color.RGBA {
	mag := math.Abs(n)
	b := m.table.Bands[m.table.band(mag)]
	r, g, bl := b.Color(mag, n > 0).RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// Legend samples Map at width evenly spaced values t·rng with t running from
// -1 to 1 inclusive, for drawing a gradient key.
func (m *Mapper) Legend(rng float64, width int) []color.RGBA {
	if width <= 0 {
		return nil
	}
	out := make([]color.RGBA, width)
	if width == 1 {
		out[0] = m.Map(0, rng)
		return out
	}
	for i := range out {
		t := -1 + 2*float64(i)/float64(width-1)
		out[i] = m.Map(t*rng, rng)
	}
	return out
}

// MapCells writes the colour of every cell of view into dst as RGBA bytes in
// row-major order. dst must hold at least 4*view.Len() bytes; it returns the
// number of cells written.
func (m *Mapper) MapCells(dst []byte, view core.GridView, rng float64) int {
	return m.MapRange(dst, view, rng, 0, view.Len())
}

// MapRange is MapCells restricted to cell indices [lo, hi). Disjoint ranges
// may be filled concurrently.
func (m *Mapper) MapRange(dst []byte, view core.GridView, rng float64, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if n := view.Len(); hi > n {
		hi = n
	}
	if limit := len(dst) / 4; hi > limit {
		hi = limit
	}
	for i := lo; i < hi; i++ {
		c := m.Map(float64(view.AtIndex(i)), rng)
		base := i * 4
		dst[base+0] = c.R
		dst[base+1] = c.G
		dst[base+2] = c.B
		dst[base+3] = c.A
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}
