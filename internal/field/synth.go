package field

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"magfield/internal/core"
)

// Stats summarises a synthesized grid. It is reporting-only.
type Stats struct {
	Min    float32
	Max    float32
	Active int
	Cells  int
}

// ComputeStats scans the view for its extrema and the number of cells whose
// magnitude exceeds eps.
func ComputeStats(view core.GridView, eps float64) Stats {
	st := Stats{Cells: view.Len()}
	st.Min, st.Max = view.MinMax()
	for i := 0; i < view.Len(); i++ {
		if math.Abs(float64(view.AtIndex(i))) > eps {
			st.Active++
		}
	}
	return st
}

// Synthesizer superposes dipole contributions onto a grid.
type Synthesizer struct {
	Profile Profile
	// Workers bounds the number of row stripes computed concurrently. Values
	// below one use GOMAXPROCS.
	Workers int
}

// NewSynthesizer returns a synthesizer for the given profile.
func NewSynthesizer(p Profile, workers int) *Synthesizer {
	return &Synthesizer{Profile: p, Workers: workers}
}

// EffectiveDipoles returns dipoles, or the fallback layout when it is empty.
func EffectiveDipoles(size core.Size, dipoles []DipoleSource) []DipoleSource {
	if len(dipoles) == 0 {
		return FallbackDipoles(size)
	}
	return dipoles
}

// Synthesize allocates a grid of the given size and fills it.
func (s *Synthesizer) Synthesize(size core.Size, dipoles []DipoleSource) (*core.FloatGrid, Stats) {
	grid := core.NewFloatGrid(size.W, size.H)
	st := s.SynthesizeInto(grid, dipoles)
	return grid, st
}

// SynthesizeInto overwrites every cell of grid with the clamped superposition
// of the dipole contributions and returns the resulting statistics.
func (s *Synthesizer) SynthesizeInto(grid *core.FloatGrid, dipoles []DipoleSource) Stats {
	dipoles = EffectiveDipoles(grid.Size(), dipoles)

	workers := s.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	h := grid.H
	rowsPer := (h + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += rowsPer {
		y1 := min(y0+rowsPer, h)
		g.Go(func() error {
			s.fillRows(grid, dipoles, y0, y1)
			return nil
		})
	}
	_ = g.Wait()

	return ComputeStats(grid.View(), s.Profile.ActiveEps)
}

func (s *Synthesizer) fillRows(grid *core.FloatGrid, dipoles []DipoleSource, y0, y1 int) {
	p := s.Profile
	cells := grid.Cells()
	for j := y0; j < y1; j++ {
		row := j * grid.W
		for i := 0; i < grid.W; i++ {
			total := 0.0
			for _, d := range dipoles {
				total += Contribution(d, i, j, p)
			}
			cells[row+i] = float32(clamp(total, -p.Clamp, p.Clamp))
		}
	}
}

// Contribution returns the field sample dipole d adds to cell (i, j).
//
// Beyond the near threshold it is the magnitude of the dipole field
// B = (3(m·r̂)r̂ − m)/r³ scaled by strength and the profile gain. At or inside
// the threshold (inclusive) it is the pole indicator ±PoleMagnitude·strength,
// signed by the dominant moment component.
func Contribution(d DipoleSource, i, j int, p Profile) float64 {
	dx := float64(i - d.X)
	dy := float64(j - d.Y)
	r2 := dx*dx + dy*dy
	if r2 <= p.NearThreshold {
		return d.Strength * poleSign(d) * p.PoleMagnitude
	}
	r := math.Sqrt(r2)
	rx, ry := dx/r, dy/r
	dot := d.MomentX*rx + d.MomentY*ry
	r3 := r2 * r
	bx := (3*dot*rx - d.MomentX) / r3
	by := (3*dot*ry - d.MomentY) / r3
	return d.Strength * math.Hypot(bx, by) * p.Scale
}

// poleSign picks the dominant moment axis; a tie goes to the vertical
// component. Only a strictly positive component is north, so a zero moment
// reads as south.
func poleSign(d DipoleSource) float64 {
	c := d.MomentY
	if math.Abs(d.MomentX) > math.Abs(d.MomentY) {
		c = d.MomentX
	}
	if c > 0 {
		return 1
	}
	return -1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
