package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"magfield/internal/core"
)

func TestContributionSingleDipoleScenario(t *testing.T) {
	p := DefaultProfile()
	d := NewDipole("m", 4, 4, 0, 1, 1)

	// On the source: pole branch, positive moment-y dominant.
	require.Equal(t, 3.0, Contribution(d, 4, 4, p))

	// Four cells above the source along its axis: r̂=(0,-1), m·r̂=-1,
	// B=(0, (3·(-1)·(-1) − 1)/64) = (0, 2/64).
	require.InDelta(t, 60*2.0/64.0, Contribution(d, 4, 0, p), 1e-12)

	// Broadside at distance 3: B=(0,-1/27).
	require.InDelta(t, 60.0/27.0, Contribution(d, 7, 4, p), 1e-12)
}

func TestContributionNearThresholdIsInclusive(t *testing.T) {
	p := DefaultProfile()
	d := NewDipole("m", 4, 4, 0, -1, 2)

	// r2 == 4 on both axes uses the pole branch.
	require.Equal(t, -6.0, Contribution(d, 6, 4, p))
	require.Equal(t, -6.0, Contribution(d, 4, 2, p))
	require.Equal(t, -6.0, Contribution(d, 5, 5, p))

	// r2 == 5 is far field.
	require.NotEqual(t, -6.0, Contribution(d, 6, 5, p))
}

func TestPoleSignDominantAxisAndTie(t *testing.T) {
	p := DefaultProfile()
	cases := []struct {
		name   string
		mx, my float64
		want   float64
	}{
		{"east dominant", 2, 1, 3},
		{"west dominant", -2, 1, -3},
		{"north dominant", 0.5, 1, 3},
		{"south dominant", 0.5, -1, -3},
		{"tie resolves to vertical positive", -1, 1, 3},
		{"tie resolves to vertical negative", 1, -1, -3},
		{"zero moment reads as south", 0, 0, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDipole("m", 0, 0, tc.mx, tc.my, 1)
			require.Equal(t, tc.want, Contribution(d, 0, 0, p))
		})
	}
}

func TestSynthesizeConcreteGrid(t *testing.T) {
	s := NewSynthesizer(DefaultProfile(), 2)
	grid, st := s.Synthesize(core.Size{W: 8, H: 8}, []DipoleSource{NewDipole("m", 4, 4, 0, 1, 1)})

	require.Equal(t, float32(3), grid.At(4, 4))
	require.Equal(t, float32(1.875), grid.At(4, 0))
	// The first ring outside the pole saturates above the pole indicator.
	require.Equal(t, float32(4), grid.At(4, 7))
	require.Equal(t, float32(4), grid.At(5, 6))
	require.Equal(t, 64, st.Cells)
	require.Equal(t, float32(DefaultProfile().Clamp), st.Max)
	require.Greater(t, st.Min, float32(0))
	require.Equal(t, 64, st.Active)
}

func TestSynthesizeClampsToProfileRange(t *testing.T) {
	p := DefaultProfile()
	var dipoles []DipoleSource
	for i := 0; i < 10; i++ {
		dipoles = append(dipoles, NewDipole("n", 2, 2, 0, 1, 1))
		dipoles = append(dipoles, NewDipole("s", 12, 12, 0, -1, 1))
	}
	grid, st := NewSynthesizer(p, 0).Synthesize(core.Size{W: 16, H: 16}, dipoles)

	require.Equal(t, float32(p.Clamp), grid.At(2, 2))
	require.Equal(t, float32(-p.Clamp), grid.At(12, 12))
	require.Equal(t, float32(p.Clamp), st.Max)
	require.Equal(t, float32(-p.Clamp), st.Min)
}

func TestSynthesizeBoundedForRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, name := range ProfileNames() {
		p, ok := LookupProfile(name)
		require.True(t, ok)
		for trial := 0; trial < 20; trial++ {
			size := core.Size{W: 1 + rng.IntN(24), H: 1 + rng.IntN(24)}
			n := rng.IntN(6)
			dipoles := make([]DipoleSource, n)
			for i := range dipoles {
				dipoles[i] = NewDipole("r",
					rng.IntN(size.W+8)-4, rng.IntN(size.H+8)-4,
					rng.Float64()*4-2, rng.Float64()*4-2,
					rng.Float64()*20-10)
			}
			grid, _ := NewSynthesizer(p, 1+rng.IntN(4)).Synthesize(size, dipoles)
			for i, v := range grid.Cells() {
				if v < float32(-p.Clamp) || v > float32(p.Clamp) || math.IsNaN(float64(v)) {
					t.Fatalf("profile %s trial %d cell %d = %v outside ±%v", name, trial, i, v, p.Clamp)
				}
			}
		}
	}
}

func TestSynthesizeMirrorSymmetryAlongMoment(t *testing.T) {
	size := core.Size{W: 16, H: 16}
	cx, cy := size.Center()
	s := NewSynthesizer(DefaultProfile(), 3)

	vertical, _ := s.Synthesize(size, []DipoleSource{NewDipole("n", cx, cy, 0, 1, 1)})
	for j := 0; j < size.H; j++ {
		for k := 1; cx+k < size.W && cx-k >= 0; k++ {
			require.Equal(t, vertical.At(cx-k, j), vertical.At(cx+k, j), "row %d offset %d", j, k)
		}
	}

	horizontal, _ := s.Synthesize(size, []DipoleSource{NewDipole("e", cx, cy, 1, 0, 1)})
	for i := 0; i < size.W; i++ {
		for k := 1; cy+k < size.H && cy-k >= 0; k++ {
			require.Equal(t, horizontal.At(i, cy-k), horizontal.At(i, cy+k), "column %d offset %d", i, k)
		}
	}
}

func TestSynthesizeWorkerCountDoesNotChangeResult(t *testing.T) {
	size := core.Size{W: 33, H: 21}
	dipoles := []DipoleSource{
		NewDipole("a", 5, 5, 0.3, 1, 1.2),
		NewDipole("b", 20, 14, -1, 0.2, 0.8),
	}
	single, st1 := NewSynthesizer(DefaultProfile(), 1).Synthesize(size, dipoles)
	many, st2 := NewSynthesizer(DefaultProfile(), 7).Synthesize(size, dipoles)
	require.Equal(t, single.Cells(), many.Cells())
	require.Equal(t, st1, st2)
}

func TestSynthesizeEmptyUsesSymmetricFallback(t *testing.T) {
	size := core.Size{W: 48, H: 32}
	grid, st := NewSynthesizer(DefaultProfile(), 0).Synthesize(size, nil)
	require.NotZero(t, st.Active)

	fallback := FallbackDipoles(size)
	require.Len(t, fallback, 3)
	cx, cy := size.Center()
	require.Equal(t, cx, fallback[0].X)
	require.Equal(t, cx-fallback[1].X, fallback[2].X-cx)

	for j := 0; j < size.H; j++ {
		for k := 1; cx+k < size.W && cx-k >= 0; k++ {
			require.InDelta(t, grid.At(cx-k, j), grid.At(cx+k, j), 1e-5)
		}
	}
	require.Equal(t, float32(DefaultProfile().Clamp), grid.At(cx, cy))
}

func TestComputeStatsCountsActiveCells(t *testing.T) {
	g := core.NewFloatGrid(4, 1)
	copy(g.Cells(), []float32{-0.5, 0.005, 0.02, 0})
	st := ComputeStats(g.View(), 0.01)
	require.Equal(t, Stats{Min: -0.5, Max: 0.02, Active: 2, Cells: 4}, st)
}

func TestProfileRegistry(t *testing.T) {
	require.Contains(t, ProfileNames(), ProfileBasic)
	require.Contains(t, ProfileNames(), ProfileHiRes)
	hi, ok := LookupProfile(ProfileHiRes)
	require.True(t, ok)
	require.Greater(t, hi.Clamp, DefaultProfile().Clamp)

	_, ok = LookupProfile("missing")
	require.False(t, ok)
}

func TestDipolePolarity(t *testing.T) {
	require.Equal(t, 1.0, NewDipole("", 0, 0, 0, 1, 1).Polarity())
	require.Equal(t, -1.0, NewDipole("", 0, 0, 0, -1, 1).Polarity())
	require.Equal(t, -1.0, NewDipole("", 0, 0, -2, 1, 1).Polarity())
	require.Equal(t, -1.0, NewDipole("", 0, 0, 1, -1, 1).Polarity())
	require.Equal(t, -1.0, NewDipole("", 0, 0, 0, 0, 1).Polarity())
}
