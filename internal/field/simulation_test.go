package field

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"magfield/internal/core"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSim(t *testing.T, w, h int) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Options{
		Size:   core.Size{W: w, H: h},
		DX:     0.002,
		DY:     0.002,
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	return sim
}

func TestNewSimulationRejectsInvalidSize(t *testing.T) {
	_, err := NewSimulation(Options{Size: core.Size{W: 0, H: 10}, Logger: quietLogger()})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestSimulationStateMachine(t *testing.T) {
	sim := newTestSim(t, 8, 8)
	sim.AddDipole(NewDipole("m", 4, 4, 0, 1, 1))
	require.Equal(t, Uninitialized, sim.State())
	require.Equal(t, DefaultProfile(), sim.Profile())

	require.NoError(t, sim.SynthesizeStatic())
	require.Equal(t, Synthesized, sim.State())
	first := make([]float32, sim.Grid().Len())
	sim.Grid().CopyTo(first)

	require.ErrorIs(t, sim.SynthesizeStatic(), ErrAlreadySynthesized)

	sim.Reset()
	require.Equal(t, Uninitialized, sim.State())
	lo, hi := sim.Grid().MinMax()
	require.Zero(t, lo)
	require.Zero(t, hi)
	require.Equal(t, Stats{}, sim.Stats())

	require.NoError(t, sim.SynthesizeStatic())
	second := make([]float32, sim.Grid().Len())
	sim.Grid().CopyTo(second)
	require.Equal(t, first, second)
	require.Equal(t, float32(3), sim.Grid().At(4, 4))
	require.Equal(t, float32(1.875), sim.Grid().At(4, 0))
}

func TestSimulationRunsAreBitIdentical(t *testing.T) {
	build := func() []float32 {
		sim := newTestSim(t, 40, 30)
		sim.AddDipole(NewDipole("a", 10, 12, 0.4, -1, 1.3))
		sim.AddDipole(NewDipole("b", 28, 17, 1, 0, 0.7))
		require.NoError(t, sim.SynthesizeStatic())
		out := make([]float32, sim.Grid().Len())
		sim.Grid().CopyTo(out)
		return out
	}
	a, b := build(), build()
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			t.Fatalf("cell %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSimulationFallbackDipolesReported(t *testing.T) {
	sim := newTestSim(t, 30, 30)
	require.Empty(t, sim.Dipoles())
	require.NoError(t, sim.SynthesizeStatic())

	got := sim.Dipoles()
	require.Equal(t, FallbackDipoles(sim.Size()), got)
	require.Equal(t, len(got), mustInt(t, sim.Parameters(), "dipoles"))
	require.NotZero(t, sim.Stats().Active)
}

func TestAdvanceTimeStepWritesOnlyExcitation(t *testing.T) {
	sim := newTestSim(t, 10, 10)
	sim.AddWaveSource(WaveSource{Kind: WaveStatic, X: 2, Y: 3, Amplitude: 0.5})
	sim.AddWaveSource(WaveSource{Kind: WaveStatic, X: 20, Y: 3, Amplitude: 9})
	require.NoError(t, sim.SynthesizeStatic())

	before := make([]float32, sim.Grid().Len())
	sim.Grid().CopyTo(before)

	out := sim.AdvanceTimeStep(0)
	sim.AdvanceTimeStep(1)

	require.Len(t, out, 1)
	require.Equal(t, Excitation{Source: 0, X: 2, Y: 3, Value: 0.5}, out[0])
	require.Equal(t, float32(1), sim.Excitation().At(2, 3))

	after := make([]float32, sim.Grid().Len())
	sim.Grid().CopyTo(after)
	require.Equal(t, before, after)

	sim.Reset()
	require.Zero(t, sim.Excitation().At(2, 3))
	require.Len(t, sim.WaveSources(), 2)
}

func TestAddWaveSourceInheritsTimeStep(t *testing.T) {
	sim := newTestSim(t, 4, 4)
	require.Equal(t, CFLTimeStep(0.002, 0.002), sim.TimeStep())
	sim.AddWaveSource(WaveSource{Kind: WaveCW, Amplitude: 1, Frequency: 1e8})
	require.Equal(t, sim.TimeStep(), sim.WaveSources()[0].TimeStep)
}

func TestMaterialBlocksAreClipped(t *testing.T) {
	sim := newTestSim(t, 6, 4)
	sim.AddMaterialBlock(MaterialBlock{X0: -2, Y0: 2, W: 4, H: 10, EpsR: 4})

	perm := sim.Permittivity()
	require.Equal(t, float32(1), perm.At(0, 1))
	require.Equal(t, float32(4), perm.At(0, 2))
	require.Equal(t, float32(4), perm.At(1, 3))
	require.Equal(t, float32(1), perm.At(2, 3))
	require.Len(t, sim.Materials(), 1)
}

func TestParametersSnapshot(t *testing.T) {
	sim, err := NewSimulation(Options{
		Size:     core.Size{W: 12, H: 9},
		Scenario: "bar",
		Field:    "B",
		Logger:   quietLogger(),
	})
	require.NoError(t, err)
	sim.AddDipole(NewDipole("m", 6, 4, 0, 1, 1))
	require.NoError(t, sim.SynthesizeStatic())

	snap := sim.Parameters()
	p, ok := snap.Lookup("scenario")
	require.True(t, ok)
	require.Equal(t, "bar", p.Value)
	p, ok = snap.Lookup("state")
	require.True(t, ok)
	require.Equal(t, "synthesized", p.Value)
	require.Equal(t, 12, mustInt(t, snap, "nx"))
	require.Equal(t, "bar", sim.Name())
	require.Equal(t, "B", sim.FieldLabel())
}

func mustInt(t *testing.T, snap core.ParameterSnapshot, key string) int {
	t.Helper()
	p, ok := snap.Lookup(key)
	require.True(t, ok, "missing %s", key)
	require.Equal(t, core.ParamTypeInt, p.Type)
	n, err := strconv.Atoi(p.Value)
	require.NoError(t, err)
	return n
}
