package report

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"magfield/internal/core"
	"magfield/internal/field"
)

func newSim(t *testing.T) *field.Simulation {
	t.Helper()
	sim, err := field.NewSimulation(field.Options{
		Size:     core.Size{W: 30, H: 20},
		DX:       0.002,
		DY:       0.002,
		Scenario: "report",
		Field:    "B",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return sim
}

func TestCenterProfiles(t *testing.T) {
	sim := newSim(t)
	require.NoError(t, sim.SynthesizeStatic())
	row, col := CenterProfiles(sim.Grid())
	require.Len(t, row, 30)
	require.Len(t, col, 20)

	cx, cy := sim.Size().Center()
	require.Equal(t, float64(sim.Grid().At(7, cy)), row[7])
	require.Equal(t, float64(sim.Grid().At(cx, 3)), col[3])

	row, col = CenterProfiles(core.GridView{})
	require.Nil(t, row)
	require.Nil(t, col)
}

func TestWaveformSumsSources(t *testing.T) {
	sim := newSim(t)
	sim.AddWaveSource(field.WaveSource{Kind: field.WaveStatic, X: 1, Y: 1, Amplitude: 0.5})
	sim.AddWaveSource(field.WaveSource{Kind: field.WaveGaussian, X: 2, Y: 2, Amplitude: 1, Center: 3, Spread: 2})
	sim.AddWaveSource(field.WaveSource{Kind: field.WaveStatic, X: 99, Y: 1, Amplitude: 7})

	wave := Waveform(sim, 6)
	require.Len(t, wave, 6)
	require.InDelta(t, 1.5, wave[3], 1e-12)
	require.Greater(t, wave[3], wave[0])
	require.InDelta(t, 0.5+field.WaveSource{Kind: field.WaveGaussian, Amplitude: 1, Center: 3, Spread: 2}.Value(0), wave[0], 1e-12)
}

func TestRenderMentionsScenario(t *testing.T) {
	sim := newSim(t)
	sim.AddWaveSource(field.WaveSource{Kind: field.WaveCW, X: 4, Y: 4, Amplitude: 1, Frequency: 1e9})
	require.NoError(t, sim.SynthesizeStatic())

	out := Render(sim, Options{Steps: 40, PlotWidth: 30, PlotHeight: 4, ColorRange: 1.8})
	require.Contains(t, out, "report [B]")
	require.Contains(t, out, "center_north")
	require.Contains(t, out, "left_south")
	require.Contains(t, out, "centre row")
	require.Contains(t, out, "centre column")
	require.Contains(t, out, "excitation, 40 steps")
	require.Contains(t, out, "1.80")
}
