package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"magfield/internal/core"
	"magfield/internal/field"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte(`{
		"grid": {"nx": 64},
		"magnets": [{"x": 10, "y": 12}, {"x": 3, "y": 4, "moment_x": 1, "moment_y": 0, "strength": 2.5, "name": "bar"}],
		"sources": [{"x": 5, "y": 6}, {"type": "cw", "freq_hz": 2e9}],
		"visualization": {"color_range": 1.4}
	}`))
	require.NoError(t, err)

	require.Equal(t, Grid{NX: 64, NY: 256, DX: 0.002, DY: 0.002}, c.Grid)
	require.Equal(t, 10000, c.Timestepping.MaxSteps)
	require.Equal(t, "default", c.Scenario)
	require.Equal(t, Visualization{Field: "Ez", ColorRange: 1.4}, c.Visualization)

	require.Equal(t, Magnet{X: 10, Y: 12, MomentY: 1, Strength: 1, Name: "magnet"}, c.Magnets[0])
	require.Equal(t, Magnet{X: 3, Y: 4, MomentX: 1, Strength: 2.5, Name: "bar"}, c.Magnets[1])

	require.Equal(t, Source{Type: "gaussian", X: 5, Y: 6, Amplitude: 1, T0: 50, Spread: 20, FreqHz: 1e8}, c.Sources[0])
	require.Equal(t, "cw", c.Sources[1].Type)
	require.Equal(t, 2e9, c.Sources[1].FreqHz)
	require.Equal(t, 1.0, c.Sources[1].Amplitude)
}

func TestParseRequiresMaterialKeys(t *testing.T) {
	c, err := Parse([]byte(`{"materials": [{"x0": 1, "y0": 2, "w": 3, "h": 4, "eps_r": 2.2}]}`))
	require.NoError(t, err)
	require.Equal(t, []Material{{X0: 1, Y0: 2, W: 3, H: 4, EpsR: 2.2}}, c.Materials)

	_, err = Parse([]byte(`{"materials": [{"x0": 1, "y0": 2, "w": 3}]}`))
	require.Error(t, err)
}

func TestParseRejectsBadGrid(t *testing.T) {
	_, err := Parse([]byte(`{"grid": {"nx": 0}}`))
	require.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Parse([]byte(`{"grid": {"dx": -1}}`))
	require.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Parse([]byte(`{"grid": `))
	require.Error(t, err)
}

func TestLoadWrapsErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	c, err := Load(writeFile(t, `{"scenario": "bar_magnet"}`))
	require.NoError(t, err)
	require.Equal(t, "bar_magnet", c.Scenario)
}

func TestLoadOrFallback(t *testing.T) {
	c, ok := LoadOrFallback(writeFile(t, `not json`), quietLogger())
	require.False(t, ok)
	require.Equal(t, Fallback(), c)
	require.Equal(t, Grid{NX: 512, NY: 512, DX: 0.001, DY: 0.001}, c.Grid)
	require.Equal(t, 1.8, c.Visualization.ColorRange)
	require.Equal(t, "B", c.Visualization.Field)
	require.Equal(t, "default_fallback", c.Scenario)
	require.Empty(t, c.Magnets)

	c, ok = LoadOrFallback(writeFile(t, `{"grid": {"nx": 32, "ny": 16}}`), quietLogger())
	require.True(t, ok)
	require.Equal(t, core.Size{W: 32, H: 16}, c.Size())
}

func TestConversions(t *testing.T) {
	c := Default()
	c.Grid = Grid{NX: 20, NY: 10, DX: 0.001, DY: 0.002}
	c.Magnets = []Magnet{{X: 5, Y: 5, MomentY: -1, Strength: 2, Name: "s"}}
	c.Sources = []Source{{Type: "static", X: 1, Y: 1, Amplitude: 0.25}}
	c.Materials = []Material{{X0: 0, Y0: 0, W: 2, H: 2, EpsR: 3}}
	c.Scenario = "unit"

	require.Equal(t, []field.DipoleSource{field.NewDipole("s", 5, 5, 0, -1, 2)}, c.Dipoles())
	require.Equal(t, field.WaveStatic, c.WaveSources()[0].Kind)
	require.Equal(t, field.MaterialBlock{W: 2, H: 2, EpsR: 3}, c.MaterialBlocks()[0])

	sim, err := c.NewSimulation(field.DefaultProfile(), 2, quietLogger())
	require.NoError(t, err)
	require.Equal(t, "unit", sim.Name())
	require.Equal(t, "Ez", sim.FieldLabel())
	require.Equal(t, core.Size{W: 20, H: 10}, sim.Size())
	require.Len(t, sim.Dipoles(), 1)
	require.Len(t, sim.WaveSources(), 1)
	require.Equal(t, sim.TimeStep(), sim.WaveSources()[0].TimeStep)
	require.Equal(t, float32(3), sim.Permittivity().At(1, 1))
	require.Equal(t, field.CFLTimeStep(0.001, 0.002), sim.TimeStep())

	require.NoError(t, sim.SynthesizeStatic())
	require.Equal(t, float32(-field.DefaultProfile().Clamp), sim.Grid().At(5, 5))
}

func TestExampleAssetParses(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "assets", "config.json"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	require.NotEmpty(t, c.Magnets)
}
