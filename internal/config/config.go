// Package config loads the JSON scenario document describing the grid, the
// dipoles, the excitation sources and the display settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"magfield/internal/core"
	"magfield/internal/field"
)

// ErrInvalidGrid is returned by Load when the document declares a
// non-positive grid dimension or spacing.
var ErrInvalidGrid = errors.New("config: invalid grid")

// Grid is the simulation grid shape and physical cell spacing in metres.
type Grid struct {
	NX int     `json:"nx"`
	NY int     `json:"ny"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Timestepping bounds the excitation path.
type Timestepping struct {
	MaxSteps int `json:"max_steps"`
}

// Material is a rectangular permittivity block. All keys are required.
type Material struct {
	X0   int     `json:"x0"`
	Y0   int     `json:"y0"`
	W    int     `json:"w"`
	H    int     `json:"h"`
	EpsR float64 `json:"eps_r"`
}

// Source is a point excitation for the time-stepped path.
type Source struct {
	Type      string  `json:"type"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Amplitude float64 `json:"amplitude"`
	T0        float64 `json:"t0"`
	Spread    float64 `json:"spread"`
	FreqHz    float64 `json:"freq_hz"`
}

// Magnet is one dipole of the static field.
type Magnet struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	MomentX  float64 `json:"moment_x"`
	MomentY  float64 `json:"moment_y"`
	Strength float64 `json:"strength"`
	Name     string  `json:"name"`
}

// Visualization holds the displayed field label and the startup colour range.
type Visualization struct {
	Field      string  `json:"field"`
	ColorRange float64 `json:"color_range"`
}

// Config is the whole scenario document.
type Config struct {
	Grid          Grid          `json:"grid"`
	Timestepping  Timestepping  `json:"timestepping"`
	Materials     []Material    `json:"materials"`
	Sources       []Source      `json:"sources"`
	Magnets       []Magnet      `json:"magnets"`
	Visualization Visualization `json:"visualization"`
	Scenario      string        `json:"scenario"`
}

// Default returns the values used for keys missing from a document.
func Default() Config {
	return Config{
		Grid:          Grid{NX: 256, NY: 256, DX: 0.002, DY: 0.002},
		Timestepping:  Timestepping{MaxSteps: 10000},
		Visualization: Visualization{Field: "Ez", ColorRange: 1.0},
		Scenario:      "default",
	}
}

// Fallback returns the high-resolution configuration used when no document
// can be loaded. It has no magnets, so the fallback dipole layout applies.
func Fallback() Config {
	c := Default()
	c.Grid = Grid{NX: 512, NY: 512, DX: 0.001, DY: 0.001}
	c.Visualization = Visualization{Field: "B", ColorRange: 1.8}
	c.Scenario = "default_fallback"
	return c
}

// DefaultSource returns the values used for keys missing from a source entry.
func DefaultSource() Source {
	return Source{Type: string(field.WaveGaussian), Amplitude: 1, T0: 50, Spread: 20, FreqHz: 1e8}
}

// DefaultMagnet returns the values used for keys missing from a magnet entry.
func DefaultMagnet() Magnet {
	return Magnet{MomentY: 1, Strength: 1, Name: "magnet"}
}

func (s *Source) UnmarshalJSON(data []byte) error {
	type plain Source
	v := plain(DefaultSource())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Source(v)
	return nil
}

func (m *Magnet) UnmarshalJSON(data []byte) error {
	type plain Magnet
	v := plain(DefaultMagnet())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Magnet(v)
	return nil
}

func (m *Material) UnmarshalJSON(data []byte) error {
	var raw struct {
		X0   *int     `json:"x0"`
		Y0   *int     `json:"y0"`
		W    *int     `json:"w"`
		H    *int     `json:"h"`
		EpsR *float64 `json:"eps_r"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.X0 == nil || raw.Y0 == nil || raw.W == nil || raw.H == nil || raw.EpsR == nil {
		return errors.New("material requires x0, y0, w, h and eps_r")
	}
	*m = Material{X0: *raw.X0, Y0: *raw.Y0, W: *raw.W, H: *raw.H, EpsR: *raw.EpsR}
	return nil
}

// Parse decodes a document over the defaults and validates the grid.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the grid shape and spacing.
func (c Config) Validate() error {
	g := c.Grid
	if g.NX <= 0 || g.NY <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.NX, g.NY)
	}
	if !(g.DX > 0) || !(g.DY > 0) {
		return fmt.Errorf("%w: spacing %gx%g", ErrInvalidGrid, g.DX, g.DY)
	}
	return nil
}

// Load reads and parses the document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOrFallback loads path, or logs a warning and returns Fallback when the
// document cannot be read or parsed. The boolean reports whether path was
// used.
func LoadOrFallback(path string, logger *slog.Logger) (Config, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	c, err := Load(path)
	if err != nil {
		logger.Warn("using fallback configuration", "path", path, "err", err)
		return Fallback(), false
	}
	logger.Info("configuration loaded",
		"path", path,
		"scenario", c.Scenario,
		"nx", c.Grid.NX, "ny", c.Grid.NY,
		"magnets", len(c.Magnets),
		"sources", len(c.Sources),
		"materials", len(c.Materials),
	)
	return c, true
}

// Size returns the grid shape.
func (c Config) Size() core.Size { return core.Size{W: c.Grid.NX, H: c.Grid.NY} }

// Dipoles converts the magnets into dipole sources.
func (c Config) Dipoles() []field.DipoleSource {
	out := make([]field.DipoleSource, 0, len(c.Magnets))
	for _, m := range c.Magnets {
		out = append(out, field.NewDipole(m.Name, m.X, m.Y, m.MomentX, m.MomentY, m.Strength))
	}
	return out
}

// WaveSources converts the sources. The time step is left for the simulation
// to fill in.
func (c Config) WaveSources() []field.WaveSource {
	out := make([]field.WaveSource, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, field.WaveSource{
			Kind:      field.WaveKind(s.Type),
			X:         s.X,
			Y:         s.Y,
			Amplitude: s.Amplitude,
			Center:    s.T0,
			Spread:    s.Spread,
			Frequency: s.FreqHz,
		})
	}
	return out
}

// MaterialBlocks converts the material entries.
func (c Config) MaterialBlocks() []field.MaterialBlock {
	out := make([]field.MaterialBlock, 0, len(c.Materials))
	for _, m := range c.Materials {
		out = append(out, field.MaterialBlock{X0: m.X0, Y0: m.Y0, W: m.W, H: m.H, EpsR: m.EpsR})
	}
	return out
}

// SimulationOptions returns the field options for this document.
func (c Config) SimulationOptions(p field.Profile, workers int, logger *slog.Logger) field.Options {
	return field.Options{
		Size:     c.Size(),
		DX:       c.Grid.DX,
		DY:       c.Grid.DY,
		Profile:  p,
		Workers:  workers,
		Scenario: c.Scenario,
		Field:    c.Visualization.Field,
		Logger:   logger,
	}
}

// NewSimulation builds a simulation and registers every material, source and
// magnet of the document. The field is not yet synthesized.
func (c Config) NewSimulation(p field.Profile, workers int, logger *slog.Logger) (*field.Simulation, error) {
	sim, err := field.NewSimulation(c.SimulationOptions(p, workers, logger))
	if err != nil {
		return nil, err
	}
	for _, m := range c.MaterialBlocks() {
		sim.AddMaterialBlock(m)
	}
	for _, s := range c.WaveSources() {
		sim.AddWaveSource(s)
	}
	for _, d := range c.Dipoles() {
		sim.AddDipole(d)
	}
	return sim, nil
}
