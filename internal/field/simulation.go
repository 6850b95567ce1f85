package field

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"magfield/internal/core"
)

var (
	// ErrInvalidSize is returned when a grid dimension is not positive.
	ErrInvalidSize = errors.New("field: grid dimensions must be positive")
	// ErrAlreadySynthesized is returned by SynthesizeStatic when the grid
	// already holds a synthesized field. Call Reset first.
	ErrAlreadySynthesized = errors.New("field: already synthesized")
)

// State tracks whether the simulation grid holds a synthesized field.
type State int

const (
	Uninitialized State = iota
	Synthesized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Synthesized:
		return "synthesized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a Simulation.
type Options struct {
	Size core.Size
	// DX and DY are the physical cell spacings used to derive the time step of
	// the excitation path.
	DX, DY  float64
	Profile Profile
	Workers int
	// Scenario and Field are descriptive labels.
	Scenario string
	Field    string
	Logger   *slog.Logger
}

// Excitation reports the value a wave source injected at one step.
type Excitation struct {
	Source int
	X, Y   int
	Value  float64
}

// Simulation owns the scalar grid and the sources that feed it. The static
// field is synthesized once; the grid is read-only until Reset.
type Simulation struct {
	opts   Options
	synth  *Synthesizer
	logger *slog.Logger

	grid       *core.FloatGrid
	excitation *core.FloatGrid
	perm       *core.FloatGrid

	dipoles   []DipoleSource
	effective []DipoleSource
	sources   []WaveSource
	materials []MaterialBlock

	state State
	stats Stats
	dt    float64
}

var _ core.Sim = (*Simulation)(nil)

// NewSimulation allocates the grids for opts.Size.
func NewSimulation(opts Options) (*Simulation, error) {
	if !opts.Size.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Size.W, opts.Size.H)
	}
	if opts.Profile.Name == "" {
		opts.Profile = DefaultProfile()
	}
	if opts.Scenario == "" {
		opts.Scenario = "default"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Simulation{
		opts:       opts,
		synth:      NewSynthesizer(opts.Profile, opts.Workers),
		logger:     logger,
		grid:       core.NewFloatGrid(opts.Size.W, opts.Size.H),
		excitation: core.NewFloatGrid(opts.Size.W, opts.Size.H),
		perm:       core.NewFloatGrid(opts.Size.W, opts.Size.H),
		dt:         CFLTimeStep(opts.DX, opts.DY),
	}
	s.perm.Fill(1)
	logger.Info("field initialized",
		"w", opts.Size.W, "h", opts.Size.H,
		"profile", opts.Profile.Name,
		"dt", s.dt,
	)
	return s, nil
}

// Name returns the scenario label.
func (s *Simulation) Name() string { return s.opts.Scenario }

// FieldLabel returns the name of the displayed field component.
func (s *Simulation) FieldLabel() string { return s.opts.Field }

// Size returns the grid dimensions.
func (s *Simulation) Size() core.Size { return s.opts.Size }

// Profile returns the synthesis constants in use.
func (s *Simulation) Profile() Profile { return s.opts.Profile }

// State reports whether the field has been synthesized.
func (s *Simulation) State() State { return s.state }

// Grid returns a read-only view of the scalar grid.
func (s *Simulation) Grid() core.GridView { return s.grid.View() }

// Excitation returns a read-only view of the accumulated wave excitations.
func (s *Simulation) Excitation() core.GridView { return s.excitation.View() }

// Permittivity returns a read-only view of the material layer.
func (s *Simulation) Permittivity() core.GridView { return s.perm.View() }

// Stats returns the statistics of the last synthesis.
func (s *Simulation) Stats() Stats { return s.stats }

// TimeStep returns the seconds represented by one excitation step.
func (s *Simulation) TimeStep() float64 { return s.dt }

// Materials returns the registered material blocks.
func (s *Simulation) Materials() []MaterialBlock {
	return append([]MaterialBlock(nil), s.materials...)
}

// WaveSources returns the registered excitation sources.
func (s *Simulation) WaveSources() []WaveSource {
	return append([]WaveSource(nil), s.sources...)
}

// Dipoles returns the dipoles used by the last synthesis, which is the
// fallback layout when none were configured. Before synthesis it returns the
// configured set.
func (s *Simulation) Dipoles() []DipoleSource {
	if s.state == Synthesized {
		return append([]DipoleSource(nil), s.effective...)
	}
	return append([]DipoleSource(nil), s.dipoles...)
}

// AddDipole registers a dipole. It takes effect on the next synthesis.
func (s *Simulation) AddDipole(d DipoleSource) {
	s.logger.Info("adding dipole",
		"name", d.Label, "x", d.X, "y", d.Y,
		"moment_x", d.MomentX, "moment_y", d.MomentY,
		"strength", d.Strength,
	)
	s.dipoles = append(s.dipoles, d)
}

// AddWaveSource registers a point excitation for the time-stepped path.
func (s *Simulation) AddWaveSource(src WaveSource) {
	if src.TimeStep == 0 {
		src.TimeStep = s.dt
	}
	if !src.Kind.Known() {
		s.logger.Warn("unknown waveform, source will stay silent", "type", string(src.Kind))
	}
	s.logger.Info("adding source", "type", string(src.Kind), "x", src.X, "y", src.Y, "amplitude", src.Amplitude)
	s.sources = append(s.sources, src)
}

// AddMaterialBlock stamps a permittivity block into the material layer.
func (s *Simulation) AddMaterialBlock(b MaterialBlock) {
	n := b.stamp(s.perm)
	s.logger.Info("adding material block",
		"x0", b.X0, "y0", b.Y0, "w", b.W, "h", b.H, "eps_r", b.EpsR, "cells", n)
	s.materials = append(s.materials, b)
}

// SynthesizeStatic fills the grid from the configured dipoles, substituting
// the fallback layout when none are configured. It returns
// ErrAlreadySynthesized unless the simulation is Uninitialized.
func (s *Simulation) SynthesizeStatic() error {
	if s.state == Synthesized {
		return ErrAlreadySynthesized
	}
	if len(s.dipoles) == 0 {
		s.logger.Info("no dipoles configured, using fallback pattern")
	}
	s.effective = EffectiveDipoles(s.opts.Size, s.dipoles)

	start := time.Now()
	s.stats = s.synth.SynthesizeInto(s.grid, s.effective)
	s.state = Synthesized

	s.logger.Info("field synthesized",
		"dipoles", len(s.effective),
		"min", s.stats.Min,
		"max", s.stats.Max,
		"active", s.stats.Active,
		"cells", s.stats.Cells,
		"elapsed", time.Since(start),
	)
	return nil
}

// Reset clears the scalar and excitation grids and returns the simulation to
// Uninitialized. Registered sources, dipoles and materials are kept.
func (s *Simulation) Reset() {
	s.grid.Clear()
	s.excitation.Clear()
	s.state = Uninitialized
	s.stats = Stats{}
	s.effective = nil
	s.logger.Info("field reset")
}

// AdvanceTimeStep evaluates every wave source at step and accumulates the
// values into the excitation layer. Sources outside the grid are skipped. The
// static scalar grid is never touched.
func (s *Simulation) AdvanceTimeStep(step int) []Excitation {
	out := make([]Excitation, 0, len(s.sources))
	for idx, src := range s.sources {
		if !s.excitation.In(src.X, src.Y) {
			continue
		}
		v := src.Value(step)
		i := s.excitation.Index(src.X, src.Y)
		s.excitation.Cells()[i] += float32(v)
		out = append(out, Excitation{Source: idx, X: src.X, Y: src.Y, Value: v})
	}
	return out
}
