package app

import (
	"fmt"
	"log/slog"

	"magfield/internal/colorrange"
	"magfield/internal/config"
	"magfield/internal/field"
	"magfield/internal/palette"
)

// Session bundles what every viewer needs: the synthesized simulation, the
// range controller seeded from the scenario, and the colour mapper.
type Session struct {
	Scenario config.Config
	// Loaded is false when the fallback scenario replaced the file.
	Loaded bool
	Sim    *field.Simulation
	Range  *colorrange.Controller
	Mapper *palette.Mapper
}

// Open loads the scenario named by c, builds the simulation and synthesizes
// the static field.
func Open(c *Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	profile, ok := field.LookupProfile(c.Profile)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", c.Profile)
	}
	mapper, err := palette.NewNamedMapper(c.Palette)
	if err != nil {
		return nil, err
	}
	logger.Debug("palette ready", "table", mapper.Table().Name, "bands", len(mapper.Table().Bands))

	scenario, loaded := config.LoadOrFallback(c.ConfigPath, logger)
	sim, err := scenario.NewSimulation(profile, c.Workers, logger)
	if err != nil {
		return nil, fmt.Errorf("build simulation: %w", err)
	}
	if err := sim.SynthesizeStatic(); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	return &Session{
		Scenario: scenario,
		Loaded:   loaded,
		Sim:      sim,
		Range:    colorrange.New(scenario.Visualization.ColorRange, logger),
		Mapper:   mapper,
	}, nil
}

// Resynthesize clears and rebuilds the static field.
func (s *Session) Resynthesize() error {
	s.Sim.Reset()
	return s.Sim.SynthesizeStatic()
}
