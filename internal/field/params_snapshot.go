package field

import (
	"strconv"

	"magfield/internal/core"
)

// Parameters reports the grid, profile and synthesis statistics for the HUD.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	p := s.opts.Profile
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("nx", "Width", s.opts.Size.W),
				intParam("ny", "Height", s.opts.Size.H),
				stringParam("scenario", "Scenario", s.opts.Scenario),
				stringParam("field", "Field", s.opts.Field),
			},
		},
		{
			Name: "Profile",
			Params: []core.Parameter{
				stringParam("profile", "Profile", p.Name),
				floatParam("near_threshold", "Near threshold", p.NearThreshold),
				floatParam("scale", "Scale", p.Scale),
				floatParam("pole_magnitude", "Pole magnitude", p.PoleMagnitude),
				floatParam("clamp", "Clamp", p.Clamp),
			},
		},
		{
			Name: "Field",
			Params: []core.Parameter{
				stringParam("state", "State", s.state.String()),
				intParam("dipoles", "Dipoles", len(s.Dipoles())),
				floatParam("min", "Min", float64(s.stats.Min)),
				floatParam("max", "Max", float64(s.stats.Max)),
				intParam("active", "Active cells", s.stats.Active),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
