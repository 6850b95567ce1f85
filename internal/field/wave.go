package field

import "math"

// WaveKind selects the waveform a WaveSource evaluates.
type WaveKind string

const (
	WaveGaussian WaveKind = "gaussian"
	WaveCW       WaveKind = "cw"
	WaveStatic   WaveKind = "static"
)

// Known reports whether k is one of the supported waveforms.
func (k WaveKind) Known() bool {
	switch k {
	case WaveGaussian, WaveCW, WaveStatic:
		return true
	}
	return false
}

// WaveSource is a point excitation evaluated once per discrete step.
type WaveSource struct {
	Kind      WaveKind
	X, Y      int
	Amplitude float64
	// Center is the step offset of the gaussian peak; Spread its width in steps.
	Center float64
	Spread float64
	// Frequency is in hertz and is converted to a phase per step through the
	// simulation time step.
	Frequency float64
	TimeStep  float64
}

// Value returns the excitation at the given step. Unknown kinds are silent.
func (s WaveSource) Value(step int) float64 {
	t := float64(step)
	switch s.Kind {
	case WaveGaussian:
		if s.Spread == 0 {
			if t == s.Center {
				return s.Amplitude
			}
			return 0
		}
		arg := (t - s.Center) / s.Spread
		return s.Amplitude * math.Exp(-arg*arg)
	case WaveCW:
		return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t*s.TimeStep)
	case WaveStatic:
		return s.Amplitude
	default:
		return 0
	}
}

const speedOfLight = 3e8

// CFLTimeStep returns the time step used by the excitation path for grid
// spacings dx and dy, 0.99 of the two-dimensional Courant limit.
func CFLTimeStep(dx, dy float64) float64 {
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return 0.99 / (speedOfLight * math.Sqrt(1/(dx*dx)+1/(dy*dy)))
}
