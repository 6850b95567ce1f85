package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaveSourceGaussian(t *testing.T) {
	s := WaveSource{Kind: WaveGaussian, Amplitude: 2, Center: 50, Spread: 20}
	require.Equal(t, 2.0, s.Value(50))
	require.InDelta(t, 2*math.Exp(-1), s.Value(70), 1e-12)
	require.InDelta(t, 2*math.Exp(-1), s.Value(30), 1e-12)
	require.Less(t, s.Value(200), 1e-20)
}

func TestWaveSourceGaussianZeroSpread(t *testing.T) {
	s := WaveSource{Kind: WaveGaussian, Amplitude: 1, Center: 3}
	require.Equal(t, 1.0, s.Value(3))
	require.Zero(t, s.Value(4))
}

func TestWaveSourceContinuousWave(t *testing.T) {
	dt := CFLTimeStep(0.002, 0.002)
	freq := 1 / (8 * dt) // eight steps per period
	s := WaveSource{Kind: WaveCW, Amplitude: 1.5, Frequency: freq, TimeStep: dt}
	require.InDelta(t, 0, s.Value(0), 1e-12)
	require.InDelta(t, 1.5, s.Value(2), 1e-9)
	require.InDelta(t, -1.5, s.Value(6), 1e-9)
}

func TestWaveSourceStaticAndUnknown(t *testing.T) {
	require.Equal(t, 0.7, WaveSource{Kind: WaveStatic, Amplitude: 0.7}.Value(1234))
	require.Zero(t, WaveSource{Kind: "square", Amplitude: 1}.Value(0))
	require.False(t, WaveKind("square").Known())
	require.True(t, WaveCW.Known())
}

func TestCFLTimeStep(t *testing.T) {
	dt := CFLTimeStep(0.002, 0.002)
	require.InDelta(t, 0.99*0.002/(3e8*math.Sqrt2), dt, 1e-24)
	require.Zero(t, CFLTimeStep(0, 0.002))
}
