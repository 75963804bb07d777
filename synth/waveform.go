package synth

import "math/rand"

type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
)

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSquare:
		return "square"
	}
	return "unknown"
}

const (
	sineTextureMax     = 0.25
	triangleTextureMax = 0.55
)

// ChooseWaveform maps the texture feature onto a shape: calm frames get a
// sine, busy frames a square. An independent random chance forces sine for
// one render period regardless of texture, a stylistic pop. popChance 0
// disables the override and makes the choice deterministic.
func ChooseWaveform(texture, popChance float64, rng *rand.Rand) Waveform {
	if popChance > 0 && rng.Float64() < popChance {
		return WaveSine
	}
	switch {
	case texture < sineTextureMax:
		return WaveSine
	case texture < triangleTextureMax:
		return WaveTriangle
	default:
		return WaveSquare
	}
}
