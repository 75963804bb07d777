package synth

import "math"

// Oscillator is a phase accumulator. It holds only phase and per-sample
// step; the waveform shape is chosen by the caller per sample.
type Oscillator struct {
	phase      float64
	step       float64
	sampleRate float64
}

func NewOscillator(sampleRate int) *Oscillator {
	return &Oscillator{sampleRate: float64(sampleRate)}
}

// Init resets phase to zero and derives the per-sample step from freq.
// Resetting the phase on every pitch change is deliberate: it trades a
// phase discontinuity at note onset for a predictable zero crossing.
func (o *Oscillator) Init(freq float64) {
	o.phase = 0
	o.step = freq / o.sampleRate
}

// Phase returns the current phase in [0,1).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

func (o *Oscillator) advance() float64 {
	p := o.phase
	o.phase += o.step
	o.phase -= math.Floor(o.phase)
	return p
}

func (o *Oscillator) Sine() float64 {
	return math.Sin(2 * math.Pi * o.advance())
}

func (o *Oscillator) Triangle() float64 {
	p := o.advance()
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

func (o *Oscillator) Square() float64 {
	if o.advance() < 0.5 {
		return 1
	}
	return -1
}
