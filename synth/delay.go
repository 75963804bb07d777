package synth

// Delay is a fixed-capacity feedback delay line. Capacity never changes
// after construction; the write position advances by one per sample,
// wrapping modulo capacity.
type Delay struct {
	buffer []float64
	pos    int
	mix    float64
}

func NewDelay(sampleRate int, seconds float64) *Delay {
	capacity := int(float64(sampleRate) * seconds)
	if capacity < 1 {
		capacity = 1
	}
	return &Delay{buffer: make([]float64, capacity), mix: delayMixMax}
}

// SetMix updates the wet/dry ratio. Called once per render period, never
// per sample.
func (d *Delay) SetMix(mix float64) {
	d.mix = mix
}

// Process feeds one dry sample through the line and returns the mixed
// output. The stored value keeps the feedback term, so echoes decay
// geometrically by the mix factor on each pass through the buffer.
func (d *Delay) Process(dry float64) float64 {
	feedback := d.buffer[d.pos]
	out := dry*(1-d.mix) + feedback*d.mix
	d.buffer[d.pos] = dry + feedback*d.mix
	d.pos = (d.pos + 1) % len(d.buffer)
	return out
}

const (
	delayMixMin = 0.30
	delayMixMax = 0.70
)

// MixForObjects maps the object count onto the wet/dry band. More detected
// objects mean a drier signal. objectCap is the sensitivity ceiling; counts
// at or above it pin the mix to the dry end of the band.
func MixForObjects(objects, objectCap int) float64 {
	if objectCap <= 0 {
		objectCap = 1
	}
	n := float64(objects) / float64(objectCap)
	if n > 1 {
		n = 1
	}
	return delayMixMax - n*(delayMixMax-delayMixMin)
}
