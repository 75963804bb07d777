package sound

import "errors"

// ErrUnderrun reports that the device ran out of queued samples before the
// write landed. It is transient: the caller should Recover and keep going.
var ErrUnderrun = errors.New("sound: output underrun")

// Player defines the interface for audio playback devices. The synthesis
// loop pushes one interleaved period at a time; the blocking write paces
// the loop at the device's sample rate.
type Player interface {
	// Configure opens and starts the output stream
	Configure(sampleRate, channels, periodFrames int) error

	// WriteInterleaved plays one period of interleaved int16 samples.
	// Returns ErrUnderrun when the device underran; any other error is
	// fatal to playback.
	WriteInterleaved(buf []int16) error

	// Recover re-prepares the stream after an underrun
	Recover() error

	// DrainAndClose plays out pending samples and releases the device
	DrainAndClose() error
}
