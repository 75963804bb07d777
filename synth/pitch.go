package synth

import "math"

// NoteCount is the size of the pitch lookup table (MIDI note range).
const NoteCount = 128

var freqTable [NoteCount]float64

func init() {
	// equal temperament, A4 = note 69 = 440 Hz
	for i := range freqTable {
		freqTable[i] = 440.0 * math.Pow(2, float64(i-69)/12.0)
	}
}

// ClampNote pins a pitch index into the valid table range. Octave
// transposition at extreme brightness can push notes past either end, so
// every table access goes through this.
func ClampNote(note int) int {
	if note < 0 {
		return 0
	}
	if note >= NoteCount {
		return NoteCount - 1
	}
	return note
}

// Freq returns the frequency in Hz for a pitch index, clamped to the table.
func Freq(note int) float64 {
	return freqTable[ClampNote(note)]
}
