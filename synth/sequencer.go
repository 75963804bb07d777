package synth

import (
	"math/rand"
	"sync"
)

// chordTable holds the base chord templates, indexed by quantized warmth.
// Pitches are MIDI note numbers around the fourth octave.
var chordTable = [][]int{
	{57, 60, 64},     // A minor
	{57, 60, 64, 67}, // A minor 7
	{55, 59, 62},     // G major
	{55, 59, 62, 65}, // G dominant 7
	{53, 57, 60},     // F major
	{52, 55, 59},     // E minor
}

const (
	octaveMin = -3
	octaveMax = 2
)

type reorderPolicy int

const (
	reorderReverse reorderPolicy = iota
	reorderShuffle
	reorderRotate
	reorderPolicyCount
)

// rotate offset applied by the reorderRotate policy
const rotateBy = 2

// Sequencer owns the current note sequence and the arpeggio cursor. The
// bar rebuild is a multi-field read-modify-write, so it and the sub-beat
// stepper serialize through one mutex.
type Sequencer struct {
	mu     sync.Mutex
	notes  []int
	cursor int
	rng    *rand.Rand
}

func NewSequencer(seed int64) *Sequencer {
	return &Sequencer{rng: rand.New(rand.NewSource(seed))}
}

func templateIndex(warmth float64) int {
	i := int(warmth * float64(len(chordTable)))
	if i < 0 {
		return 0
	}
	if i >= len(chordTable) {
		return len(chordTable) - 1
	}
	return i
}

func octaveOffset(brightness float64) int {
	span := octaveMax - octaveMin + 1
	off := octaveMin + int(brightness*float64(span))
	if off > octaveMax {
		return octaveMax
	}
	if off < octaveMin {
		return octaveMin
	}
	return off
}

func reorder(notes []int, policy reorderPolicy, rng *rand.Rand) {
	switch policy {
	case reorderReverse:
		for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
			notes[i], notes[j] = notes[j], notes[i]
		}
	case reorderShuffle:
		rng.Shuffle(len(notes), func(i, j int) {
			notes[i], notes[j] = notes[j], notes[i]
		})
	case reorderRotate:
		rotated := make([]int, 0, len(notes))
		rotated = append(rotated, notes[rotateBy%len(notes):]...)
		rotated = append(rotated, notes[:rotateBy%len(notes)]...)
		copy(notes, rotated)
	}
}

// RebuildBar commits a fresh note sequence from the current feature state:
// warmth selects the chord template, a random policy reorders it,
// brightness transposes it by whole octaves (clamped to the pitch table),
// and the first pitch is appended to close the phrase. The cursor resets
// to the first pitch, which is also returned so the caller can re-init
// the oscillator.
func (s *Sequencer) RebuildBar(warmth, brightness float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	template := chordTable[templateIndex(warmth)]
	notes := make([]int, len(template), len(template)+1)
	copy(notes, template)

	reorder(notes, reorderPolicy(s.rng.Intn(int(reorderPolicyCount))), s.rng)

	offset := octaveOffset(brightness)
	for i := range notes {
		notes[i] = ClampNote(notes[i] + 12*offset)
	}
	notes = append(notes, notes[0])

	s.notes = notes
	s.cursor = 0
	return notes[0]
}

// StepSubBeat advances the arpeggio cursor, wrapping modulo the sequence
// length, and returns the pitch at the new position.
func (s *Sequencer) StepSubBeat() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notes) == 0 {
		return chordTable[0][0]
	}
	s.cursor = (s.cursor + 1) % len(s.notes)
	return s.notes[s.cursor]
}

// CurrentNote returns the pitch under the arpeggio cursor.
func (s *Sequencer) CurrentNote() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notes) == 0 {
		return chordTable[0][0]
	}
	return s.notes[s.cursor]
}

// Sequence returns a copy of the committed note sequence.
func (s *Sequencer) Sequence() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, len(s.notes))
	copy(out, s.notes)
	return out
}
