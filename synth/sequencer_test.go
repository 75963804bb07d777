package synth

import (
	"math/rand"
	"testing"
)

func TestTemplateIndexClamped(t *testing.T) {
	if got := templateIndex(0.0); got != 0 {
		t.Errorf("templateIndex(0) = %d, want 0", got)
	}
	if got := templateIndex(1.0); got != len(chordTable)-1 {
		t.Errorf("templateIndex(1) = %d, want last index %d", got, len(chordTable)-1)
	}
	if got := templateIndex(0.999); got != len(chordTable)-1 {
		t.Errorf("templateIndex(0.999) = %d, want last index", got)
	}
	if got := templateIndex(-0.5); got != 0 {
		t.Errorf("templateIndex(-0.5) = %d, want 0", got)
	}
}

func TestOctaveOffsetMapping(t *testing.T) {
	tests := []struct {
		brightness float64
		want       int
	}{
		{0.0, -3},
		{0.5, 0},
		{1.0, 2},
		{0.99, 2},
	}
	for _, tt := range tests {
		if got := octaveOffset(tt.brightness); got != tt.want {
			t.Errorf("octaveOffset(%v) = %d, want %d", tt.brightness, got, tt.want)
		}
	}
}

func TestReorderPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for policy := reorderPolicy(0); policy < reorderPolicyCount; policy++ {
		for length := 2; length <= 6; length++ {
			notes := make([]int, length)
			for i := range notes {
				notes[i] = 50 + i
			}
			reorder(notes, policy, rng)
			if len(notes) != length {
				t.Fatalf("policy %d changed length %d to %d", policy, length, len(notes))
			}
		}
	}
}

func TestReorderReverse(t *testing.T) {
	notes := []int{1, 2, 3, 4}
	reorder(notes, reorderReverse, nil)
	want := []int{4, 3, 2, 1}
	for i := range want {
		if notes[i] != want[i] {
			t.Fatalf("reverse = %v, want %v", notes, want)
		}
	}
}

func TestReorderRotateByTwo(t *testing.T) {
	notes := []int{1, 2, 3, 4}
	reorder(notes, reorderRotate, nil)
	want := []int{3, 4, 1, 2}
	for i := range want {
		if notes[i] != want[i] {
			t.Fatalf("rotate = %v, want %v", notes, want)
		}
	}
}

func TestReorderShuffleKeepsNotes(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	notes := []int{57, 60, 64, 67}
	reorder(notes, reorderShuffle, rng)
	counts := map[int]int{}
	for _, n := range notes {
		counts[n]++
	}
	for _, want := range []int{57, 60, 64, 67} {
		if counts[want] != 1 {
			t.Fatalf("shuffle lost or duplicated notes: %v", notes)
		}
	}
}

// Rebuilding with warmth 0 and brightness 0.5 must commit template 0,
// untransposed, reordered by whichever policy the seeded rng picks, with
// the first pitch appended to close the phrase.
func TestRebuildBarCommitsClosedPhrase(t *testing.T) {
	const seed = 42
	s := NewSequencer(seed)
	first := s.RebuildBar(0.0, 0.5)

	// replay the same rng stream to reconstruct the expected sequence
	replay := rand.New(rand.NewSource(seed))
	expected := make([]int, len(chordTable[0]))
	copy(expected, chordTable[0])
	reorder(expected, reorderPolicy(replay.Intn(int(reorderPolicyCount))), replay)
	expected = append(expected, expected[0])

	got := s.Sequence()
	if len(got) != len(chordTable[0])+1 {
		t.Fatalf("sequence length = %d, want %d", len(got), len(chordTable[0])+1)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("sequence = %v, want %v", got, expected)
		}
	}
	if got[len(got)-1] != got[0] {
		t.Errorf("phrase not closed: first %d, last %d", got[0], got[len(got)-1])
	}
	if first != got[0] {
		t.Errorf("RebuildBar returned %d, cursor note is %d", first, got[0])
	}
	if s.CurrentNote() != got[0] {
		t.Errorf("cursor not reset to first pitch")
	}
}

func TestRebuildBarTransposeStaysInRange(t *testing.T) {
	for _, brightness := range []float64{0.0, 1.0} {
		for warmth := 0.0; warmth <= 1.0; warmth += 0.1 {
			s := NewSequencer(5)
			s.RebuildBar(warmth, brightness)
			for _, n := range s.Sequence() {
				if n < 0 || n >= NoteCount {
					t.Fatalf("note %d outside pitch table at warmth=%v brightness=%v", n, warmth, brightness)
				}
			}
		}
	}
}

func TestStepSubBeatWraps(t *testing.T) {
	s := NewSequencer(11)
	s.RebuildBar(0.0, 0.5)
	seq := s.Sequence()

	for i := 1; i < len(seq); i++ {
		if got := s.StepSubBeat(); got != seq[i] {
			t.Fatalf("step %d = %d, want %d", i, got, seq[i])
		}
	}
	// next step wraps to the start
	if got := s.StepSubBeat(); got != seq[0] {
		t.Errorf("wrap step = %d, want %d", got, seq[0])
	}
}

func TestStepSubBeatBeforeRebuild(t *testing.T) {
	s := NewSequencer(1)
	// no sequence committed yet: the stepper must not panic and falls
	// back to the root of the first template
	if got := s.StepSubBeat(); got != chordTable[0][0] {
		t.Errorf("empty-sequence step = %d, want %d", got, chordTable[0][0])
	}
}
