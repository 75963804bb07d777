package vision

import "sync/atomic"

// Snapshot carries the four control signals derived from one camera frame.
// Each scalar is slow-varying and independently meaningful; consumers that
// derive multi-field decisions must Load once and work from the local copy.
type Snapshot struct {
	Brightness float64 // mean luminance of the frame, 0..1
	Warmth     float64 // red versus green+blue balance, 0..1
	Texture    float64 // fraction of pixels classified as edges, 0..1
	Objects    int     // count of external contours
}

// Source defines the interface for feature snapshot producers
type Source interface {
	// Sample captures and analyzes one frame. A capture failure is
	// returned as an error so the caller can skip the tick and keep
	// the previous snapshot.
	Sample() (Snapshot, error)

	// Close releases the underlying capture resources
	Close() error
}

// Bus is the single-writer publication point between the perception loop
// and the synthesis loop. The whole snapshot is replaced by an atomic
// pointer swap, so a reader never combines fields from two different
// ticks within one Load.
type Bus struct {
	current atomic.Pointer[Snapshot]
}

func NewBus() *Bus {
	b := &Bus{}
	b.Publish(Snapshot{})
	return b
}

// Publish replaces the current snapshot. Only the perception loop calls this.
func (b *Bus) Publish(snap Snapshot) {
	b.current.Store(&snap)
}

// Load returns the most recently published snapshot.
func (b *Bus) Load() Snapshot {
	return *b.current.Load()
}
