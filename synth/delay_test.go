package synth

import (
	"math"
	"testing"
)

func TestDelayImpulseResponse(t *testing.T) {
	const capacity = 8
	d := NewDelay(capacity, 1.0)
	d.SetMix(0.5)

	// unit impulse
	if out := d.Process(1); math.Abs(out-0.5) > 1e-12 {
		t.Fatalf("impulse output = %v, want dry*(1-mix) = 0.5", out)
	}
	for i := 1; i < capacity; i++ {
		if out := d.Process(0); out != 0 {
			t.Fatalf("sample %d = %v, want silence before the echo returns", i, out)
		}
	}

	// first echo at t = capacity is the stored feedback scaled by mix,
	// not by (1-mix)
	if out := d.Process(0); math.Abs(out-0.5) > 1e-12 {
		t.Fatalf("echo at t=capacity = %v, want fb*mix = 0.5", out)
	}

	// each subsequent pass decays geometrically by the mix factor
	expected := 0.25
	for pass := 2; pass <= 4; pass++ {
		for i := 1; i < capacity; i++ {
			d.Process(0)
		}
		if out := d.Process(0); math.Abs(out-expected) > 1e-12 {
			t.Fatalf("echo pass %d = %v, want %v", pass, out, expected)
		}
		expected *= 0.5
	}
}

func TestDelayCapacityFixed(t *testing.T) {
	d := NewDelay(44100, 0.35)
	want := int(44100 * 0.35)
	if len(d.buffer) != want {
		t.Fatalf("capacity = %d, want %d", len(d.buffer), want)
	}
	for i := 0; i < want*3; i++ {
		d.Process(0.1)
	}
	if len(d.buffer) != want {
		t.Errorf("capacity changed to %d after processing", len(d.buffer))
	}
}

func TestMixForObjects(t *testing.T) {
	tests := []struct {
		objects int
		cap     int
		want    float64
	}{
		{0, 8, 0.70},  // empty scene: wettest
		{8, 8, 0.30},  // at the cap: driest
		{20, 8, 0.30}, // beyond the cap: clamped
		{4, 8, 0.50},  // midway
	}
	for _, tt := range tests {
		if got := MixForObjects(tt.objects, tt.cap); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MixForObjects(%d, %d) = %v, want %v", tt.objects, tt.cap, got, tt.want)
		}
	}
}

func TestMixForObjectsStaysInBand(t *testing.T) {
	for objects := 0; objects < 100; objects++ {
		mix := MixForObjects(objects, 8)
		if mix < delayMixMin || mix > delayMixMax {
			t.Fatalf("MixForObjects(%d, 8) = %v outside [%v,%v]", objects, mix, delayMixMin, delayMixMax)
		}
	}
}
