package sequencer

import (
	"testing"
	"time"
)

func tapSeries(tt *TapTempo, start time.Time, gaps ...time.Duration) (bpm int, ok bool) {
	now := start
	bpm, ok = tt.Tap(now)
	for _, g := range gaps {
		now = now.Add(g)
		bpm, ok = tt.Tap(now)
	}
	return bpm, ok
}

func TestTapTempoFourTaps(t *testing.T) {
	var tt TapTempo
	start := time.Unix(1000, 0)
	ms := time.Millisecond

	for i, want := range []bool{false, false, false, true} {
		_, ok := tt.Tap(start.Add(time.Duration(i) * 500 * ms))
		if ok != want {
			t.Fatalf("tap %d: ok = %v, want %v", i+1, ok, want)
		}
	}

	tt.Reset()
	bpm, ok := tapSeries(&tt, start, 500*ms, 500*ms, 500*ms)
	if !ok || bpm != 120 {
		t.Errorf("bpm = %d ok = %v, want 120", bpm, ok)
	}
}

func TestTapTempoUsesLastFour(t *testing.T) {
	var tt TapTempo
	ms := time.Millisecond
	// slow taps age out of the window
	bpm, ok := tapSeries(&tt, time.Unix(0, 0), 1000*ms, 1000*ms, 1000*ms, 250*ms, 250*ms, 250*ms)
	if !ok || bpm != 240 {
		t.Errorf("bpm = %d ok = %v, want 240", bpm, ok)
	}
	if tt.Count() != 7 {
		t.Errorf("count = %d, want 7", tt.Count())
	}
}

func TestTapTempoResetOnGap(t *testing.T) {
	var tt TapTempo
	ms := time.Millisecond
	start := time.Unix(0, 0)

	tapSeries(&tt, start, 500*ms, 500*ms)
	_, ok := tt.Tap(start.Add(1000*ms + 2001*ms))
	if ok {
		t.Error("tap after long gap must not estimate")
	}
	if tt.Count() != 1 {
		t.Errorf("count after gap = %d, want 1", tt.Count())
	}

	// exactly 2000ms is not a reset
	var t2 TapTempo
	_, ok = tapSeries(&t2, start, 2000*ms, 2000*ms, 2000*ms)
	if !ok {
		t.Error("2000ms gaps should still count")
	}
}

func TestTapTempoClamp(t *testing.T) {
	ms := time.Millisecond

	// 6000ms would be 10 BPM but resets; 1900ms gaps give ~32 BPM -> 40
	var slow TapTempo
	bpm, ok := tapSeries(&slow, time.Unix(0, 0), 1900*ms, 1900*ms, 1900*ms)
	if !ok || bpm != MinTempo {
		t.Errorf("slow bpm = %d, want %d", bpm, MinTempo)
	}

	// 60ms gaps give 1000 BPM -> 240
	var fast TapTempo
	bpm, ok = tapSeries(&fast, time.Unix(0, 0), 60*ms, 60*ms, 60*ms)
	if !ok || bpm != MaxTempo {
		t.Errorf("fast bpm = %d, want %d", bpm, MaxTempo)
	}

	var same TapTempo
	bpm, ok = tapSeries(&same, time.Unix(0, 0), 0, 0, 0)
	if !ok || bpm != MaxTempo {
		t.Errorf("zero interval bpm = %d, want %d", bpm, MaxTempo)
	}
}
