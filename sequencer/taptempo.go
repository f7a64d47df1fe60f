package sequencer

import (
	"math"
	"time"
)

const (
	tapWindow   = 4               // taps averaged
	tapResetGap = 2 * time.Second // longer pause starts a new measurement
)

// TapTempo estimates BPM from tap timestamps.
type TapTempo struct {
	last  time.Time
	times []time.Time
	count int
}

// Tap records a tap at now. Once four taps have arrived without a pause
// longer than two seconds it returns the clamped BPM of the last four.
func (t *TapTempo) Tap(now time.Time) (bpm int, ok bool) {
	if t.last.IsZero() || now.Sub(t.last) > tapResetGap {
		t.last = now
		t.times = append(t.times[:0], now)
		t.count = 1
		return 0, false
	}

	t.last = now
	t.count++
	t.times = append(t.times, now)
	if len(t.times) > tapWindow {
		t.times = t.times[len(t.times)-tapWindow:]
	}
	if t.count < tapWindow {
		return 0, false
	}

	total := t.times[len(t.times)-1].Sub(t.times[0])
	avgMs := float64(total) / float64(time.Millisecond) / float64(len(t.times)-1)
	if avgMs <= 0 {
		return MaxTempo, true
	}
	return ClampTempo(int(math.Round(60000 / avgMs))), true
}

// Count returns the taps in the current measurement
func (t *TapTempo) Count() int {
	return t.count
}

// Reset forgets all taps
func (t *TapTempo) Reset() {
	*t = TapTempo{}
}
