package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"go-drum/sequencer"
)

// Waveform selects the oscillator shape
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// rampFloor is the target of exponential decays; exponential ramps cannot
// reach zero.
const rampFloor = 0.01

// Voice is a one-shot oscillator with exponential pitch and gain ramps.
type Voice struct {
	sr   beep.SampleRate
	wave Waveform
	rng  *rand.Rand

	freq, freqEnd float64 // Hz; freqEnd 0 disables the pitch ramp
	freqRamp      float64 // seconds
	gain          float64
	gainRamp      float64 // seconds to decay to rampFloor

	pos, total int
	phase      float64
}

// NewVoice creates a voice lasting d
func NewVoice(sr beep.SampleRate, wave Waveform, d time.Duration) *Voice {
	return &Voice{
		sr:    sr,
		wave:  wave,
		total: sr.N(d),
		gain:  1,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pitch sets a constant frequency
func (v *Voice) Pitch(hz float64) *Voice {
	v.freq = hz
	return v
}

// Sweep ramps the frequency exponentially from a to b over d
func (v *Voice) Sweep(a, b float64, d time.Duration) *Voice {
	v.freq, v.freqEnd, v.freqRamp = a, b, d.Seconds()
	return v
}

// Decay starts at gain and ramps exponentially to rampFloor over d
func (v *Voice) Decay(gain float64, d time.Duration) *Voice {
	v.gain, v.gainRamp = gain, d.Seconds()
	return v
}

func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for i := range samples {
		if v.pos >= v.total {
			break
		}
		t := float64(v.pos) / float64(v.sr)

		freq := v.freq
		if v.freqEnd > 0 {
			freq = expRamp(v.freq, v.freqEnd, v.freqRamp, t)
		}
		amp := expRamp(v.gain, rampFloor, v.gainRamp, t)

		sample := amp * v.osc()
		samples[i][0] = sample
		samples[i][1] = sample

		v.phase += freq / float64(v.sr)
		v.phase -= math.Floor(v.phase)
		v.pos++
		n++
	}
	return n, true
}

func (v *Voice) Err() error {
	return nil
}

func (v *Voice) osc() float64 {
	switch v.wave {
	case WaveSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(v.phase-0.5) - 1
	case WaveNoise:
		return v.rng.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * v.phase)
}

// expRamp follows a -> b exponentially over d seconds and holds b afterwards
func expRamp(a, b, d, t float64) float64 {
	if d <= 0 {
		return a
	}
	if t >= d {
		return b
	}
	if a <= 0 || b <= 0 {
		return a + (b-a)*t/d
	}
	return a * math.Pow(b/a, t/d)
}

// Synthesize returns the streamers for a synthesized hit. The webaudio kit
// uses it as a fallback when a sample is missing; 808 always uses it.
func Synthesize(sr beep.SampleRate, kit sequencer.Kit, inst sequencer.Instrument, velocity float64) []beep.Streamer {
	const length = 500 * time.Millisecond

	if kit == sequencer.Kit808 {
		switch inst {
		case sequencer.Kick:
			return []beep.Streamer{NewVoice(sr, WaveSine, length).
				Sweep(120, 30, 100*time.Millisecond).
				Decay(velocity, 400*time.Millisecond)}
		case sequencer.Snare:
			noise := NewVoice(sr, WaveNoise, 100*time.Millisecond).
				Decay(velocity*0.8, 150*time.Millisecond)
			tone := NewVoice(sr, WaveSine, length).
				Pitch(180).
				Decay(velocity*0.5, 150*time.Millisecond)
			return []beep.Streamer{noise, tone}
		case sequencer.HiHat:
			return []beep.Streamer{NewVoice(sr, WaveSquare, length).
				Pitch(8000).
				Decay(velocity*0.3, 100*time.Millisecond)}
		case sequencer.HiHatOpen:
			return []beep.Streamer{NewVoice(sr, WaveSquare, length).
				Pitch(6000).
				Decay(velocity*0.3, 300*time.Millisecond)}
		}
		return []beep.Streamer{NewVoice(sr, WaveTriangle, length).
			Pitch(200).
			Decay(velocity*0.5, 200*time.Millisecond)}
	}

	switch inst {
	case sequencer.Kick:
		return []beep.Streamer{NewVoice(sr, WaveSine, length).
			Sweep(150, rampFloor, length).
			Decay(velocity, length)}
	case sequencer.Snare:
		return []beep.Streamer{NewVoice(sr, WaveSine, length).
			Pitch(250).
			Decay(velocity*0.8, 200*time.Millisecond)}
	}
	return []beep.Streamer{NewVoice(sr, WaveSine, length).
		Pitch(200).
		Decay(velocity*0.5, 200*time.Millisecond)}
}
