package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"go-drum/debug"
	"go-drum/sequencer"
)

// SampleRate is the output rate of the mixer
const SampleRate = beep.SampleRate(44100)

// Player turns triggers into sound. Loaded samples back the webaudio kit;
// anything else is synthesized.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	samples map[sequencer.Instrument]*beep.Buffer
	failed  map[sequencer.Instrument]error
	loaded  bool
	started bool

	// play hands a finished streamer to the output. Replaced in tests.
	play func(s ...beep.Streamer)
}

// NewPlayer creates a player with no samples and no audio device. Call
// Start to open the speaker.
func NewPlayer() *Player {
	p := &Player{
		mixer:   &beep.Mixer{},
		samples: make(map[sequencer.Instrument]*beep.Buffer),
		failed:  make(map[sequencer.Instrument]error),
	}
	p.play = p.mix
	return p
}

// Start opens the speaker and begins streaming the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences everything still playing
func (p *Player) Close() {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

func (p *Player) mix(s ...beep.Streamer) {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}
	speaker.Lock()
	p.mixer.Add(s...)
	speaker.Unlock()
}

// LoadSamples loads every catalog sample. Failures are recorded, never
// returned: those instruments fall back to synthesis.
func (p *Player) LoadSamples(l SampleLoader) {
	for _, inst := range sequencer.Instruments {
		buf, err := l.Load(inst)
		p.mu.Lock()
		if err != nil {
			p.failed[inst] = err
			debug.Log("audio", "sample %s unavailable: %v", inst, err)
		} else {
			p.samples[inst] = buf
			delete(p.failed, inst)
		}
		p.mu.Unlock()
	}
	p.mu.Lock()
	p.loaded = true
	p.mu.Unlock()
}

// Loaded reports whether LoadSamples has finished
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Failed returns the instruments whose sample could not be loaded, in
// catalog order
func (p *Player) Failed() []sequencer.Instrument {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []sequencer.Instrument
	for _, inst := range sequencer.Instruments {
		if _, ok := p.failed[inst]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// HasSample reports whether inst plays from a loaded sample
func (p *Player) HasSample(inst sequencer.Instrument) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.samples[inst]
	return ok
}

// Trigger implements sequencer.TriggerSink
func (p *Player) Trigger(t sequencer.Trigger) {
	p.play(p.streamers(t)...)
}

func (p *Player) streamers(t sequencer.Trigger) []beep.Streamer {
	if t.Kit == sequencer.KitWebAudio {
		p.mu.Lock()
		buf, ok := p.samples[t.Instrument]
		p.mu.Unlock()
		if ok {
			// effects.Gain scales by 1+Gain
			return []beep.Streamer{&effects.Gain{
				Streamer: buf.Streamer(0, buf.Len()),
				Gain:     t.Velocity - 1,
			}}
		}
	}
	return Synthesize(SampleRate, t.Kit, t.Instrument, t.Velocity)
}
