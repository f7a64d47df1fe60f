package sequencer

import (
	"fmt"
	"sync"
	"time"

	"go-drum/debug"
)

// TriggerSink receives triggers from playback and from cell previews.
type TriggerSink interface {
	Trigger(t Trigger)
}

// SinkFunc adapts a function to TriggerSink
type SinkFunc func(Trigger)

func (f SinkFunc) Trigger(t Trigger) { f(t) }

// Engine owns the pattern, transport and tap tempo estimator. All state is
// guarded by one mutex so scheduler ticks and user edits may interleave
// freely.
type Engine struct {
	mu        sync.Mutex
	state     *State
	transport *Transport
	tap       TapTempo
	sinks     []TriggerSink
	now       func() time.Time

	// Notify UI of updates
	UpdateChan chan struct{}
}

// NewEngine returns a stopped engine holding an all-Off pattern for s.
// Invalid settings fall back to DefaultSettings field by field.
func NewEngine(s Settings, sched Scheduler) *Engine {
	e := &Engine{
		state:      NewState(normalize(s)),
		now:        time.Now,
		UpdateChan: make(chan struct{}, 1),
	}
	e.transport = NewTransport(sched, e.onTick)
	return e
}

func normalize(s Settings) Settings {
	def := DefaultSettings()
	if !s.TimeSignature.Valid() {
		s.TimeSignature = def.TimeSignature
	}
	if s.Tempo <= 0 {
		s.Tempo = def.Tempo
	}
	if !s.Kit.Valid() {
		s.Kit = def.Kit
	}
	return s
}

// AddSink registers a trigger receiver. Call before Play.
func (e *Engine) AddSink(s TriggerSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// onTick is the scheduler callback
func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	trigs := e.transport.Tick(gen, e.state)
	ticked := e.transport.LastPlayed()
	sinks := e.sinks
	e.mu.Unlock()

	if ticked < 0 {
		return
	}
	debug.LogEvery(64, "tick", "step=%d triggers=%d", ticked, len(trigs))
	e.dispatch(sinks, trigs)
	e.notifyUpdate()
}

func (e *Engine) dispatch(sinks []TriggerSink, trigs []Trigger) {
	for _, t := range trigs {
		for _, s := range sinks {
			s.Trigger(t)
		}
	}
}

// notifyUpdate signals listeners without blocking
func (e *Engine) notifyUpdate() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Settings: e.state.Settings,
		Pattern:  e.state.Pattern.Clone(),
		Step:     e.transport.Step(),
		Playhead: e.transport.LastPlayed(),
		Playing:  e.transport.Running(),
		Taps:     e.tap.Count(),
	}
}

// State returns a deep copy of the pattern state
func (e *Engine) State() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Encode returns the share string for the current state
func (e *Engine) Encode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Encode(e.state)
}

// Toggle cycles one cell. A non-Off result is previewed on every sink.
func (e *Engine) Toggle(inst Instrument, step int, accent bool) (StepValue, error) {
	e.mu.Lock()
	v, err := e.state.Pattern.Toggle(inst, step, accent)
	kit := e.state.Kit
	sinks := e.sinks
	e.mu.Unlock()
	if err != nil {
		return Off, err
	}

	if v != Off {
		e.dispatch(sinks, []Trigger{{Instrument: inst, Velocity: v.Velocity(), Kit: kit}})
	}
	e.notifyUpdate()
	return v, nil
}

// Clear turns every cell Off
func (e *Engine) Clear() {
	e.mu.Lock()
	e.state.Pattern.Clear()
	e.mu.Unlock()
	e.notifyUpdate()
}

// Play starts the transport from step 0. No-op while running.
func (e *Engine) Play() {
	e.mu.Lock()
	e.transport.Start(e.state.Tempo)
	e.mu.Unlock()
	e.notifyUpdate()
}

// Stop halts the transport and rewinds. No-op while stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.transport.Stop()
	e.mu.Unlock()
	e.notifyUpdate()
}

// TogglePlay starts a stopped transport or stops a running one
func (e *Engine) TogglePlay() {
	e.mu.Lock()
	if !e.transport.Start(e.state.Tempo) {
		e.transport.Stop()
	}
	e.mu.Unlock()
	e.notifyUpdate()
}

// Playing reports whether the transport is running
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport.Running()
}

// SetTempo clamps bpm to [MinTempo, MaxTempo], applies it and restarts a
// running transport. Returns the applied tempo.
func (e *Engine) SetTempo(bpm int) int {
	bpm = ClampTempo(bpm)
	e.mu.Lock()
	e.setTempoLocked(bpm)
	e.mu.Unlock()
	e.notifyUpdate()
	return bpm
}

func (e *Engine) setTempoLocked(bpm int) {
	e.state.Tempo = bpm
	e.transport.Restart(bpm)
}

// SetTimeSignature resizes the pattern and restarts a running transport.
func (e *Engine) SetTimeSignature(ts TimeSignature) error {
	if !ts.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTimeSignature, ts)
	}
	e.mu.Lock()
	e.state.TimeSignature = ts
	e.state.Pattern.Resize(ts.StepCount())
	e.transport.Restart(e.state.Tempo)
	e.mu.Unlock()
	e.notifyUpdate()
	return nil
}

// SetKit selects the sound strategy used by subsequent triggers
func (e *Engine) SetKit(k Kit) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKit, k)
	}
	e.mu.Lock()
	e.state.Kit = k
	e.mu.Unlock()
	e.notifyUpdate()
	return nil
}

// Tap feeds the tap tempo estimator with the current time. When an estimate
// is produced it becomes the tempo.
func (e *Engine) Tap() (int, bool) {
	return e.TapAt(e.now())
}

// TapAt is Tap with an explicit timestamp
func (e *Engine) TapAt(now time.Time) (int, bool) {
	e.mu.Lock()
	bpm, ok := e.tap.Tap(now)
	if ok {
		e.setTempoLocked(bpm)
		debug.Log("tap", "estimate %d bpm", bpm)
	}
	e.mu.Unlock()
	e.notifyUpdate()
	return bpm, ok
}

// Load decodes text and, only if it is valid, replaces the whole state. A
// running transport restarts at the loaded tempo.
func (e *Engine) Load(text string) error {
	st, err := Decode(text)
	if err != nil {
		debug.Log("codec", "decode rejected: %v", err)
		return err
	}
	e.Replace(st)
	return nil
}

// Replace installs st wholesale
func (e *Engine) Replace(st *State) {
	st = st.Clone()
	e.mu.Lock()
	e.state = st
	e.transport.Restart(st.Tempo)
	e.mu.Unlock()
	debug.Log("engine", "state replaced: %d/4 %d bpm kit=%s", st.TimeSignature, st.Tempo, st.Kit)
	e.notifyUpdate()
}
