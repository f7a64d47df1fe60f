package sequencer

import (
	"time"

	"go-drum/debug"
)

// Trigger asks the audio engine to play one instrument.
type Trigger struct {
	Instrument Instrument
	Velocity   float64 // 1.0 normal, 1.5 accent
	Kit        Kit
}

// StepInterval is the tick period for tempo: one 16th note, independent of
// the time signature. Tempo is clamped to [MinTempo, MaxTempo] here so a
// decoded tempo of any size still plays.
func StepInterval(tempo int) time.Duration {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	tempo = ClampTempo(tempo)
	return time.Duration(float64(time.Minute) / float64(tempo) / 4)
}

// Transport is the play/stop state machine. It is not safe for concurrent
// use; Engine serializes access.
type Transport struct {
	sched   Scheduler
	fire    func(gen uint64)
	running bool
	step    int
	last    int
	gen     uint64 // bumped on every (re)schedule so stale ticks can be dropped
	cancel  func()
}

// NewTransport returns a stopped transport. fire is handed to the scheduler
// with the generation of the schedule that produced the tick.
func NewTransport(sched Scheduler, fire func(gen uint64)) *Transport {
	if sched == nil {
		sched = TickerScheduler{}
	}
	if fire == nil {
		fire = func(uint64) {}
	}
	return &Transport{sched: sched, fire: fire, last: -1}
}

// Running reports whether ticks are being scheduled
func (t *Transport) Running() bool { return t.running }

// Step is the next step to be played
func (t *Transport) Step() int { return t.step }

// LastPlayed is the step played by the most recent tick, or -1
func (t *Transport) LastPlayed() int { return t.last }

// Generation identifies the active schedule
func (t *Transport) Generation() uint64 { return t.gen }

// Start moves Stopped to Running from step 0. It returns false if already running.
func (t *Transport) Start(tempo int) bool {
	if t.running {
		return false
	}
	t.running = true
	t.schedule(tempo)
	debug.Log("transport", "start tempo=%d interval=%s", tempo, StepInterval(tempo))
	return true
}

// Stop cancels ticking and rewinds to step 0. It returns false if already stopped.
func (t *Transport) Stop() bool {
	if !t.running {
		return false
	}
	t.running = false
	t.cancelActive()
	t.step = 0
	t.last = -1
	t.gen++
	debug.Log("transport", "stop")
	return true
}

// Restart replaces the active schedule with one at the new tempo and rewinds
// to step 0. No-op while stopped.
func (t *Transport) Restart(tempo int) {
	if !t.running {
		return
	}
	t.schedule(tempo)
	debug.Log("transport", "restart tempo=%d", tempo)
}

// Tick plays the current step of st and advances. Ticks from a stale
// schedule or while stopped are ignored.
func (t *Transport) Tick(gen uint64, st *State) []Trigger {
	if !t.running || gen != t.gen {
		return nil
	}
	steps := st.Pattern.Steps()
	if steps == 0 {
		return nil
	}
	if t.step >= steps {
		t.step = 0
	}

	var trigs []Trigger
	for i, row := range st.Pattern.rows {
		if v := row[t.step]; v != Off {
			trigs = append(trigs, Trigger{
				Instrument: Instruments[i],
				Velocity:   v.Velocity(),
				Kit:        st.Kit,
			})
		}
	}
	t.last = t.step
	t.step = (t.step + 1) % steps
	return trigs
}

func (t *Transport) schedule(tempo int) {
	t.cancelActive()
	t.step = 0
	t.last = -1
	t.gen++
	gen := t.gen
	t.cancel = t.sched.Repeat(StepInterval(tempo), func() { t.fire(gen) })
}

func (t *Transport) cancelActive() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
