package midi

import (
	"fmt"
	"math"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-drum/debug"
	"go-drum/sequencer"
)

// An accent (1.5) maps to full MIDI velocity
const velocityScale = 127 / 1.5

// DefaultGate is how long a note is held before its NoteOff
const DefaultGate = 50 * time.Millisecond

// Output sends triggers to a MIDI port as drum notes.
type Output struct {
	mu      sync.Mutex
	send    func(gomidi.Message) error
	channel uint8 // 0-15
	notes   sequencer.NoteMap
	gate    time.Duration

	after func(d time.Duration, f func()) // schedules NoteOff
}

// OpenOutput finds the named output port and opens it. channel is 1-16.
func OpenOutput(portName string, channel int, notes sequencer.NoteMap) (*Output, error) {
	port, err := gomidi.FindOutPort(portName)
	if err != nil {
		return nil, fmt.Errorf("find output %q: %w", portName, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("failed to open port: %w", err)
	}
	return NewOutput(send, channel, notes), nil
}

// NewOutput wraps a send func. channel is 1-16 and is clamped.
func NewOutput(send func(gomidi.Message) error, channel int, notes sequencer.NoteMap) *Output {
	channel = min(max(channel, 1), 16)
	return &Output{
		send:    send,
		channel: uint8(channel - 1),
		notes:   notes,
		gate:    DefaultGate,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Velocity converts a trigger velocity to MIDI 1-127
func Velocity(v float64) uint8 {
	vel := math.Round(v * velocityScale)
	return uint8(min(max(vel, 1), 127))
}

// Trigger implements sequencer.TriggerSink
func (o *Output) Trigger(t sequencer.Trigger) {
	note := o.notes.Note(t.Instrument)
	if note == 0 {
		return
	}

	o.mu.Lock()
	err := o.send(gomidi.NoteOn(o.channel, note, Velocity(t.Velocity)))
	o.mu.Unlock()
	if err != nil {
		debug.Log("midi", "note on %d: %v", note, err)
		return
	}

	o.after(o.gate, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.send(gomidi.NoteOff(o.channel, note))
	})
}
