package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// NoteEvent is sent when a note is played on an input device
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// Input listens to a MIDI input port (pad controller, keyboard, foot switch)
type Input struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	noteChan chan NoteEvent
}

// OpenInput finds the named input port and starts listening
func OpenInput(portName string) (*Input, error) {
	port, err := gomidi.FindInPort(portName)
	if err != nil {
		return nil, fmt.Errorf("find input %q: %w", portName, err)
	}
	return NewInput(portName, port)
}

// NewInput starts listening on inPort
func NewInput(id string, inPort drivers.In) (*Input, error) {
	in := &Input{
		id:       id,
		inPort:   inPort,
		noteChan: make(chan NoteEvent, 32),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			in.handle(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		in.stopFunc = stop
	}

	return in, nil
}

func (in *Input) handle(msg gomidi.Message) {
	var channel, note, velocity uint8
	if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
		select {
		case in.noteChan <- NoteEvent{Note: note, Velocity: velocity, Channel: channel}:
		default:
			// Drop if channel full
		}
	}
}

func (in *Input) ID() string {
	return in.id
}

// NoteEvents delivers note-on events; closed by Close
func (in *Input) NoteEvents() <-chan NoteEvent {
	return in.noteChan
}

func (in *Input) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
	}
	close(in.noteChan)
	return nil
}
