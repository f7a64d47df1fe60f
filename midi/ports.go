package midi

import (
	"errors"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortScanTimeout is returned when the MIDI backend does not answer.
var ErrPortScanTimeout = errors.New("midi port scan timed out")

// Ports holds the names of available MIDI ports
type Ports struct {
	In  []string
	Out []string
}

// ListPorts returns the current MIDI ports. The query runs in a goroutine
// with a timeout since CoreMIDI can hang.
func ListPorts(timeout time.Duration) (Ports, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	select {
	case result := <-ch:
		var p Ports
		for _, in := range result.inPorts {
			p.In = append(p.In, in.String())
		}
		for _, out := range result.outPorts {
			p.Out = append(p.Out, out.String())
		}
		return p, nil
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return Ports{}, ErrPortScanTimeout
	}
}

// CloseDriver releases the MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}
