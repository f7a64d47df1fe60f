package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"

	"go-drum/sequencer"
)

// SampleFiles maps each instrument to its sample file name
var SampleFiles = map[sequencer.Instrument]string{
	sequencer.Kick:      "bass.mp3",
	sequencer.Snare:     "snare-drum.mp3",
	sequencer.HiHat:     "hihat.mp3",
	sequencer.HiHatOpen: "hihat-open.mp3",
	sequencer.Ride:      "ride.mp3",
	sequencer.Tom1:      "tom1.mp3",
	sequencer.Tom2:      "tom2.mp3",
	sequencer.FloorTom:  "floor-tom.mp3",
}

// SampleLoader returns a decoded sample for an instrument.
type SampleLoader interface {
	Load(inst sequencer.Instrument) (*beep.Buffer, error)
}

// DirLoader decodes mp3 samples from a directory, resampling to Rate.
type DirLoader struct {
	Dir  string
	Rate beep.SampleRate
}

func (l DirLoader) Load(inst sequencer.Instrument) (*beep.Buffer, error) {
	name, ok := SampleFiles[inst]
	if !ok {
		return nil, fmt.Errorf("no sample for %q", inst)
	}
	path := filepath.Join(l.Dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// mp3.Decode takes ownership of f; closing the streamer closes the file
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	rate := l.Rate
	if rate == 0 {
		rate = SampleRate
	}
	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}
