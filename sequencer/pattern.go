package sequencer

import "fmt"

// StepValue is the tri-state content of one grid cell.
type StepValue uint8

const (
	Off StepValue = iota
	Normal
	Accent
)

// Velocity returns the playback gain for a step: 1.5 for accents, 1.0 for
// normal hits and 0 for Off.
func (v StepValue) Velocity() float64 {
	switch v {
	case Accent:
		return 1.5
	case Normal:
		return 1.0
	}
	return 0
}

func (v StepValue) String() string {
	switch v {
	case Off:
		return "off"
	case Normal:
		return "normal"
	case Accent:
		return "accent"
	}
	return fmt.Sprintf("StepValue(%d)", uint8(v))
}

// Settings are the global pattern parameters.
type Settings struct {
	TimeSignature TimeSignature
	Tempo         int
	Kit           Kit
}

// DefaultSettings is 4/4 at 120 BPM on the webaudio kit
func DefaultSettings() Settings {
	return Settings{TimeSignature: 4, Tempo: DefaultTempo, Kit: KitWebAudio}
}

// Pattern holds one step row per catalog instrument. Every row has the same
// length.
type Pattern struct {
	rows [NumInstruments][]StepValue
}

// NewPattern returns an all-Off pattern with the given step count
func NewPattern(steps int) *Pattern {
	p := &Pattern{}
	for i := range p.rows {
		p.rows[i] = make([]StepValue, steps)
	}
	return p
}

// Steps returns the step count shared by every row
func (p *Pattern) Steps() int {
	return len(p.rows[0])
}

// Row returns a copy of the steps for inst.
func (p *Pattern) Row(inst Instrument) ([]StepValue, error) {
	idx := inst.Index()
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInstrument, inst)
	}
	return append([]StepValue(nil), p.rows[idx]...), nil
}

// Step returns the value at one cell.
func (p *Pattern) Step(inst Instrument, step int) (StepValue, error) {
	idx, err := p.check(inst, step)
	if err != nil {
		return Off, err
	}
	return p.rows[idx][step], nil
}

// Set writes v at one cell without cycling
func (p *Pattern) Set(inst Instrument, step int, v StepValue) error {
	idx, err := p.check(inst, step)
	if err != nil {
		return err
	}
	if v > Accent {
		return fmt.Errorf("%w: %d", ErrInvalidStepValue, v)
	}
	p.rows[idx][step] = v
	return nil
}

// Toggle cycles one cell and returns its new value:
//
//	Off    -> Accent if accent, else Normal
//	Normal -> Accent if accent
//	else   -> Off
func (p *Pattern) Toggle(inst Instrument, step int, accent bool) (StepValue, error) {
	idx, err := p.check(inst, step)
	if err != nil {
		return Off, err
	}
	cur := p.rows[idx][step]
	next := Off
	switch {
	case cur == Off && accent:
		next = Accent
	case cur == Off:
		next = Normal
	case cur == Normal && accent:
		next = Accent
	}
	p.rows[idx][step] = next
	return next, nil
}

// Resize truncates or Off-pads every row to steps, keeping the common prefix.
func (p *Pattern) Resize(steps int) {
	if steps < 0 {
		steps = 0
	}
	for i, row := range p.rows {
		if len(row) == steps {
			continue
		}
		next := make([]StepValue, steps)
		copy(next, row)
		p.rows[i] = next
	}
}

// Clear turns every cell Off, keeping the step count
func (p *Pattern) Clear() {
	for _, row := range p.rows {
		clear(row)
	}
}

// Clone returns a deep copy
func (p *Pattern) Clone() *Pattern {
	c := &Pattern{}
	for i, row := range p.rows {
		c.rows[i] = append(make([]StepValue, 0, len(row)), row...)
	}
	return c
}

// Equal reports whether both patterns have identical cells. o must not be nil.
func (p *Pattern) Equal(o *Pattern) bool {
	for i := range p.rows {
		if len(p.rows[i]) != len(o.rows[i]) {
			return false
		}
		for s := range p.rows[i] {
			if p.rows[i][s] != o.rows[i][s] {
				return false
			}
		}
	}
	return true
}

func (p *Pattern) check(inst Instrument, step int) (int, error) {
	idx := inst.Index()
	if idx < 0 {
		return -1, fmt.Errorf("%w: %q", ErrInvalidInstrument, inst)
	}
	if step < 0 || step >= len(p.rows[idx]) {
		return -1, fmt.Errorf("%w: %d (steps %d)", ErrIndexOutOfRange, step, len(p.rows[idx]))
	}
	return idx, nil
}

// State is Settings plus Pattern: the unit of sharing and persistence.
type State struct {
	Settings
	Pattern *Pattern
}

// NewState returns an all-Off state sized for s.TimeSignature
func NewState(s Settings) *State {
	return &State{Settings: s, Pattern: NewPattern(s.TimeSignature.StepCount())}
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	return &State{Settings: s.Settings, Pattern: s.Pattern.Clone()}
}

// Equal compares settings and every cell
func (s *State) Equal(o *State) bool {
	return s.Settings == o.Settings && s.Pattern.Equal(o.Pattern)
}
