package sequencer

import (
	"errors"
	"testing"
)

func TestStepCount(t *testing.T) {
	tests := []struct {
		ts   TimeSignature
		want int
	}{
		{2, 8},
		{3, 12},
		{4, 16},
		{5, 20},
		{1, 0},
		{6, 0},
	}
	for _, tt := range tests {
		if got := tt.ts.StepCount(); got != tt.want {
			t.Errorf("StepCount(%d) = %d, want %d", tt.ts, got, tt.want)
		}
	}
}

func TestToggleCycle(t *testing.T) {
	tests := []struct {
		name   string
		start  StepValue
		accent bool
		want   StepValue
	}{
		{"off plain", Off, false, Normal},
		{"off accent", Off, true, Accent},
		{"normal plain", Normal, false, Off},
		{"normal accent", Normal, true, Accent},
		{"accent plain", Accent, false, Off},
		{"accent accent", Accent, true, Off},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPattern(16)
			if err := p.Set(Snare, 3, tt.start); err != nil {
				t.Fatal(err)
			}
			got, err := p.Toggle(Snare, 3, tt.accent)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Toggle(%s, accent=%v) = %s, want %s", tt.start, tt.accent, got, tt.want)
			}
			if v, _ := p.Step(Snare, 3); v != got {
				t.Errorf("stored %s, returned %s", v, got)
			}
		})
	}
}

func TestToggleSequences(t *testing.T) {
	p := NewPattern(16)

	seq := []struct {
		accent bool
		want   StepValue
	}{
		{false, Normal}, {false, Off},
		{true, Accent}, {false, Off},
	}
	for i, s := range seq {
		got, _ := p.Toggle(Kick, 0, s.accent)
		if got != s.want {
			t.Fatalf("toggle %d: got %s, want %s", i, got, s.want)
		}
	}
}

func TestToggleErrors(t *testing.T) {
	p := NewPattern(16)

	if _, err := p.Toggle("Cowbell", 0, false); !errors.Is(err, ErrInvalidInstrument) {
		t.Errorf("unknown instrument: err = %v, want ErrInvalidInstrument", err)
	}
	if _, err := p.Toggle(Kick, 16, false); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("step 16: err = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := p.Toggle(Kick, -1, false); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("step -1: err = %v, want ErrIndexOutOfRange", err)
	}
	if err := p.Set(Kick, 0, StepValue(3)); !errors.Is(err, ErrInvalidStepValue) {
		t.Errorf("value 3: err = %v, want ErrInvalidStepValue", err)
	}
	if v, _ := p.Step(Kick, 0); v != Off {
		t.Errorf("rejected Set wrote %s", v)
	}

	st := NewState(DefaultSettings())
	st.Pattern.Set(Kick, 0, StepValue(7))
	if got, want := Encode(st), "4|120|webaudio"+allOff(16); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestResizePreservesPrefix(t *testing.T) {
	p := NewPattern(16)
	for _, inst := range Instruments {
		for s := 0; s < 16; s++ {
			p.Set(inst, s, Accent)
		}
	}

	p.Resize(8)
	if p.Steps() != 8 {
		t.Fatalf("steps = %d, want 8", p.Steps())
	}
	row, _ := p.Row(HiHat)
	for s, v := range row {
		if v != Accent {
			t.Errorf("after shrink step %d = %s, want accent", s, v)
		}
	}

	p.Resize(16)
	for _, inst := range Instruments {
		row, _ := p.Row(inst)
		if len(row) != 16 {
			t.Fatalf("%s len = %d, want 16", inst, len(row))
		}
		for s, v := range row {
			want := Accent
			if s >= 8 {
				want = Off
			}
			if v != want {
				t.Errorf("%s step %d = %s, want %s", inst, s, v, want)
			}
		}
	}
}

func TestResizeSameLengthIsIdempotent(t *testing.T) {
	p := NewPattern(12)
	p.Set(Ride, 11, Normal)
	before := p.Clone()

	p.Resize(12)
	p.Resize(12)
	if !p.Equal(before) {
		t.Error("resize to same length changed the pattern")
	}
}

func TestClearKeepsLength(t *testing.T) {
	p := NewPattern(20)
	p.Set(Tom1, 19, Accent)
	p.Set(Kick, 0, Normal)

	p.Clear()
	if p.Steps() != 20 {
		t.Errorf("steps = %d, want 20", p.Steps())
	}
	if !p.Equal(NewPattern(20)) {
		t.Error("pattern not all off after Clear")
	}
}

func TestRowIsCopy(t *testing.T) {
	p := NewPattern(8)
	row, _ := p.Row(Kick)
	row[0] = Accent
	if v, _ := p.Step(Kick, 0); v != Off {
		t.Error("mutating Row result changed the pattern")
	}
}

func TestVelocity(t *testing.T) {
	if Accent.Velocity() != 1.5 || Normal.Velocity() != 1.0 || Off.Velocity() != 0 {
		t.Errorf("velocities = %v %v %v", Accent.Velocity(), Normal.Velocity(), Off.Velocity())
	}
}

func TestClampTempo(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, 40}, {40, 40}, {120, 120}, {240, 240}, {999, 240},
	}
	for _, tt := range tests {
		if got := ClampTempo(tt.in); got != tt.want {
			t.Errorf("ClampTempo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCatalog(t *testing.T) {
	want := []Instrument{"Kick", "Snare", "HiHat", "HiHat Open", "Ride", "Tom 1", "Tom 2", "Floor Tom"}
	for i, inst := range Instruments {
		if inst != want[i] {
			t.Errorf("catalog[%d] = %q, want %q", i, inst, want[i])
		}
		if inst.Index() != i {
			t.Errorf("%q.Index() = %d, want %d", inst, inst.Index(), i)
		}
	}
	if Instrument("HiHat Foot").Valid() {
		t.Error("HiHat Foot is not part of the grid catalog")
	}
}
