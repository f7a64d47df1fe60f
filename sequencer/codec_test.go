package sequencer

import (
	"errors"
	"strings"
	"testing"
)

func allOff(steps int) string {
	return strings.Repeat("|"+strings.Repeat("0", steps), NumInstruments)
}

func TestEncodeEmpty(t *testing.T) {
	st := NewState(Settings{TimeSignature: 4, Tempo: 120, Kit: KitWebAudio})

	want := "4|120|webaudio" + allOff(16)
	if got := Encode(st); got != want {
		t.Errorf("Encode = %q\nwant %q", got, want)
	}

	back, err := Decode(want)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(st) {
		t.Error("decoded empty pattern differs")
	}
}

func TestEncodeTriState(t *testing.T) {
	st := NewState(Settings{TimeSignature: 2, Tempo: 90, Kit: Kit808})
	st.Pattern.Set(Kick, 0, Normal)
	st.Pattern.Set(Kick, 4, Accent)
	st.Pattern.Set(FloorTom, 7, Accent)

	want := "2|90|808|10002000" + strings.Repeat("|00000000", 6) + "|00000002"
	if got := Encode(st); got != want {
		t.Errorf("Encode = %q\nwant %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, ts := range TimeSignatures() {
		for _, kit := range Kits() {
			st := NewState(Settings{TimeSignature: ts, Tempo: 40 + int(ts)*37, Kit: kit})
			// deterministic fill touching all three values
			for i, inst := range Instruments {
				for s := 0; s < ts.StepCount(); s++ {
					st.Pattern.Set(inst, s, StepValue((i+s*int(ts))%3))
				}
			}

			got, err := Decode(Encode(st))
			if err != nil {
				t.Fatalf("%d/%s: decode: %v", ts, kit, err)
			}
			if !got.Equal(st) {
				t.Errorf("%d/%s: round trip mismatch\n got %s\nwant %s", ts, kit, Encode(got), Encode(st))
			}
		}
	}
}

func TestDecodeAcceptsUnclampedTempo(t *testing.T) {
	st, err := Decode("4|999|webaudio" + allOff(16))
	if err != nil {
		t.Fatal(err)
	}
	if st.Tempo != 999 {
		t.Errorf("tempo = %d, want 999", st.Tempo)
	}
}

func TestDecodeErrors(t *testing.T) {
	pat16 := allOff(16)
	bad15 := "|" + strings.Repeat("0", 15) + strings.Repeat("|"+strings.Repeat("0", 16), 7)
	badChar := "|" + strings.Repeat("0", 5) + "3" + strings.Repeat("0", 10) + strings.Repeat("|"+strings.Repeat("0", 16), 7)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too few fields", "4|120|webaudio|0000", ErrMalformedFieldCount},
		{"too many fields", "4|120|webaudio" + pat16 + "|0000000000000000", ErrMalformedFieldCount},
		{"empty", "", ErrMalformedFieldCount},
		{"time sig 6", "6|120|webaudio" + pat16, ErrInvalidTimeSignature},
		{"time sig text", "x|120|webaudio" + pat16, ErrInvalidTimeSignature},
		{"time sig padded", "04|120|webaudio" + pat16, ErrInvalidTimeSignature},
		{"tempo zero", "4|0|webaudio" + pat16, ErrInvalidTempo},
		{"tempo negative", "4|-5|webaudio" + pat16, ErrInvalidTempo},
		{"tempo text", "4|fast|webaudio" + pat16, ErrInvalidTempo},
		{"kit", "4|120|909" + pat16, ErrInvalidKit},
		{"length 15", "4|120|webaudio" + bad15, ErrPatternLengthMismatch},
		{"length for 3/4", "3|120|webaudio" + pat16, ErrPatternLengthMismatch},
		{"bad char", "4|120|webaudio" + badChar, ErrInvalidStepCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Decode(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if st != nil {
				t.Error("expected no state on error")
			}
		})
	}
}

func TestDecodeErrorDetail(t *testing.T) {
	bad15 := "|" + strings.Repeat("0", 15) + strings.Repeat("|"+strings.Repeat("0", 16), 7)
	_, err := Decode("4|120|webaudio" + bad15)

	var lenErr *PatternLengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("err = %v, want *PatternLengthError", err)
	}
	if lenErr.Instrument != Kick || lenErr.Expected != 16 || lenErr.Actual != 15 {
		t.Errorf("detail = %+v", lenErr)
	}

	snare := strings.Repeat("0", 7) + "x" + strings.Repeat("0", 8)
	text := "4|120|webaudio|" + strings.Repeat("0", 16) + "|" + snare + strings.Repeat("|"+strings.Repeat("0", 16), 6)
	_, err = Decode(text)

	var charErr *StepCharError
	if !errors.As(err, &charErr) {
		t.Fatalf("err = %v, want *StepCharError", err)
	}
	if charErr.Instrument != Snare || charErr.Position != 7 || charErr.Char != 'x' {
		t.Errorf("detail = %+v", charErr)
	}
}
