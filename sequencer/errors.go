package sequencer

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFieldCount   = errors.New("malformed field count")
	ErrInvalidTimeSignature  = errors.New("invalid time signature")
	ErrInvalidTempo          = errors.New("invalid tempo")
	ErrInvalidKit            = errors.New("invalid kit")
	ErrPatternLengthMismatch = errors.New("pattern length mismatch")
	ErrInvalidStepCharacter  = errors.New("invalid step character")
	ErrInvalidInstrument     = errors.New("invalid instrument")
	ErrIndexOutOfRange       = errors.New("step index out of range")
	ErrInvalidStepValue      = errors.New("invalid step value")
)

// PatternLengthError reports a pattern field whose length does not match the
// step count of the decoded time signature.
type PatternLengthError struct {
	Instrument Instrument
	Expected   int
	Actual     int
}

func (e *PatternLengthError) Error() string {
	return fmt.Sprintf("pattern length mismatch for %s: expected %d, got %d", e.Instrument, e.Expected, e.Actual)
}

func (e *PatternLengthError) Unwrap() error { return ErrPatternLengthMismatch }

// StepCharError reports a pattern character outside '0', '1', '2'.
type StepCharError struct {
	Instrument Instrument
	Position   int
	Char       byte
}

func (e *StepCharError) Error() string {
	return fmt.Sprintf("invalid step character %q for %s at position %d", e.Char, e.Instrument, e.Position)
}

func (e *StepCharError) Unwrap() error { return ErrInvalidStepCharacter }
