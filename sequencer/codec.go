package sequencer

import (
	"fmt"
	"strconv"
	"strings"
)

// Share string layout:
//
//	timeSig|tempo|kit|kick|snare|hihat|hihat open|ride|tom 1|tom 2|floor tom
//
// Each pattern field has one character per step: '0' off, '1' normal, '2' accent.
const (
	fieldSep     = "|"
	headerFields = 3
	totalFields  = headerFields + NumInstruments
)

var stepChars = [...]byte{Off: '0', Normal: '1', Accent: '2'}

// Encode serializes s to its share string.
func Encode(s *State) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(s.TimeSignature)))
	b.WriteString(fieldSep)
	b.WriteString(strconv.Itoa(s.Tempo))
	b.WriteString(fieldSep)
	b.WriteString(string(s.Kit))
	for _, row := range s.Pattern.rows {
		b.WriteString(fieldSep)
		for _, v := range row {
			b.WriteByte(stepChars[v])
		}
	}
	return b.String()
}

// Decode parses a share string. Validation is all-or-nothing: on error no
// state is returned.
func Decode(text string) (*State, error) {
	parts := strings.Split(text, fieldSep)
	if len(parts) != totalFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedFieldCount, totalFields, len(parts))
	}

	ts, err := parseTimeSignature(parts[0])
	if err != nil {
		return nil, err
	}

	tempo, err := strconv.Atoi(parts[1])
	if err != nil || tempo <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTempo, parts[1])
	}

	kit := Kit(parts[2])
	if !kit.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKit, parts[2])
	}

	steps := ts.StepCount()
	pat := NewPattern(steps)
	for i, field := range parts[headerFields:] {
		inst := Instruments[i]
		if len(field) != steps {
			return nil, &PatternLengthError{Instrument: inst, Expected: steps, Actual: len(field)}
		}
		for pos := 0; pos < len(field); pos++ {
			switch field[pos] {
			case '0':
				pat.rows[i][pos] = Off
			case '1':
				pat.rows[i][pos] = Normal
			case '2':
				pat.rows[i][pos] = Accent
			default:
				return nil, &StepCharError{Instrument: inst, Position: pos, Char: field[pos]}
			}
		}
	}

	return &State{
		Settings: Settings{TimeSignature: ts, Tempo: tempo, Kit: kit},
		Pattern:  pat,
	}, nil
}

func parseTimeSignature(field string) (TimeSignature, error) {
	// Only the exact strings "2".."5" are accepted; Atoi would also take "+4" or "04".
	if len(field) != 1 || field[0] < '2' || field[0] > '5' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSignature, field)
	}
	return TimeSignature(field[0] - '0'), nil
}
