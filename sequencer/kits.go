package sequencer

// NoteMap maps the eight catalog instruments to MIDI drum notes, for
// driving external drum machines.
type NoteMap struct {
	Name  string
	Notes [NumInstruments]uint8
}

// Catalog order: Kick, Snare, HiHat, HiHat Open, Ride, Tom 1, Tom 2, Floor Tom

// NoteMaps contains all available MIDI note mappings
var NoteMaps = map[string]NoteMap{
	"gm": {
		Name:  "General MIDI",
		Notes: [NumInstruments]uint8{36, 38, 42, 46, 51, 48, 45, 41},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: [NumInstruments]uint8{
			36,
			40, // RD-8 uses 40, not 38!
			42,
			46,
			51,
			50, // HT
			48, // MT
			45, // LT
		},
	},
	"tr8s": {
		Name:  "Roland TR-8S",
		Notes: [NumInstruments]uint8{36, 38, 42, 46, 51, 50, 47, 43},
	},
}

// DefaultNoteMap is the default mapping name
const DefaultNoteMap = "gm"

// NoteMapNames returns the available mapping names
func NoteMapNames() []string {
	return []string{"gm", "rd8", "tr8s"}
}

// GetNoteMap returns a mapping by name, defaulting to GM if not found
func GetNoteMap(name string) NoteMap {
	if m, ok := NoteMaps[name]; ok {
		return m
	}
	return NoteMaps[DefaultNoteMap]
}

// Note returns the MIDI note for inst, or 0 for an unknown instrument
func (m NoteMap) Note(inst Instrument) uint8 {
	idx := inst.Index()
	if idx < 0 {
		return 0
	}
	return m.Notes[idx]
}
