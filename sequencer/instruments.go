package sequencer

// Instrument is one row of the drum grid.
type Instrument string

const (
	Kick      Instrument = "Kick"
	Snare     Instrument = "Snare"
	HiHat     Instrument = "HiHat"
	HiHatOpen Instrument = "HiHat Open"
	Ride      Instrument = "Ride"
	Tom1      Instrument = "Tom 1"
	Tom2      Instrument = "Tom 2"
	FloorTom  Instrument = "Floor Tom"
)

// Instruments is the fixed catalog. Order defines grid rows and codec columns.
var Instruments = [NumInstruments]Instrument{
	Kick, Snare, HiHat, HiHatOpen, Ride, Tom1, Tom2, FloorTom,
}

const NumInstruments = 8

// Index returns the catalog row of inst, or -1 if it is not in the catalog.
func (inst Instrument) Index() int {
	for i, c := range Instruments {
		if c == inst {
			return i
		}
	}
	return -1
}

// Valid reports whether inst belongs to the catalog
func (inst Instrument) Valid() bool {
	return inst.Index() >= 0
}

// Kit selects the sound generation strategy.
type Kit string

const (
	KitWebAudio Kit = "webaudio" // samples with synthesized fallback
	Kit808      Kit = "808"      // fully synthesized
)

// Kits lists the selectable kits in UI order
func Kits() []Kit {
	return []Kit{KitWebAudio, Kit808}
}

// Valid reports whether k is a known kit
func (k Kit) Valid() bool {
	return k == KitWebAudio || k == Kit808
}

// TimeSignature is the number of beats per bar (2/4 .. 5/4).
type TimeSignature int

// TimeSignatures lists the supported signatures in UI order
func TimeSignatures() []TimeSignature {
	return []TimeSignature{2, 3, 4, 5}
}

// Valid reports whether ts is one of 2, 3, 4 or 5
func (ts TimeSignature) Valid() bool {
	return ts >= 2 && ts <= 5
}

// StepCount returns the number of 16th steps in one bar: 2→8, 3→12, 4→16, 5→20.
// Returns 0 for an unsupported signature.
func (ts TimeSignature) StepCount() int {
	if !ts.Valid() {
		return 0
	}
	return int(ts) * 4
}

// Tempo bounds applied to user tempo entry and tap tempo
const (
	MinTempo     = 40
	MaxTempo     = 240
	DefaultTempo = 120
)

// ClampTempo limits bpm to [MinTempo, MaxTempo]
func ClampTempo(bpm int) int {
	return min(max(bpm, MinTempo), MaxTempo)
}
