package sequencer

// Snapshot is a read-only copy of engine state for renderers.
type Snapshot struct {
	Settings
	Pattern  *Pattern
	Step     int // next step to play
	Playhead int // step played by the last tick, -1 before the first tick
	Playing  bool
	Taps     int // taps in the current tap-tempo measurement
}
