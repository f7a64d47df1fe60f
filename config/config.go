package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-drum/sequencer"
)

// MIDIConfig defines the optional MIDI trigger output and tap input
type MIDIConfig struct {
	OutPort string `json:"outPort,omitempty"`
	Channel int    `json:"channel,omitempty"` // 1-16, default 10
	NoteMap string `json:"noteMap,omitempty"` // gm, rd8, tr8s
	InPort  string `json:"inPort,omitempty"`  // any note on taps tempo
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette            string `json:"palette,omitempty"` // GIMP .gpl file
	DisableMissingRows bool   `json:"disableMissingRows,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	TimeSignature int        `json:"timeSignature,omitempty"`
	Tempo         int        `json:"tempo,omitempty"`
	Kit           string     `json:"kit,omitempty"`
	SamplesDir    string     `json:"samplesDir,omitempty"`
	StorePath     string     `json:"storePath,omitempty"`
	Audio         bool       `json:"audio"`
	Debug         bool       `json:"debug,omitempty"`
	MIDI          MIDIConfig `json:"midi,omitempty"`
	UI            UIConfig   `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		TimeSignature: 4,
		Tempo:         sequencer.DefaultTempo,
		Kit:           string(sequencer.KitWebAudio),
		SamplesDir:    "samples",
		Audio:         true,
		MIDI: MIDIConfig{
			Channel: 10,
			NoteMap: sequencer.DefaultNoteMap,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-drum"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()
	if !sequencer.TimeSignature(c.TimeSignature).Valid() {
		c.TimeSignature = def.TimeSignature
	}
	if c.Tempo <= 0 {
		c.Tempo = def.Tempo
	} else {
		c.Tempo = sequencer.ClampTempo(c.Tempo)
	}
	if !sequencer.Kit(c.Kit).Valid() {
		c.Kit = def.Kit
	}
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		c.MIDI.Channel = def.MIDI.Channel
	}
	if _, ok := sequencer.NoteMaps[c.MIDI.NoteMap]; !ok {
		c.MIDI.NoteMap = def.MIDI.NoteMap
	}
}

// Settings returns the pattern settings a fresh session starts with
func (c *Config) Settings() sequencer.Settings {
	return sequencer.Settings{
		TimeSignature: sequencer.TimeSignature(c.TimeSignature),
		Tempo:         c.Tempo,
		Kit:           sequencer.Kit(c.Kit),
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
