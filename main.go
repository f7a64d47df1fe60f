package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-drum/audio"
	"go-drum/config"
	"go-drum/debug"
	"go-drum/midi"
	"go-drum/sequencer"
	"go-drum/store"
	"go-drum/theme"
	"go-drum/tui"
)

func main() {
	var (
		shared     = flag.String("p", "", "share string or share link to load at startup")
		importPath = flag.String("import", "", "pattern file to load at startup")
		configPath = flag.String("config", "", "config file (default ~/.config/go-drum/config.json)")
		shareBase  = flag.String("share-base", "", "base URL for share links")
		debugLog   = flag.Bool("debug", false, "write debug log to ~/.config/go-drum/debug.log")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if *debugLog || cfg.Debug {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v, using built-in\n", err)
		palette = theme.Plasma()
	}
	th := theme.New(palette)

	engine := sequencer.NewEngine(cfg.Settings(), sequencer.TickerScheduler{})

	// Startup pattern: share link wins over file import
	switch {
	case *shared != "":
		if err := engine.Load(sequencer.ParseShareURL(*shared)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid pattern: %v\n", err)
		}
	case *importPath != "":
		if err := engine.ImportFile(*importPath); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	var samples tui.SampleStatus
	if cfg.Audio {
		player := audio.NewPlayer()
		if err := player.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio: %v\n", err)
		} else {
			defer player.Close()
			engine.AddSink(player)
			samples = player
			go player.LoadSamples(audio.DirLoader{Dir: cfg.SamplesDir})
		}
	}

	if cfg.MIDI.OutPort != "" {
		out, err := midi.OpenOutput(cfg.MIDI.OutPort, cfg.MIDI.Channel, sequencer.GetNoteMap(cfg.MIDI.NoteMap))
		if err != nil {
			fmt.Fprintf(os.Stderr, "midi out: %v\n", err)
		} else {
			engine.AddSink(out)
		}
	}
	if cfg.MIDI.OutPort != "" || cfg.MIDI.InPort != "" {
		defer midi.CloseDriver()
	}

	if cfg.MIDI.InPort != "" {
		in, err := midi.OpenInput(cfg.MIDI.InPort)
		if err != nil {
			fmt.Fprintf(os.Stderr, "midi in: %v\n", err)
		} else {
			defer in.Close()
			// Any note on an input taps the tempo
			go func() {
				for range in.NoteEvents() {
					engine.Tap()
				}
			}()
		}
	}

	var library *sequencer.Library
	storePath := cfg.StorePath
	if storePath == "" {
		storePath, err = store.DefaultPath()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
	} else {
		library = sequencer.NewLibrary(store.NewFile(storePath))
	}

	m := tui.NewModel(engine, th, tui.Options{
		Library:            library,
		Samples:            samples,
		DisableMissingRows: cfg.UI.DisableMissingRows,
		ShareBase:          *shareBase,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
