package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-drum/midi"
	"go-drum/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "encode-empty":
		err = encodeEmpty(os.Args[2:])
	case "validate":
		err = validate(os.Args[2:])
	case "url":
		err = shareURL(os.Args[2:])
	case "ports":
		err = listPorts()
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Pattern tools")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  encode-empty [ts] [tempo] [kit]  - Print an empty pattern")
	fmt.Println("  validate <string|file|link>      - Decode and describe a pattern")
	fmt.Println("  url <base> <string|file>         - Print a share link")
	fmt.Println("  ports                            - List MIDI ports")
}

func encodeEmpty(args []string) error {
	s := sequencer.DefaultSettings()
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &s.TimeSignature); err != nil || !s.TimeSignature.Valid() {
			return fmt.Errorf("%w: %s", sequencer.ErrInvalidTimeSignature, args[0])
		}
	}
	if len(args) > 1 {
		if _, err := fmt.Sscanf(args[1], "%d", &s.Tempo); err != nil || s.Tempo <= 0 {
			return fmt.Errorf("%w: %s", sequencer.ErrInvalidTempo, args[1])
		}
	}
	if len(args) > 2 {
		s.Kit = sequencer.Kit(args[2])
		if !s.Kit.Valid() {
			return fmt.Errorf("%w: %s", sequencer.ErrInvalidKit, args[2])
		}
	}
	fmt.Println(sequencer.Encode(sequencer.NewState(s)))
	return nil
}

// readPattern accepts a share string, a share link, or a path to a file
// containing either
func readPattern(arg string) (string, error) {
	if !strings.Contains(arg, "|") {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", err
		}
		arg = string(data)
	}
	return sequencer.ParseShareURL(arg), nil
}

func validate(args []string) error {
	if len(args) != 1 {
		return errors.New("validate needs one argument")
	}
	text, err := readPattern(args[0])
	if err != nil {
		return err
	}
	st, err := sequencer.Decode(text)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	fmt.Printf("%d/4  %d bpm  kit %s  %d steps\n", st.TimeSignature, st.Tempo, st.Kit, st.Pattern.Steps())
	for _, inst := range sequencer.Instruments {
		row, _ := st.Pattern.Row(inst)
		var line strings.Builder
		for i, v := range row {
			if i > 0 && i%4 == 0 {
				line.WriteByte(' ')
			}
			switch v {
			case sequencer.Accent:
				line.WriteByte('X')
			case sequencer.Normal:
				line.WriteByte('x')
			default:
				line.WriteByte('.')
			}
		}
		fmt.Printf("  %-10s %s\n", inst, line.String())
	}
	return nil
}

func shareURL(args []string) error {
	if len(args) != 2 {
		return errors.New("url needs a base and a pattern")
	}
	text, err := readPattern(args[1])
	if err != nil {
		return err
	}
	st, err := sequencer.Decode(text)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	fmt.Println(sequencer.ShareURL(args[0], sequencer.Encode(st)))
	return nil
}

func listPorts() error {
	defer midi.CloseDriver()

	fmt.Println("(waiting up to 3 seconds...)")
	ports, err := midi.ListPorts(3 * time.Second)
	if err != nil {
		if errors.Is(err, midi.ErrPortScanTimeout) {
			fmt.Println("Fix: sudo killall coreaudiod midiserver")
		}
		return err
	}

	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ports.In {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range ports.Out {
		fmt.Printf("  %d: %s\n", i, p)
	}
	return nil
}
