package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-drum/debug"
	"go-drum/sequencer"
	"go-drum/theme"
	"go-drum/widgets"
)

const labelWidth = 10

// SampleStatus reports instruments whose sample failed to load
type SampleStatus interface {
	Failed() []sequencer.Instrument
}

// Options wires the optional collaborators of the UI
type Options struct {
	Library            *sequencer.Library
	Samples            SampleStatus
	DisableMissingRows bool
	ShareBase          string // share links are printed against this URL
}

type inputMode int

const (
	inputNone inputMode = iota
	inputSave
	inputExport
	inputImport
	inputPaste
)

type Model struct {
	Engine *sequencer.Engine
	Theme  *theme.Theme
	opts   Options

	row int // instrument index
	col int // step index

	inputMode   inputMode
	inputBuffer string

	// Library browser
	browsing bool
	names    []string
	nameIdx  int

	status    string
	statusErr bool
	quitting  bool
}

type UpdateMsg struct{}

func NewModel(engine *sequencer.Engine, th *theme.Theme, opts Options) Model {
	return Model{
		Engine: engine,
		Theme:  th,
		opts:   opts,
	}
}

func ListenForUpdates(engine *sequencer.Engine) tea.Cmd {
	return func() tea.Msg {
		<-engine.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.inputMode != inputNone:
			m.handleInput(msg)
		case m.browsing:
			m.handleBrowse(msg.String())
		default:
			if msg.String() == "q" {
				return m.quit()
			}
			m.handleKey(msg.String())
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Engine.Stop()
	return m, tea.Quit
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	debug.Log("tui", "error: %v", err)
	m.statusErr = true
	if isDecodeError(err) {
		m.status = "invalid pattern: " + err.Error()
		return
	}
	m.status = err.Error()
}

func isDecodeError(err error) bool {
	for _, target := range []error{
		sequencer.ErrMalformedFieldCount,
		sequencer.ErrInvalidTimeSignature,
		sequencer.ErrInvalidTempo,
		sequencer.ErrInvalidKit,
		sequencer.ErrPatternLengthMismatch,
		sequencer.ErrInvalidStepCharacter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// missing returns the rows that cannot be edited because their sample is
// unavailable
func (m Model) missing() map[sequencer.Instrument]bool {
	if !m.opts.DisableMissingRows || m.opts.Samples == nil {
		return nil
	}
	out := make(map[sequencer.Instrument]bool)
	for _, inst := range m.opts.Samples.Failed() {
		out[inst] = true
	}
	return out
}

func (m *Model) handleKey(key string) {
	snap := m.Engine.Snapshot()
	steps := snap.Pattern.Steps()

	switch key {
	case "h", "left":
		if m.col > 0 {
			m.col--
		}
	case "l", "right":
		if m.col < steps-1 {
			m.col++
		}
	case "k", "up":
		if m.row > 0 {
			m.row--
		}
	case "j", "down":
		if m.row < sequencer.NumInstruments-1 {
			m.row++
		}

	case " ", "a":
		inst := sequencer.Instruments[m.row]
		if m.missing()[inst] {
			m.statusErr = true
			m.status = fmt.Sprintf("%s sample is missing", inst)
			return
		}
		v, err := m.Engine.Toggle(inst, min(m.col, steps-1), key == "a")
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus("%s step %d: %s", inst, m.col+1, v)

	case "p":
		m.Engine.TogglePlay()
	case "+", "=":
		m.setStatus("tempo %d", m.Engine.SetTempo(snap.Tempo+5))
	case "-", "_":
		m.setStatus("tempo %d", m.Engine.SetTempo(snap.Tempo-5))
	case "]":
		m.setStatus("tempo %d", m.Engine.SetTempo(snap.Tempo+1))
	case "[":
		m.setStatus("tempo %d", m.Engine.SetTempo(snap.Tempo-1))
	case "t":
		if bpm, ok := m.Engine.Tap(); ok {
			m.setStatus("tap tempo %d", bpm)
		} else {
			m.setStatus("tap %d", m.Engine.Snapshot().Taps)
		}
	case "s":
		sigs := sequencer.TimeSignatures()
		next := sigs[(slices.Index(sigs, snap.TimeSignature)+1)%len(sigs)]
		if err := m.Engine.SetTimeSignature(next); err != nil {
			m.setError(err)
			return
		}
		m.col = min(m.col, next.StepCount()-1)
		m.setStatus("time signature %d/4", next)
	case "K":
		kits := sequencer.Kits()
		next := kits[(slices.Index(kits, snap.Kit)+1)%len(kits)]
		if err := m.Engine.SetKit(next); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("kit %s", next)
	case "c":
		m.Engine.Clear()
		m.setStatus("cleared")

	case "y":
		encoded := m.Engine.Encode()
		if m.opts.ShareBase != "" {
			m.setStatus("%s", sequencer.ShareURL(m.opts.ShareBase, encoded))
		} else {
			m.setStatus("%s", encoded)
		}
	case "v":
		m.startInput(inputPaste, "")
	case "e":
		m.startInput(inputExport, sequencer.DefaultExportName)
	case "i":
		m.startInput(inputImport, "")
	case "w":
		if m.opts.Library != nil {
			m.startInput(inputSave, "")
		}
	case "o":
		m.openBrowser()
	}
}

func (m *Model) startInput(mode inputMode, initial string) {
	m.inputMode = mode
	m.inputBuffer = initial
}

func (m *Model) handleInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.inputBuffer = ""
	case tea.KeyBackspace:
		if r := []rune(m.inputBuffer); len(r) > 0 {
			m.inputBuffer = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.inputBuffer += " "
	case tea.KeyRunes:
		// Pasted text arrives as a single message
		m.inputBuffer += string(msg.Runes)
	}
}

func (m *Model) commitInput() {
	text := strings.TrimSpace(m.inputBuffer)
	mode := m.inputMode
	m.inputMode = inputNone
	m.inputBuffer = ""

	var err error
	switch mode {
	case inputSave:
		if err = m.Engine.SaveTo(m.opts.Library, text); err == nil {
			m.setStatus("saved %q", text)
		}
	case inputExport:
		if err = m.Engine.ExportFile(text); err == nil {
			m.setStatus("exported %s", text)
		}
	case inputImport:
		if err = m.Engine.ImportFile(text); err == nil {
			m.setStatus("imported %s", text)
		}
	case inputPaste:
		if err = m.Engine.Load(sequencer.ParseShareURL(text)); err == nil {
			m.setStatus("pattern loaded")
		}
	}
	if err != nil {
		m.setError(err)
	}
	m.col = min(m.col, m.Engine.Snapshot().Pattern.Steps()-1)
}

func (m *Model) openBrowser() {
	if m.opts.Library == nil {
		return
	}
	names, err := m.opts.Library.List()
	if err != nil {
		m.setError(err)
		return
	}
	m.names = names
	m.nameIdx = min(m.nameIdx, max(0, len(names)-1))
	m.browsing = true
}

func (m *Model) handleBrowse(key string) {
	switch key {
	case "esc", "q", "o":
		m.browsing = false
	case "j", "down":
		if m.nameIdx < len(m.names)-1 {
			m.nameIdx++
		}
	case "k", "up":
		if m.nameIdx > 0 {
			m.nameIdx--
		}
	case "enter", " ":
		if len(m.names) == 0 {
			return
		}
		name := m.names[m.nameIdx]
		if err := m.Engine.LoadFrom(m.opts.Library, name); err != nil {
			m.setError(err)
			return
		}
		m.browsing = false
		m.col = min(m.col, m.Engine.Snapshot().Pattern.Steps()-1)
		m.setStatus("loaded %q", name)
	case "d":
		if len(m.names) == 0 {
			return
		}
		name := m.names[m.nameIdx]
		if err := m.opts.Library.Delete(name); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("deleted %q", name)
		m.openBrowser()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()
	steps := snap.Pattern.Steps()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())

	playState := "STOP"
	if snap.Playing {
		playState = "PLAY"
	}
	playhead := "--"
	if snap.Playhead >= 0 {
		playhead = fmt.Sprintf("%02d", snap.Playhead+1)
	}
	header := headerStyle.Render(fmt.Sprintf("go-drum  %s  %3dbpm  %d/4  %s  step:%s/%02d",
		playState, snap.Tempo, snap.TimeSignature, snap.Kit, playhead, steps))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	switch {
	case m.inputMode != inputNone:
		out.WriteString(m.inputView())
	case m.browsing:
		out.WriteString(m.browseView())
	default:
		out.WriteString(m.gridView(snap))
	}

	out.WriteString("\n")
	if m.status != "" {
		style := lipgloss.NewStyle().Foreground(m.Theme.FG())
		if m.statusErr {
			style = style.Foreground(m.Theme.Warning())
		}
		out.WriteString(style.Render(m.status))
	}
	out.WriteString("\n")

	if m.inputMode == inputNone && !m.browsing {
		out.WriteString("\n")
		out.WriteString(widgets.RenderHelp(m.Theme, gridHelp...))
	}

	return out.String()
}

func (m Model) gridView(snap sequencer.Snapshot) string {
	steps := snap.Pattern.Steps()
	col := min(m.col, steps-1)
	missing := m.missing()

	var out strings.Builder
	out.WriteString(widgets.RenderRuler(m.Theme, labelWidth, steps))
	out.WriteString("\n")
	for i, inst := range sequencer.Instruments {
		row, _ := snap.Pattern.Row(inst)
		cells := make([]widgets.Cell, steps)
		for s, v := range row {
			cells[s] = widgets.Cell{
				Value:    v,
				Cursor:   i == m.row && s == col,
				Playhead: snap.Playing && s == snap.Playhead,
				Disabled: missing[inst],
			}
		}
		out.WriteString(widgets.RenderRow(m.Theme, string(inst), labelWidth, cells))
		out.WriteString("\n")
	}
	return out.String()
}

func (m Model) inputView() string {
	var label string
	switch m.inputMode {
	case inputSave:
		label = "Save pattern as"
	case inputExport:
		label = "Export to file"
	case inputImport:
		label = "Import from file"
	case inputPaste:
		label = "Paste share string or link"
	}
	var out strings.Builder
	out.WriteString("─────────────────────────────────────────────────\n")
	out.WriteString(fmt.Sprintf("\n%s: %s_\n", label, m.inputBuffer))
	out.WriteString("\n[enter] confirm  [esc] cancel\n")
	out.WriteString("\n─────────────────────────────────────────────────\n")
	return out.String()
}

func (m Model) browseView() string {
	var out strings.Builder
	out.WriteString("Saved patterns\n")
	out.WriteString("─────────────────────────────────────────────────\n")
	for i, name := range m.names {
		prefix := "  "
		if i == m.nameIdx {
			prefix = "> "
		}
		out.WriteString(prefix + name + "\n")
	}
	if len(m.names) == 0 {
		out.WriteString("  (no saved patterns)\n")
	}
	out.WriteString("\n")
	out.WriteString(widgets.RenderHelp(m.Theme, widgets.HelpColumn{
		Bindings: []widgets.Binding{
			{Key: "j / k", Desc: "navigate list"},
			{Key: "enter", Desc: "load selected"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back to grid"},
		},
	}))
	out.WriteString("\n")
	return out.String()
}

var gridHelp = []widgets.HelpColumn{
	{Title: "Edit", Bindings: []widgets.Binding{
		{Key: "hjkl", Desc: "move cursor"},
		{Key: "space / a", Desc: "toggle step / accent"},
		{Key: "s / K", Desc: "time signature / kit"},
		{Key: "c", Desc: "clear"},
	}},
	{Title: "Play", Bindings: []widgets.Binding{
		{Key: "p", Desc: "play / stop"},
		{Key: "+ - [ ]", Desc: "tempo"},
		{Key: "t", Desc: "tap tempo"},
		{Key: "q", Desc: "quit"},
	}},
	{Title: "Patterns", Bindings: []widgets.Binding{
		{Key: "w / o", Desc: "save / open library"},
		{Key: "e / i", Desc: "export / import file"},
		{Key: "y / v", Desc: "share / paste pattern"},
	}},
}
