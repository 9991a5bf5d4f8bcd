package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-hal/engine"
	"github.com/wippyai/wasm-hal/platform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	hal      *platform.Adapter
	eng      *engine.Engine
	instance *engine.Instance
	filename string
	result   string
	funcs    []string
	input    textinput.Model
	selected int
	state    modelState
	heapSize uint32
}

type loadedMsg struct {
	err      error
	hal      *platform.Adapter
	eng      *engine.Engine
	instance *engine.Instance
	funcs    []string
}

type callResultMsg struct {
	err    error
	result uint32
}

func newInteractiveModel(filename string, heapSize uint32) *interactiveModel {
	input := textinput.New()
	input.Placeholder = "comma-separated uint32 arguments (empty for none)"
	input.CharLimit = 64

	return &interactiveModel{
		filename: filename,
		heapSize: heapSize,
		input:    input,
		state:    stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	filename, heapSize := m.filename, m.heapSize
	return func() tea.Msg {
		ctx := context.Background()
		hal, eng, mod, err := setup(ctx, filename, heapSize)
		if err != nil {
			return loadedMsg{err: err}
		}
		inst, err := mod.Instantiate(ctx)
		if err != nil {
			eng.Close(ctx)
			return loadedMsg{err: err}
		}
		return loadedMsg{
			hal:      hal,
			eng:      eng,
			instance: inst,
			funcs:    mod.ExportedFunctions(),
		}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.hal = msg.hal
		m.eng = msg.eng
		m.instance = msg.instance
		m.funcs = msg.funcs
		return m, nil

	case callResultMsg:
		if msg.err != nil {
			m.result = errorStyle.Render(msg.err.Error())
		} else {
			m.result = resultStyle.Render(fmt.Sprintf("= %d", msg.result))
		}
		m.state = stateShowResult
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSelectFunc:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.funcs)-1 {
				m.selected++
			}
		case "enter":
			if len(m.funcs) == 0 {
				return m, nil
			}
			m.input.SetValue("")
			m.input.Focus()
			m.state = stateInputArgs
			return m, textinput.Blink
		}

	case stateInputArgs:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateSelectFunc
		case "enter":
			return m, m.callSelected()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case stateShowResult:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.state = stateSelectFunc
		}
	}
	return m, nil
}

func (m *interactiveModel) callSelected() tea.Cmd {
	name := m.funcs[m.selected]
	argsStr := m.input.Value()
	inst := m.instance
	return func() tea.Msg {
		args, err := parseArgs(argsStr)
		if err != nil {
			return callResultMsg{err: err}
		}
		result, err := inst.Call(context.Background(), name, args...)
		return callResultMsg{result: result, err: err}
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wasm-hal run: " + m.filename))
	b.WriteString("\n\n")

	if m.hal == nil {
		b.WriteString("loading...\n")
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Exported functions:\n")
		for i, name := range m.funcs {
			line := "  " + name
			if i == m.selected {
				line = selectedStyle.Render("> " + name)
			} else {
				line = funcStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(helpStyle.Render("\nup/down select · enter call · q quit\n"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Call %s\n\n", funcStyle.Render(m.funcs[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString(helpStyle.Render("\n\nenter call · esc back\n"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("%s(%s) %s\n", m.funcs[m.selected], m.input.Value(), m.result))
		b.WriteString(helpStyle.Render("\nany key back · q quit\n"))
	}

	b.WriteString(statsStyle.Render(fmt.Sprintf("\nArena: %d/%d bytes used, peak %d\n",
		m.hal.Heap().Len(), m.hal.Heap().Cap(), m.hal.Heap().Peak())))

	return b.String()
}

func runInteractive(filename string, heapSize uint32) error {
	m := newInteractiveModel(filename, heapSize)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}

	fm := final.(*interactiveModel)
	if fm.eng != nil {
		defer fm.eng.Close(context.Background())
	}
	if fm.hal != nil {
		defer fm.hal.Destroy()
	}
	if fm.instance != nil {
		fm.instance.Close(context.Background())
	}
	return fm.err
}
