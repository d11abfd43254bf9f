package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dop251/goja"

	"github.com/wippyai/scriptfs/bridge"
	"github.com/wippyai/scriptfs/engine"
	"github.com/wippyai/scriptfs/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inputEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historyLimit = 200

type replModel struct {
	err error
	eng *engine.Engine
	svc *service.Service

	root string
	ns   string
	mem  bool

	input   textinput.Model
	history []replEntry
	out     chan string
	ready   bool
}

type replEntry struct {
	text  string
	style lipgloss.Style
}

type readyMsg struct {
	err error
	eng *engine.Engine
	svc *service.Service
}

type evalMsg struct {
	err    error
	result string
}

type outputMsg string

func newReplModel(root, ns string, mem bool) *replModel {
	ti := textinput.New()
	ti.Prompt = "js> "
	ti.Placeholder = `_fileSystem.read("path", function (r) { print(r.content); })`
	ti.Width = 80
	ti.Focus()

	return &replModel{
		root:  root,
		ns:    ns,
		mem:   mem,
		input: ti,
		out:   make(chan string, 64),
	}
}

func (m *replModel) Init() tea.Cmd {
	return tea.Batch(m.setup, m.listen, textinput.Blink)
}

// setup builds the engine, service and bridge, and wires a print global
// that feeds the output channel so async callbacks show up in the UI.
func (m *replModel) setup() tea.Msg {
	var svc *service.Service
	if m.mem {
		svc = service.NewMemory()
	} else {
		svc = service.NewLocal(m.root)
	}

	eng := engine.New()
	br, err := bridge.New(eng, svc)
	if err != nil {
		eng.Close()
		svc.Close()
		return readyMsg{err: err}
	}
	if err := br.Install(m.ns); err != nil {
		eng.Close()
		svc.Close()
		return readyMsg{err: err}
	}

	out := m.out
	if err := eng.SetGlobal("print", func(args ...any) {
		line := strings.TrimRight(fmt.Sprintln(args...), "\n")
		select {
		case out <- line:
		default: // drop rather than block the engine
		}
	}); err != nil {
		eng.Close()
		svc.Close()
		return readyMsg{err: err}
	}

	return readyMsg{eng: eng, svc: svc}
}

func (m *replModel) listen() tea.Msg {
	return outputMsg(<-m.out)
}

func (m *replModel) eval(src string) tea.Cmd {
	return func() tea.Msg {
		v, err := m.eng.RunScript("repl", src)
		if err != nil {
			return evalMsg{err: err}
		}
		if v == nil || goja.IsUndefined(v) {
			return evalMsg{result: "undefined"}
		}
		return evalMsg{result: v.String()}
	}
}

func (m *replModel) push(text string, style lipgloss.Style) {
	m.history = append(m.history, replEntry{text: text, style: style})
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *replModel) teardown() {
	if m.svc != nil {
		m.svc.Close()
	}
	if m.eng != nil {
		m.eng.Close()
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			m.teardown()
			return m, tea.Quit

		case "enter":
			src := strings.TrimSpace(m.input.Value())
			if src == "" || !m.ready {
				return m, nil
			}
			m.input.SetValue("")
			m.push("js> "+src, inputEchoStyle)
			return m, m.eval(src)
		}

	case readyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.svc = msg.svc
		m.ready = true

	case evalMsg:
		if msg.err != nil {
			m.push(fmt.Sprintf("Error: %v", msg.err), errorStyle)
		} else {
			m.push(msg.result, resultStyle)
		}

	case outputMsg:
		m.push(string(msg), outputStyle)
		return m, m.listen
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("scriptfs"))
	b.WriteString(" ")
	if m.mem {
		b.WriteString("in-memory filesystem")
	} else {
		b.WriteString(m.root)
	}
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString("Starting engine...\n")
		return b.String()
	}

	for _, e := range m.history {
		b.WriteString(e.style.Render(e.text))
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter eval • "))
	b.WriteString(helpStyle.Render(m.ns + ".{read,readFromFile,write,move,remove,stat} • print(...) • esc quit"))

	return b.String()
}

func runInteractive(root, ns string, mem bool) error {
	p := tea.NewProgram(newReplModel(root, ns, mem), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
