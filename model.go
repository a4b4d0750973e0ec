package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aesidau/quantumrandom/qsim"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusDemos focus = iota
	focusShots
	focusSeed
)

// Model represents the TUI application state: a picked circuit, its
// layout and final statevector, and the counts from the latest run.
type Model struct {
	backend *qsim.SimulatorBackend

	demoIdx int
	program *qsim.Program
	layout  qsim.Layout
	state   *qsim.StateVector
	result  *qsim.Result
	runErr  error

	shotsInput textinput.Model
	seedInput  textinput.Model
	focus      focus

	viewStartStep int
	width         int
	height        int
	statusMsg     string
}

func initialModel() Model {
	shots := textinput.New()
	shots.Placeholder = strconv.Itoa(qsim.DefaultShots)
	shots.CharLimit = 7
	shots.Width = 8

	seed := textinput.New()
	seed.Placeholder = "random"
	seed.CharLimit = 12
	seed.Width = 12

	m := Model{
		backend:    qsim.NewSimulatorBackend(),
		shotsInput: shots,
		seedInput:  seed,
		focus:      focusDemos,
	}
	m.loadDemo(0)
	return m
}

// loadDemo builds the picked circuit, lays it out and replays it so the
// amplitude panel is live before any sampling run.
func (m *Model) loadDemo(idx int) {
	m.demoIdx = idx
	m.result = nil
	m.viewStartStep = 0
	m.statusMsg = ""

	p, err := demos[idx].build()
	if err != nil {
		m.program = nil
		m.state = nil
		m.runErr = err
		return
	}
	state, err := p.Run()
	if err != nil {
		m.program = p
		m.state = nil
		m.runErr = err
		return
	}

	m.program = p
	m.layout = qsim.LayoutProgram(p)
	m.state = state
	m.runErr = nil
}

// runSelected samples the loaded circuit with the configured shot count
// and seed.
func (m *Model) runSelected() {
	if m.program == nil {
		return
	}

	opts := qsim.RunOptions{}
	if v := m.shotsInput.Value(); v != "" {
		shots, err := strconv.Atoi(v)
		if err != nil || shots < 1 {
			m.statusMsg = fmt.Sprintf("Bad shot count %q", v)
			return
		}
		opts.Shots = shots
	}
	if v := m.seedInput.Value(); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Bad seed %q", v)
			return
		}
		opts.Seed = seed
	}

	res, err := m.backend.Run(m.program, opts)
	if err != nil {
		m.runErr = err
		m.result = nil
		return
	}
	m.result = res
	m.runErr = nil
	m.statusMsg = fmt.Sprintf("Job %s: %d shots in %s", res.JobID[:8], res.Shots, res.Elapsed.Round(time.Microsecond))
}

// saveQASM writes the loaded circuit next to the binary.
func (m *Model) saveQASM() {
	if m.program == nil {
		return
	}
	name := demos[m.demoIdx].key + ".qasm"
	if err := os.WriteFile(name, []byte(m.program.ToQASM()), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
	} else {
		m.statusMsg = "Saved " + name
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.cycleFocus()
			return m, nil
		case "enter":
			m.runSelected()
			return m, nil
		case "ctrl+s":
			m.saveQASM()
			return m, nil
		}

		switch m.focus {
		case focusDemos:
			switch key {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.demoIdx > 0 {
					m.loadDemo(m.demoIdx - 1)
				}
			case "down", "j":
				if m.demoIdx < len(demos)-1 {
					m.loadDemo(m.demoIdx + 1)
				}
			case "left", "h":
				if m.viewStartStep > 0 {
					m.viewStartStep--
				}
			case "right", "l":
				if m.program != nil && m.viewStartStep < m.layout.MaxSteps-1 {
					m.viewStartStep++
				}
			}

		case focusShots:
			var cmd tea.Cmd
			m.shotsInput, cmd = m.shotsInput.Update(msg)
			cmds = append(cmds, cmd)

		case focusSeed:
			var cmd tea.Cmd
			m.seedInput, cmd = m.seedInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) cycleFocus() {
	m.shotsInput.Blur()
	m.seedInput.Blur()
	switch m.focus {
	case focusDemos:
		m.focus = focusShots
		m.shotsInput.Focus()
	case focusShots:
		m.focus = focusSeed
		m.seedInput.Focus()
	case focusSeed:
		m.focus = focusDemos
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := max(m.width/4, 28)
	rightWidth := max(m.width/4, 30)
	circuitWidth := m.width - sideWidth - rightWidth - 6
	controlsHeight := 5
	bodyHeight := max(m.height-controlsHeight-2, 8)

	demoPanel := m.renderDemoPanel(sideWidth, bodyHeight)
	circuitPanel := m.renderCircuitPanel(circuitWidth, bodyHeight)

	halfH := bodyHeight / 2
	statePanel := m.renderStatePanel(rightWidth, halfH)
	countsPanel := m.renderCountsPanel(rightWidth, bodyHeight-halfH-2)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, statePanel, countsPanel)

	body := lipgloss.JoinHorizontal(lipgloss.Top, demoPanel, circuitPanel, rightCol)
	controls := m.renderControlsPanel(m.width-4, controlsHeight-2)

	return lipgloss.JoinVertical(lipgloss.Left, body, controls)
}
