package main

import (
	"fmt"
	"strings"

	"github.com/aesidau/quantumrandom/qsim"
)

// demo is one built-in circuit in the picker.
type demo struct {
	name  string
	key   string // value accepted by the -circuit flag
	desc  string
	build func() (*qsim.Program, error)
}

// demos lists the tutorial circuits in picker order.
var demos = []demo{
	{
		name: "Uniform spread",
		key:  "uniform",
		desc: "H on every qubit: eight equally likely bitstrings",
		build: func() (*qsim.Program, error) {
			return qsim.UniformProgram(3)
		},
	},
	{
		name: "Bell pair",
		key:  "bell",
		desc: "entangled pair: only 00 and 11, half and half",
		build: func() (*qsim.Program, error) {
			return qsim.BellProgram(), nil
		},
	},
	{
		name: "One third each",
		key:  "thirds",
		desc: "biased rotations: 00, 01 and 10 at one third each",
		build: func() (*qsim.Program, error) {
			return qsim.ThirdsProgram(), nil
		},
	},
	{
		name: "Increment",
		key:  "increment",
		desc: "ripple adder: |2> becomes |3> on the value qubits",
		build: func() (*qsim.Program, error) {
			return qsim.IncrementProgram(2)
		},
	},
	{
		name: "Grover search",
		key:  "grover",
		desc: "one amplification round boosts the marked state to 13/16",
		build: func() (*qsim.Program, error) {
			return qsim.GroverProgram(qsim.GroverTutorialVerify())
		},
	},
}

// demoByKey resolves a -circuit flag value.
func demoByKey(key string) (demo, bool) {
	for _, d := range demos {
		if d.key == key {
			return d, true
		}
	}
	return demo{}, false
}

// demoKeys returns the accepted -circuit values for usage text.
func demoKeys() string {
	keys := make([]string, len(demos))
	for i, d := range demos {
		keys[i] = d.key
	}
	return strings.Join(keys, ", ")
}

// renderDemoPanel renders the circuit picker list.
func (m Model) renderDemoPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuits"
	if m.focus == focusDemos {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	for i, d := range demos {
		if i == m.demoIdx {
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf(" ▸ %-16s", d.name)))
		} else {
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("   %-16s", d.name)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(wrapText(demos[m.demoIdx].desc, max(width-6, 16))))
	sb.WriteString("\n\n")

	sb.WriteString(activeGateStyle.Render("Shots: "))
	sb.WriteString(m.shotsInput.View())
	sb.WriteString("\n")
	sb.WriteString(activeGateStyle.Render("Seed:  "))
	sb.WriteString(m.seedInput.View())

	return menuPanelStyle.Width(width).Height(height).Render(sb.String())
}

// wrapText folds a single line of prose at word boundaries.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	var sb strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(w)
		lineLen += len(w)
	}
	return sb.String()
}
