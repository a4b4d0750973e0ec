package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aesidau/quantumrandom/qsim"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	if gateType == qsim.GateMeasure {
		return "M"
	}
	return gateType
}

// targetSymbol returns the wire symbol drawn on the target qubit of a
// controlled gate.
func targetSymbol(gateType string) string {
	if gateType == qsim.GateZ {
		return "●"
	}
	return "⊕"
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what occupies one column/qubit cell of the grid.
type cellInfo struct {
	gate         *qsim.Gate
	isControl    bool
	passThrough  bool
	vertAbove    bool
	vertBelow    bool
	measureBelow bool
}

// gateSpan returns the lowest and highest qubit a gate touches.
func gateSpan(g *qsim.Gate) (lo, hi int) {
	lo, hi = g.Target, g.Target
	for _, c := range g.Controls {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return
}

// cellAt inspects the layout column for the given qubit row: the gate
// sitting there, a control dot, a connector passing through, or the
// double wire dropping from a measurement to the classical bit line.
func (m Model) cellAt(step, qubit int) cellInfo {
	var info cellInfo
	p := m.program

	for i := range p.Gates {
		if m.layout.Steps[i] != step {
			continue
		}
		g := &p.Gates[i]
		lo, hi := gateSpan(g)

		mine := false
		if g.Target == qubit {
			info.gate = g
			mine = true
		} else {
			for _, c := range g.Controls {
				if c == qubit {
					info.gate = g
					info.isControl = true
					mine = true
				}
			}
		}

		switch {
		case mine:
			if qubit > lo {
				info.vertAbove = true
			}
			if qubit < hi {
				info.vertBelow = true
			}
		case qubit > lo && qubit < hi:
			info.passThrough = true
			info.vertAbove = true
			info.vertBelow = true
		}

		if g.Type == qsim.GateMeasure && g.Target <= qubit {
			info.measureBelow = true
		}
	}
	return info
}

// renderCell returns 3 lines (top, mid, bot) for a single cell. Each
// line is exactly cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dblVertRow := strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	wireEnds := func(info cellInfo) {
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
		if info.measureBelow {
			bot = dblVertRow
		}
	}

	switch {
	case info.gate != nil && info.isControl:
		wireEnds(info)
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)

	case info.gate != nil && info.gate.Type == qsim.GateMeasure:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padCenter("M", gateNameW)+"├") + strings.Repeat("─", rightMargin)
		bot = dblVertRow

	case info.gate != nil && len(info.gate.Controls) > 0:
		wireEnds(info)
		sym := targetSymbol(info.gate.Type)
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate.Type), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.measureBelow:
		// No gate here, but a measurement wire passes through vertically.
		top = dblVertRow
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)
		bot = dblVertRow

	default:
		wireEnds(info)
		mid = strings.Repeat("─", cellW)
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// measureAtStep returns the qubit measured in a layout column, or -1.
func (m Model) measureAtStep(step int) int {
	for i := range m.program.Gates {
		if m.layout.Steps[i] == step && m.program.Gates[i].Type == qsim.GateMeasure {
			return m.program.Gates[i].Target
		}
	}
	return -1
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Circuit: " + demos[m.demoIdx].name))
	sb.WriteString("\n\n")

	if m.program == nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("build error: %v", m.runErr)))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	// How many steps fit
	availWidth := width - labelVisualW - 4
	displaySteps := max(availWidth/cellW, 1)
	startStep := min(m.viewStartStep, max(m.layout.MaxSteps-displaySteps, 0))

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := 0; qubit < m.program.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			var top, mid, bot string
			if step < m.layout.MaxSteps {
				top, mid, bot = renderCell(m.cellAt(step, qubit))
			} else {
				top, mid, bot = renderCell(cellInfo{})
			}
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// ── Classical bit wire (single line) ──
	if numCbits := m.program.NumCbits(); numCbits > 0 {
		label := fmt.Sprintf("c%d", numCbits)
		cbitLine := cbitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + cbitWireStyle.Render("══")

		for step := startStep; step < startStep+displaySteps; step++ {
			measuredQubit := -1
			if step < m.layout.MaxSteps {
				measuredQubit = m.measureAtStep(step)
			}
			if measuredQubit >= 0 {
				bitLabel := fmt.Sprintf("%d", measuredQubit)
				dashL := (cellW - 1) / 2
				dashR := max(cellW-dashL-1-len(bitLabel), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
					cbitConnectorStyle.Render("╩"+bitLabel) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			} else {
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", cellW))
			}
		}
		sb.WriteString(cbitLine + "\n")
	}

	// Status line
	sb.WriteString("\n")
	switch {
	case m.runErr != nil:
		sb.WriteString("  " + errorStyle.Render(m.runErr.Error()))
	case m.statusMsg != "":
		sb.WriteString("  " + activeGateStyle.Render(m.statusMsg))
	default:
		fmt.Fprintf(&sb, "  %d qubits, %d steps", m.program.NumQubits, m.layout.MaxSteps)
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// fmtAmp renders one complex amplitude with fixed precision.
func fmtAmp(a complex128) string {
	return fmt.Sprintf("%+.3f%+.3fi", real(a), imag(a))
}

// renderStatePanel renders the final statevector with probabilities.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Statevector"))
	sb.WriteString("\n\n")

	if m.state == nil {
		sb.WriteString(dimStyle.Render("no state"))
		return statePanelStyle.Width(width).Height(height).Render(sb.String())
	}

	amps := m.state.Cleaned(0)
	probs := m.state.Probabilities()
	maxRows := max(height-4, 1)

	for i, a := range amps {
		if i >= maxRows {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(amps)-maxRows)))
			break
		}
		basis := fmt.Sprintf("|%0*b⟩", m.state.NumQubits, i)
		line := fmt.Sprintf("%s %s  %5.1f%%", qubitLabelStyle.Render(basis), fmtAmp(a), probs[i]*100)
		sb.WriteString(line + "\n")
	}

	return statePanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderCountsPanel renders the measurement histogram of the last run.
func (m Model) renderCountsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Counts"))
	sb.WriteString("\n\n")

	if m.result == nil {
		sb.WriteString(dimStyle.Render("Press Enter to run"))
		return countsPanelStyle.Width(width).Height(height).Render(sb.String())
	}

	outcomes := make([]string, 0, len(m.result.Counts))
	maxCount := 0
	for outcome, n := range m.result.Counts {
		outcomes = append(outcomes, outcome)
		if n > maxCount {
			maxCount = n
		}
	}
	sort.Strings(outcomes)

	countW := len(fmt.Sprintf("%d", maxCount))
	barW := max(width-len(outcomes[0])-countW-10, 4)

	for _, outcome := range outcomes {
		n := m.result.Counts[outcome]
		filled := n * barW / maxCount
		bar := barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", barW-filled))
		fmt.Fprintf(&sb, "%s %s %*d\n", qubitLabelStyle.Render(outcome), bar, countW, n)
	}

	fmt.Fprintf(&sb, "\n%s", dimStyle.Render(fmt.Sprintf("%d shots", m.result.Shots)))

	return countsPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Pick circuit  ←→/hl Scroll steps  Tab Shots/Seed\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Enter Run  ^S Save QASM  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
