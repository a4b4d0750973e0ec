package qsim

// Layout assigns each gate of a program to a display column. Gates on
// disjoint qubits share a column; a gate lands in the earliest column
// where every qubit it references is free. This mirrors how circuit
// diagrams pack independent operations side by side.
type Layout struct {
	Steps    []int // column per gate, parallel to Program.Gates
	MaxSteps int
}

// LayoutProgram computes the display layout for a program.
func LayoutProgram(p *Program) Layout {
	steps := make([]int, len(p.Gates))
	nextFree := make([]int, p.NumQubits)

	for i, g := range p.Gates {
		step := 0
		for _, q := range gateQubits(g) {
			if q >= 0 && q < p.NumQubits && nextFree[q] > step {
				step = nextFree[q]
			}
		}
		steps[i] = step
		for _, q := range gateQubits(g) {
			if q >= 0 && q < p.NumQubits {
				nextFree[q] = step + 1
			}
		}
	}

	maxSteps := 0
	for _, s := range steps {
		if s+1 > maxSteps {
			maxSteps = s + 1
		}
	}
	return Layout{Steps: steps, MaxSteps: maxSteps}
}

func gateQubits(g Gate) []int {
	qs := make([]int, 0, len(g.Controls)+1)
	qs = append(qs, g.Target)
	qs = append(qs, g.Controls...)
	return qs
}

// GateAt returns the gate occupying the given column and qubit, or nil.
func (l Layout) GateAt(p *Program, step, qubit int) *Gate {
	for i := range p.Gates {
		if l.Steps[i] != step {
			continue
		}
		g := &p.Gates[i]
		if g.Target == qubit {
			return g
		}
		for _, c := range g.Controls {
			if c == qubit {
				return g
			}
		}
	}
	return nil
}
