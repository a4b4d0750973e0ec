package qsim

import (
	"fmt"
	"math"
)

// Built-in circuits from the tutorial notebooks. Each constructor
// returns a fresh Program so callers can extend or re-run freely.

// UniformProgram spreads an n-qubit register uniformly over all basis
// states and measures every qubit: 2^n equally likely bitstrings.
func UniformProgram(n int) (*Program, error) {
	p, err := NewProgram(n)
	if err != nil {
		return nil, err
	}
	_ = p.Append(Prepare(n))
	p.MeasureAll()
	return p, nil
}

// BellProgram entangles two qubits so measurement yields only 00 or
// 11, each with probability one half.
func BellProgram() *Program {
	p := &Program{NumQubits: 2}
	p.AddGate(GateH, 0)
	p.AddGate(GateX, 1, 0)
	p.MeasureAll()
	return p
}

// ThirdsProgram builds the biased two-qubit circuit whose three
// reachable outcomes 00, 01 and 10 each carry probability one third.
// The first rotation moves a third of the weight onto qubit 1; the
// half-Hadamard rotations around the CX even out the remainder.
func ThirdsProgram() *Program {
	angle1 := 2 * math.Asin(math.Sqrt(1.0/3.0))
	angle2 := math.Pi / 4

	p := &Program{NumQubits: 2}
	p.AddRotation(GateRY, 1, angle1)
	p.AddGate(GateH, 0)
	p.AddRotation(GateRY, 0, angle2)
	p.AddGate(GateX, 0, 1)
	p.AddRotation(GateRY, 0, -angle2)
	p.MeasureAll()
	return p
}

// AddIncrement appends the 3-qubit ripple increment: qubits 0 and 1
// hold the 2-bit value, qubit 2 receives the carry. Incrementing 3
// wraps the value to 0 and sets the carry.
func AddIncrement(p *Program) error {
	if p.NumQubits != 3 {
		return fmt.Errorf("qsim: increment needs a 3-qubit program, got %d qubits: %w",
			p.NumQubits, ErrQubitCountMismatch)
	}
	p.AddGate(GateX, 2, 0, 1)
	p.AddGate(GateX, 1, 0)
	p.AddGate(GateX, 0)
	return nil
}

// IncrementProgram prepares the basis state |start> on 3 qubits and
// increments it once.
func IncrementProgram(start int) (*Program, error) {
	p, err := NewProgram(3)
	if err != nil {
		return nil, err
	}
	if start < 0 || start >= 1<<3 {
		return nil, fmt.Errorf("qsim: start state |%d> outside the 3-qubit register: %w",
			start, ErrInvalidGateSpec)
	}
	for q := 0; q < 3; q++ {
		if start>>q&1 != 0 {
			p.AddGate(GateX, q)
		}
	}
	_ = AddIncrement(p)
	p.Measure(0, 1)
	return p, nil
}

// GroverTutorialVerify recreates the notebook's add_verify fragment:
// the ancilla (qubit 2) flips exactly for the state with qubit 0 set
// and qubit 1 clear.
func GroverTutorialVerify() *Program {
	p := &Program{NumQubits: 3}
	p.AddGate(GateX, 1)
	p.AddGate(GateX, 2, 0, 1)
	p.AddGate(GateX, 1)
	return p
}

// GroverProgram assembles the full 3-qubit search as one flat program:
// prepare, phase oracle, one diffusion round, readout of qubits 0 and
// 1. The verify fragment must span 3 qubits with qubit 2 the ancilla.
func GroverProgram(verify *Program) (*Program, error) {
	p, err := NewProgram(3)
	if err != nil {
		return nil, err
	}
	oracle, err := VerifyWithPhase(verify, 2)
	if err != nil {
		return nil, err
	}
	_ = p.Append(Prepare(3))
	if err := p.Append(oracle); err != nil {
		return nil, err
	}
	_ = p.Append(Amplify(3))
	p.Measure(0, 1)
	return p, nil
}
