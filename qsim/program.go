package qsim

import (
	"fmt"
	"slices"
)

// Program is an ordered, append-only list of gates for a register of a
// fixed size. A Program owns no state: building a circuit and running
// it are separate steps, and the same Program can be replayed any
// number of times.
type Program struct {
	NumQubits int
	Gates     []Gate

	// Measured lists the qubits read out at the end of the circuit, in
	// readout order. Empty means no measurement was declared.
	Measured []int
}

// NewProgram returns an empty program for an n-qubit register.
func NewProgram(n int) (*Program, error) {
	if n < 1 {
		return nil, fmt.Errorf("qsim: %d qubits: %w", n, ErrInvalidDimension)
	}
	return &Program{NumQubits: n}, nil
}

// NumCbits returns the number of classical bits the program's readout
// produces.
func (p *Program) NumCbits() int {
	return len(p.Measured)
}

// AddGate appends a gate. Controls are copied so later edits to the
// caller's slice cannot alter the recorded gate.
func (p *Program) AddGate(gateType string, target int, controls ...int) {
	p.Gates = append(p.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Controls: slices.Clone(controls),
	})
}

// AddRotation appends a parameterized rotation gate.
func (p *Program) AddRotation(gateType string, target int, theta float64, controls ...int) {
	p.Gates = append(p.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Controls: slices.Clone(controls),
		Theta:    theta,
	})
}

// Measure declares a readout of the given qubits, in order. The first
// listed qubit becomes the least-significant bit of the outcome
// bitstring.
func (p *Program) Measure(qubits ...int) {
	for _, q := range qubits {
		p.Gates = append(p.Gates, Gate{Type: GateMeasure, Target: q})
		p.Measured = append(p.Measured, q)
	}
}

// MeasureAll declares a readout of every qubit, qubit 0 first.
func (p *Program) MeasureAll() {
	for q := 0; q < p.NumQubits; q++ {
		p.Measure(q)
	}
}

// Append concatenates another program onto this one. Replaying the
// result equals replaying p then other against the same state.
func (p *Program) Append(other *Program) error {
	if other.NumQubits != p.NumQubits {
		return fmt.Errorf("qsim: appending %d-qubit program to %d-qubit program: %w",
			other.NumQubits, p.NumQubits, ErrQubitCountMismatch)
	}
	p.Gates = append(p.Gates, other.Gates...)
	p.Measured = append(p.Measured, other.Measured...)
	return nil
}

// Replay applies every gate of the program, in order, to the given
// state. The normalization invariant is re-checked after each gate so
// a simulator bug surfaces at the gate that introduced it.
func Replay(p *Program, s *StateVector) error {
	if s.NumQubits != p.NumQubits {
		return fmt.Errorf("qsim: replaying %d-qubit program on %d-qubit state: %w",
			p.NumQubits, s.NumQubits, ErrQubitCountMismatch)
	}
	for i, g := range p.Gates {
		if err := Apply(s, g); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
		if g.Type == GateMeasure {
			continue
		}
		if err := s.NormCheck(DefaultNormTolerance); err != nil {
			return fmt.Errorf("after gate %d (%s q[%d]): %w", i, g.Type, g.Target, err)
		}
	}
	return nil
}

// Run replays the program against a fresh all-zero state and returns
// the final state.
func (p *Program) Run() (*StateVector, error) {
	s, err := New(p.NumQubits)
	if err != nil {
		return nil, err
	}
	if err := Replay(p, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Prepare returns the fragment that puts an n-qubit register into the
// uniform superposition: Hadamard on every qubit.
func Prepare(n int) *Program {
	p := &Program{NumQubits: n}
	for q := 0; q < n; q++ {
		p.AddGate(GateH, q)
	}
	return p
}

// Reverse returns the fragment that complements every basis index:
// Pauli-X on every qubit. It remaps machinery that acts on the
// all-ones state onto an arbitrary index.
func Reverse(n int) *Program {
	p := &Program{NumQubits: n}
	for q := 0; q < n; q++ {
		p.AddGate(GateX, q)
	}
	return p
}

// VerifyWithPhase converts a bit-flip marking fragment into a
// phase-flip oracle by sandwiching it between Hadamards on qubit k
// (phase kickback).
func VerifyWithPhase(mark *Program, k int) (*Program, error) {
	p := &Program{NumQubits: mark.NumQubits}
	p.AddGate(GateH, k)
	if err := p.Append(mark); err != nil {
		return nil, err
	}
	p.AddGate(GateH, k)
	return p, nil
}

// Amplify returns one round of the diffusion operator for an n-qubit
// register: prepare, reverse, phase-flip the all-ones index, reverse,
// prepare. This is the inversion-about-the-mean step.
func Amplify(n int) *Program {
	p := Prepare(n)
	_ = p.Append(Reverse(n)) // fragments share the register size
	if n == 1 {
		p.AddGate(GateZ, 0)
	} else {
		controls := make([]int, n-1)
		for q := 0; q < n-1; q++ {
			controls[q] = q
		}
		p.AddGate(GateZ, n-1, controls...)
	}
	_ = p.Append(Reverse(n))
	_ = p.Append(Prepare(n))
	return p
}
