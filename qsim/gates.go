package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Gate types understood by Apply. Controlled forms are expressed by
// attaching control qubits to the base type, so "X" with one control is
// a CNOT and with two controls a Toffoli. "Z" with controls is the
// controlled phase flip (CZ, CCZ).
const (
	GateH       = "H"
	GateX       = "X"
	GateY       = "Y"
	GateZ       = "Z"
	GateS       = "S"
	GateSdg     = "SDG"
	GateT       = "T"
	GateTdg     = "TDG"
	GateRX      = "RX"
	GateRY      = "RY"
	GateRZ      = "RZ"
	GateMeasure = "MEASURE"
)

// Gate is an immutable description of one unitary operation: a type, a
// target qubit, zero or more control qubits, and for rotations an
// angle in radians.
type Gate struct {
	Type     string
	Target   int
	Controls []int
	Theta    float64
}

// validate checks the gate's indices against an n-qubit register.
func (g Gate) validate(n int) error {
	if g.Target < 0 || g.Target >= n {
		return fmt.Errorf("qsim: %s target q[%d] on %d-qubit register: %w", g.Type, g.Target, n, ErrQubitOutOfRange)
	}
	seen := make(map[int]bool, len(g.Controls))
	for _, c := range g.Controls {
		if c < 0 || c >= n {
			return fmt.Errorf("qsim: %s control q[%d] on %d-qubit register: %w", g.Type, c, n, ErrQubitOutOfRange)
		}
		if c == g.Target {
			return fmt.Errorf("qsim: %s control q[%d] equals target: %w", g.Type, c, ErrInvalidGateSpec)
		}
		if seen[c] {
			return fmt.Errorf("qsim: %s duplicate control q[%d]: %w", g.Type, c, ErrInvalidGateSpec)
		}
		seen[c] = true
	}
	return nil
}

// controlMask packs the control qubits into a basis-index bit mask.
func (g Gate) controlMask() int {
	mask := 0
	for _, c := range g.Controls {
		mask |= 1 << c
	}
	return mask
}

// Apply applies one gate to the state in place. The state after a
// failed Apply is unchanged.
func Apply(s *StateVector, g Gate) error {
	if err := g.validate(s.NumQubits); err != nil {
		return err
	}
	cmask := g.controlMask()
	switch g.Type {
	case GateH:
		f := complex(1/math.Sqrt2, 0)
		s.applyPairs(g.Target, cmask, f, f, f, -f)
	case GateX:
		s.applyFlip(g.Target, cmask)
	case GateY:
		s.applyPairs(g.Target, cmask, 0, -1i, 1i, 0)
	case GateZ:
		s.applyPhase(g.Target, cmask, -1)
	case GateS:
		s.applyPhase(g.Target, cmask, 1i)
	case GateSdg:
		s.applyPhase(g.Target, cmask, -1i)
	case GateT:
		s.applyPhase(g.Target, cmask, cmplx.Exp(complex(0, math.Pi/4)))
	case GateTdg:
		s.applyPhase(g.Target, cmask, cmplx.Exp(complex(0, -math.Pi/4)))
	case GateRX:
		c := complex(math.Cos(g.Theta/2), 0)
		js := complex(0, -math.Sin(g.Theta/2))
		s.applyPairs(g.Target, cmask, c, js, js, c)
	case GateRY:
		c := complex(math.Cos(g.Theta/2), 0)
		sn := complex(math.Sin(g.Theta/2), 0)
		s.applyPairs(g.Target, cmask, c, -sn, sn, c)
	case GateRZ:
		phase := cmplx.Exp(complex(0, g.Theta/2))
		s.applyDiag(g.Target, cmask, cmplx.Conj(phase), phase)
	case GateMeasure:
		// Measurement is deferred to the sampler; replay skips it.
	default:
		return fmt.Errorf("qsim: unknown gate type %q: %w", g.Type, ErrInvalidGateSpec)
	}
	return nil
}

// applyPairs applies the 2x2 unitary [[m00,m01],[m10,m11]] to every
// amplitude pair differing only in the target bit, restricted to basis
// indices where all control bits are set. Pairs are disjoint, so the
// update is safe in place.
func (s *StateVector) applyPairs(target, cmask int, m00, m01, m10, m11 complex128) {
	n := len(s.Amplitudes)
	bit := 1 << target
	for i := 0; i < n; i++ {
		if i&bit != 0 || i&cmask != cmask {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m00*a0 + m01*a1
		s.Amplitudes[j] = m10*a0 + m11*a1
	}
}

// applyFlip swaps the amplitude pairs for the target bit (Pauli-X)
// wherever the control bits are set.
func (s *StateVector) applyFlip(target, cmask int) {
	n := len(s.Amplitudes)
	bit := 1 << target
	for i := 0; i < n; i++ {
		if i&bit == 0 && i&cmask == cmask {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyPhase multiplies by factor where the target bit and all control
// bits are 1. With factor -1 this is Z/CZ/CCZ: the magnitude of every
// amplitude is unchanged.
func (s *StateVector) applyPhase(target, cmask int, factor complex128) {
	n := len(s.Amplitudes)
	mask := cmask | 1<<target
	for i := 0; i < n; i++ {
		if i&mask == mask {
			s.Amplitudes[i] *= factor
		}
	}
}

// applyDiag applies a diagonal 2x2 unitary: d0 where the target bit is
// 0, d1 where it is 1, restricted to set control bits.
func (s *StateVector) applyDiag(target, cmask int, d0, d1 complex128) {
	n := len(s.Amplitudes)
	bit := 1 << target
	for i := 0; i < n; i++ {
		if i&cmask != cmask {
			continue
		}
		if i&bit != 0 {
			s.Amplitudes[i] *= d1
		} else {
			s.Amplitudes[i] *= d0
		}
	}
}
