// Package qsim is a statevector simulator for small quantum registers.
//
// A register of n qubits is a packed array of 2^n complex amplitudes
// indexed by basis state, where bit i of the index is the state of
// qubit i. Gates act on the array in place; replaying a Program against
// a fresh StateVector and sampling the result reproduces what the
// tutorial notebooks do with a qasm_simulator backend.
package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Default tolerances exposed on the configuration surface.
const (
	// DefaultNormTolerance bounds the allowed drift of the squared-
	// magnitude sum from 1 after each gate application.
	DefaultNormTolerance = 1e-6

	// DefaultCleanTolerance is the display-time threshold below which
	// near-zero real or imaginary parts are snapped to zero.
	DefaultCleanTolerance = 1e-10
)

// StateVector holds the complex amplitudes of an n-qubit register.
// Amplitudes has length 2^NumQubits and is mutated in place by gate
// application; callers that need a snapshot should Clone first.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// New returns the all-zero basis state |0...0> for an n-qubit register.
func New(n int) (*StateVector, error) {
	if n < 1 {
		return nil, fmt.Errorf("qsim: %d qubits: %w", n, ErrInvalidDimension)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: n}, nil
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Probabilities returns |amplitude|^2 for every basis index.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// NormCheck verifies the normalization invariant. A tolerance <= 0
// falls back to DefaultNormTolerance. This is a self-check, not a
// correction: a failure means some earlier step was not unitary.
func (s *StateVector) NormCheck(tolerance float64) error {
	if tolerance <= 0 {
		tolerance = DefaultNormTolerance
	}
	sum := 0.0
	for _, a := range s.Amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	if math.Abs(sum-1) > tolerance {
		return fmt.Errorf("qsim: squared magnitudes sum to %g: %w", sum, ErrNormalizationViolation)
	}
	return nil
}

// Clean snaps near-zero real and imaginary components of a single
// amplitude to exactly zero. It mirrors the notebooks' real_if_close
// presentation convention and must only be used for display or
// comparison: feeding cleaned amplitudes back into gate application
// would corrupt the evolution.
func Clean(a complex128, tolerance float64) complex128 {
	if tolerance <= 0 {
		tolerance = DefaultCleanTolerance
	}
	re, im := real(a), imag(a)
	if math.Abs(re) < tolerance {
		re = 0
	}
	if math.Abs(im) < tolerance {
		im = 0
	}
	return complex(re, im)
}

// Cleaned returns a display copy of the amplitudes with Clean applied
// to every entry. The underlying state is left untouched.
func (s *StateVector) Cleaned(tolerance float64) []complex128 {
	out := make([]complex128, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		out[i] = Clean(a, tolerance)
	}
	return out
}
