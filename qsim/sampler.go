package qsim

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultShots is the shot count used when a caller does not supply
// one, matching the tutorial runs.
const DefaultShots = 1000

// MeasurementSpec names the qubits to read out and their order.
// Qubits[0] maps to the least-significant (rightmost) character of the
// outcome bitstring; qubits not listed are marginalized out.
type MeasurementSpec struct {
	Qubits []int
}

// AllQubits is the spec that measures every qubit of an n-qubit
// register, qubit 0 least significant.
func AllQubits(n int) MeasurementSpec {
	qs := make([]int, n)
	for i := range qs {
		qs[i] = i
	}
	return MeasurementSpec{Qubits: qs}
}

func (m MeasurementSpec) validate(n int) error {
	if len(m.Qubits) == 0 {
		return fmt.Errorf("qsim: empty measurement spec: %w", ErrInvalidGateSpec)
	}
	seen := make(map[int]bool, len(m.Qubits))
	for _, q := range m.Qubits {
		if q < 0 || q >= n {
			return fmt.Errorf("qsim: measuring q[%d] on %d-qubit register: %w", q, n, ErrQubitOutOfRange)
		}
		if seen[q] {
			return fmt.Errorf("qsim: q[%d] measured twice: %w", q, ErrInvalidGateSpec)
		}
		seen[q] = true
	}
	return nil
}

// outcomeOf extracts the measured bits of a basis index, packed with
// Qubits[0] as bit 0.
func (m MeasurementSpec) outcomeOf(basis int) int {
	out := 0
	for pos, q := range m.Qubits {
		out |= (basis >> q & 1) << pos
	}
	return out
}

// Bitstring renders an outcome value as a fixed-width bitstring in the
// spec's documented order.
func (m MeasurementSpec) Bitstring(outcome int) string {
	var sb strings.Builder
	for pos := len(m.Qubits) - 1; pos >= 0; pos-- {
		if outcome>>pos&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Histogram maps measured bitstrings to occurrence counts.
type Histogram map[string]int

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Probabilities computes the distribution over measured outcomes by
// summing squared magnitudes across all basis indices that agree on
// the measured positions. The result has length 2^len(spec.Qubits) and
// is indexed by outcome value.
func Probabilities(s *StateVector, spec MeasurementSpec) ([]float64, error) {
	if err := spec.validate(s.NumQubits); err != nil {
		return nil, err
	}
	probs := make([]float64, 1<<len(spec.Qubits))
	for i, p := range s.Probabilities() {
		probs[spec.outcomeOf(i)] += p
	}
	return probs, nil
}

// Sample draws shots independent measurements from the state's outcome
// distribution and aggregates them into a Histogram. A nil rng is
// seeded from the clock; passing rand.New(rand.NewSource(seed)) makes
// the histogram reproducible. The distribution is verified to sum to 1
// before any shot is drawn.
func Sample(s *StateVector, spec MeasurementSpec, shots int, rng *rand.Rand) (Histogram, error) {
	if shots < 1 {
		return nil, fmt.Errorf("qsim: %d shots: %w", shots, ErrInvalidShotCount)
	}
	probs, err := Probabilities(s, spec)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if sum < 1-DefaultNormTolerance || sum > 1+DefaultNormTolerance {
		return nil, fmt.Errorf("qsim: outcome probabilities sum to %g: %w", sum, ErrNormalizationViolation)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	hist := make(Histogram)
	for shot := 0; shot < shots; shot++ {
		r := rng.Float64() * sum
		acc := 0.0
		outcome := len(probs) - 1
		for i, p := range probs {
			acc += p
			if r < acc {
				outcome = i
				break
			}
		}
		hist[spec.Bitstring(outcome)]++
	}
	return hist, nil
}
